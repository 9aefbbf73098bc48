package media

type UploadResult struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// ImageOptions are hints for the CDN/transform layer sitting in front of
// the bucket; zero values are omitted from the generated URL.
type ImageOptions struct {
	Width   int `json:"width"`
	Height  int `json:"height"`
	Quality int `json:"quality"`
}
