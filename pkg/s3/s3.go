package s3

import (
	"fmt"
	"mime/multipart"
	"net/url"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Uploaded objects carry a cache-control header so the CDN in front of the
// bucket can serve them without revalidating every hit.
const cacheControl = "public, max-age=31536000"

type ItfS3 interface {
	UploadFile(file *multipart.FileHeader, key string) (string, error)
	DeleteFile(key string) error
	PublicURL(key string) string
}

type s3Client struct {
	client     *s3.S3
	session    *session.Session
	bucketName string
	region     string
}

func New() (ItfS3, error) {
	sess, err := newSession()
	if err != nil {
		return nil, err
	}

	return &s3Client{
		client:     s3.New(sess),
		session:    sess,
		bucketName: os.Getenv("AWS_BUCKET_NAME"),
		region:     os.Getenv("AWS_REGION"),
	}, nil
}

// UploadFile writes the object at exactly the given key. Writing to an
// existing key replaces the old object (PutObject upsert semantics).
func (s *s3Client) UploadFile(file *multipart.FileHeader, key string) (string, error) {
	uploader := s3manager.NewUploader(s.session)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer func(src multipart.File) {
		if err := src.Close(); err != nil {
			fmt.Println("Failed to close file")
		}
	}(src)

	_, err = uploader.Upload(&s3manager.UploadInput{
		Bucket:       aws.String(s.bucketName),
		Key:          aws.String(key),
		Body:         src,
		ContentType:  aws.String(file.Header.Get("Content-Type")),
		CacheControl: aws.String(cacheControl),
	})

	if err != nil {
		return "", err
	}

	return s.PublicURL(key), nil
}

func (s *s3Client) DeleteFile(key string) error {
	decodedKey, err := url.QueryUnescape(key)
	if err != nil {
		return fmt.Errorf("failed to decode key: %w", err)
	}

	_, err = s.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(decodedKey),
	})

	return err
}

func (s *s3Client) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucketName, s.region, key)
}

func newSession() (*session.Session, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
		Credentials: credentials.NewStaticCredentials(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		),
	})

	if err != nil {
		return nil, err
	}

	return sess, nil
}
