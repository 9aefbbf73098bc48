package mediaHandler

import (
	mediaService "MeridianBackend/internal/api/media/service"
	"MeridianBackend/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MediaHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	mediaService mediaService.IMediaService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ms mediaService.IMediaService,
) *MediaHandler {
	return &MediaHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		mediaService: ms,
	}
}

func (h *MediaHandler) Start(srv fiber.Router) {
	media := srv.Group("/media")

	// Upload and delete require auth
	media.Post("/covers", h.middleware.NewTokenMiddleware, h.UploadCoverImage)
	media.Post("/content", h.middleware.NewTokenMiddleware, h.UploadContentImage)
	media.Delete("", h.middleware.NewTokenMiddleware, h.DeleteImage)

	// URL derivation is pure and public
	media.Get("/url", h.GetImageURL)
}
