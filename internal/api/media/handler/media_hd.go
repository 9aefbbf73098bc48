package mediaHandler

import (
	"MeridianBackend/internal/api/media"
	contextPkg "MeridianBackend/pkg/context"
	"MeridianBackend/pkg/handlerUtil"
	jwtPkg "MeridianBackend/pkg/jwt"
	"MeridianBackend/pkg/log"
	"errors"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *MediaHandler) UploadCoverImage(ctx *fiber.Ctx) error {
	return h.uploadImage(ctx, "upload_cover_image", h.mediaService.UploadCoverImage)
}

func (h *MediaHandler) UploadContentImage(ctx *fiber.Ctx) error {
	return h.uploadImage(ctx, "upload_content_image", h.mediaService.UploadContentImage)
}

func (h *MediaHandler) uploadImage(
	ctx *fiber.Ctx,
	operation string,
	uploadFn func(c context.Context, userID string, file *multipart.FileHeader, slug string) (media.UploadResult, error),
) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing image upload request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	slug := ctx.FormValue("slug")

	file, err := ctx.FormFile("image")
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("image file is required"), ctx.Path())
	}

	result, err := uploadFn(c, userData.ID, file, slug)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), operation)
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, result)
	}
}

func (h *MediaHandler) DeleteImage(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	path := ctx.Query("path")
	if path == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("image path is required"), ctx.Path())
	}

	if err := h.mediaService.DeleteImage(c, path); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_image")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Image deleted successfully",
		})
	}
}

func (h *MediaHandler) GetImageURL(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	path := ctx.Query("path")
	if path == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("image path is required"), ctx.Path())
	}

	opts := media.ImageOptions{
		Width:   queryInt(ctx, "width"),
		Height:  queryInt(ctx, "height"),
		Quality: queryInt(ctx, "quality"),
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"url": h.mediaService.GetOptimizedImageURL(path, opts),
	})
}

func queryInt(ctx *fiber.Ctx, key string) int {
	value, err := strconv.Atoi(ctx.Query(key, "0"))
	if err != nil || value < 0 {
		return 0
	}
	return value
}
