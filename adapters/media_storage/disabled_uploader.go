package media_storage

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/application/service"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/config"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

var ErrUploaderDisabled = errors.New("media storage is not configured")

// NewUploader picks Cloudinary when a cloud name is configured and the disabled
// uploader otherwise, so only avatar uploads depend on media storage.
func NewUploader(cfg config.Config, log logger.Logger) (service.Uploader, error) {
	if cfg.Cloudinary.CloudName == "" {
		log.Warn("Cloudinary is not configured, avatar uploads are disabled")
		return NewDisabledUploader(log), nil
	}
	return NewCloudinaryAdapter(cfg, log)
}

type disabledUploader struct {
	logger logger.Logger
}

func NewDisabledUploader(log logger.Logger) service.Uploader {
	return &disabledUploader{logger: log}
}

func (u *disabledUploader) Upload(_ context.Context, _ io.Reader, folder, publicID string) (string, error) {
	u.logger.Warn("Rejected upload, media storage is disabled", zap.String("folder", folder), zap.String("public_id", publicID))
	return "", ErrUploaderDisabled
}

// Delete has nothing to remove.
func (u *disabledUploader) Delete(_ context.Context, publicID string) error {
	u.logger.Debug("Skipped delete, media storage is disabled", zap.String("public_id", publicID))
	return nil
}
