package service

import (
	"context"
	"io"
)

type Uploader interface {
	// Upload stores the file under folder/publicID and returns its public https URL.
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
}
