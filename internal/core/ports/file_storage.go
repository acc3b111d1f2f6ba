package ports

import (
	"context"
	"io"
)

// FileStorage is the port for the object store holding uploaded listing
// images (S3 / MinIO). Implementations return the public URL of the stored
// object.
type FileStorage interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}
