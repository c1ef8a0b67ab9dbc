package ports

import "context"

// UploadedImage describes a stored asset returned by the image provider.
type UploadedImage struct {
	URL      string
	PublicID string
}

// ImageStore abstracts the external image-storage provider. Uploads happen
// outside any database transaction and must be safe to retry.
type ImageStore interface {
	Upload(ctx context.Context, filename string, content []byte) (*UploadedImage, error)
	Delete(ctx context.Context, publicID string) error
}
