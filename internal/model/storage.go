package model

import (
	"context"
	"io"
)

// Storage keeps product images. Keys look like products/<productID>/<uuid>
// and URL returns the address shoppers fetch the image from.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
