package catalog

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/media"
)

// Cache holds public catalog reads. *cache.Client satisfies it.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) bool
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration)
	Invalidate(ctx context.Context, prefix string)
}

// ImageStore persists uploaded pictures and returns their public URL.
// *media.Storage satisfies it.
type ImageStore interface {
	Upload(ctx context.Context, folder string, r io.Reader) (string, error)
}

const (
	servicesKey = "services"
	stylistsKey = "stylists"
)

func upload(ctx context.Context, store ImageStore, folder string, r io.Reader) (string, error) {
	if store == nil {
		return "", httperr.ErrUnavailable("storage_not_configured")
	}
	url, err := store.Upload(ctx, folder, r)
	if errors.Is(err, media.ErrInvalidImage) {
		return "", httperr.ErrBusiness("invalid_image")
	}
	return url, err
}

func notFound(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrNotFound(code)
	}
	return err
}
