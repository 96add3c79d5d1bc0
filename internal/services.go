package internal

import (
	"mime/multipart"

	"github.com/bbyeodagung/web/pkg/job"
	"github.com/bbyeodagung/web/pkg/storage"
)

func (c *requestContext) Enqueue(name string, payload any, opts ...job.EnqueueOption) error {
	if c.app.jobs == nil {
		return job.ErrNotConfigured
	}
	return c.app.jobs.Enqueue(c.Context(), name, payload, opts...)
}

func (c *requestContext) UploadImage(fh *multipart.FileHeader, prefix, name string) (*storage.Object, error) {
	if c.app.storage == nil {
		return nil, storage.ErrNotConfigured
	}
	return storage.PutImage(c.Context(), c.app.storage, fh, prefix, name, c.app.maxUploadSize)
}

func (c *requestContext) DeleteFile(key string) error {
	if c.app.storage == nil {
		return storage.ErrNotConfigured
	}
	return c.app.storage.Delete(c.Context(), key)
}

func (c *requestContext) FileURL(key string) string {
	if c.app.storage == nil || key == "" {
		return ""
	}
	return c.app.storage.URL(key)
}
