package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/bbyeodagung/web/pkg/id"
	"github.com/bbyeodagung/web/pkg/slug"
)

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// PutImage validates an uploaded image and stores it under
// "<prefix>/<slug of name>-<ulid><ext>". The type is sniffed from content,
// not taken from the client.
func PutImage(ctx context.Context, s Storage, fh *multipart.FileHeader, prefix, name string, maxSize int64) (*Object, error) {
	if fh == nil || fh.Size == 0 {
		return nil, ErrEmptyFile
	}
	if maxSize > 0 && fh.Size > maxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, fh.Size, maxSize)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("storage: open upload: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("storage: read upload: %w", err)
	}
	contentType := http.DetectContentType(head[:n])
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}

	ext, ok := imageExt[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMIME, contentType)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("storage: rewind upload: %w", err)
	}

	return s.Put(ctx, ObjectKey(prefix, name, ext), f, fh.Size, contentType)
}

// ObjectKey builds a collision-free key from a human-readable name.
func ObjectKey(prefix, name, ext string) string {
	base := strings.ToLower(id.NewULID())
	if s := slug.Make(name, slug.MaxLength(48)); s != "" {
		base = s + "-" + base
	}
	return path.Join(prefix, base+ext)
}
