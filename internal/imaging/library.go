package imaging

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/erazemk/rewear/internal/kv"
)

// keyPrefix namespaces image payloads in the substrate.
const keyPrefix = "rewear-image-"

// Library stores processed photos in the substrate, one key per image. It
// resolves image ids for store.Items.GetWithImages.
type Library struct {
	kv  *kv.Substrate
	log *slog.Logger
}

// NewLibrary returns a Library over s.
func NewLibrary(s *kv.Substrate) *Library {
	return &Library{kv: s, log: slog.Default()}
}

// Put processes r and stores the result, returning the new image id. The
// error wraps a *kv.WriteError when the photo does not fit in storage.
func (l *Library) Put(ctx context.Context, r io.Reader) (string, error) {
	photo, err := Process(r)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	if err := l.kv.WriteBlob(ctx, keyPrefix+id, photo.Data); err != nil {
		return "", fmt.Errorf("storing image: %w", err)
	}

	l.log.Debug("stored image", "id", id, "bytes", len(photo.Data), "width", photo.Width, "height", photo.Height)
	return id, nil
}

// Image returns the stored payload for id.
func (l *Library) Image(ctx context.Context, id string) ([]byte, bool) {
	if id == "" {
		return nil, false
	}
	return l.kv.ReadBlob(ctx, keyPrefix+id)
}

// Delete removes the payload for id. Items still referencing it will simply
// resolve one image fewer.
func (l *Library) Delete(ctx context.Context, id string) error {
	if err := l.kv.DeleteBlob(ctx, keyPrefix+id); err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}
	return nil
}
