package store

import (
	"context"

	"github.com/erazemk/rewear/internal/model"
)

// ImageResolver maps an image id to its encoded payload.
type ImageResolver interface {
	Image(ctx context.Context, id string) ([]byte, bool)
}

// GetWithImages returns the item joined with the payloads of its images, or
// nil if the item does not exist. Ids that resolve to nothing are dropped,
// so ImageData is never longer than Images and holds no empty entries.
func (r *Items) GetWithImages(ctx context.Context, id string) *model.ItemWithImages {
	item := r.Get(ctx, id)
	if item == nil {
		return nil
	}

	out := &model.ItemWithImages{Item: *item, ImageData: [][]byte{}}
	if r.images == nil {
		return out
	}
	for _, imageID := range item.Images {
		data, ok := r.images.Image(ctx, imageID)
		if !ok || len(data) == 0 {
			r.c.log.Debug("dropping unresolved image", "item_id", id, "image_id", imageID)
			continue
		}
		out.ImageData = append(out.ImageData, data)
	}
	return out
}
