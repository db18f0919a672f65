package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/rewear/internal/model"
)

type mapResolver map[string][]byte

func (m mapResolver) Image(_ context.Context, id string) ([]byte, bool) {
	data, ok := m[id]
	return data, ok
}

func TestGetWithImagesDropsBrokenReferences(t *testing.T) {
	resolver := mapResolver{
		"img-a":     []byte("jpeg-a"),
		"img-c":     []byte("jpeg-c"),
		"img-empty": {},
	}
	s, _ := newTestStore(t, WithImages(resolver))
	ctx := context.Background()

	it := jacket()
	it.Images = []string{"img-a", "img-evicted", "img-empty", "img-c"}
	created, err := s.Items.Create(ctx, it)
	require.NoError(t, err)

	got := s.Items.GetWithImages(ctx, created.ID)
	require.NotNil(t, got)
	assert.Equal(t, [][]byte{[]byte("jpeg-a"), []byte("jpeg-c")}, got.ImageData)
	assert.Equal(t, it.Images, got.Images)
}

func TestGetWithImagesMissingItem(t *testing.T) {
	s, _ := newTestStore(t, WithImages(mapResolver{}))
	assert.Nil(t, s.Items.GetWithImages(context.Background(), "item-missing"))
}

func TestGetWithImagesWithoutResolver(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, _ := s.Items.Create(ctx, model.Item{Title: "x", Images: []string{"img"}})
	got := s.Items.GetWithImages(ctx, created.ID)
	require.NotNil(t, got)
	assert.Empty(t, got.ImageData)
}
