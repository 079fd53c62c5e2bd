package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorderImages(t *testing.T) {
	p := sampleProduct()

	got, err := ReorderImages(p, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, ImageReorderVariables{ImagesIDs: []string{"i2", "i3", "i1"}, ProductID: "p1"}, got)
	assert.Equal(t, "i1", p.Images[0].ID, "product is not modified")

	got, err = ReorderImages(p, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"i3", "i1", "i2"}, got.ImagesIDs)

	got, err = ReorderImages(p, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"i1", "i2", "i3"}, got.ImagesIDs)
}

func TestReorderImagesOutOfRange(t *testing.T) {
	p := sampleProduct()
	for _, idx := range [][2]int{{-1, 0}, {0, 3}, {3, 0}} {
		_, err := ReorderImages(p, idx[0], idx[1])
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
}

func TestImageCreate(t *testing.T) {
	assert.Equal(t, ImageCreateVariables{Alt: "", Image: "shots/front.png", Product: "p1"},
		ImageCreate("p1", "shots/front.png"))
}
