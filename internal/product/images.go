package product

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mesh-intelligence/metaform/pkg/types"
)

// ErrIndexOutOfRange is returned when a reorder index does not address an
// existing image.
var ErrIndexOutOfRange = errors.New("image index out of range")

// ImageReorderVariables are the variables of the image reorder mutation.
type ImageReorderVariables struct {
	ImagesIDs []string `json:"imagesIds"`
	ProductID string   `json:"productId"`
}

// ImageCreateVariables are the variables of the image upload mutation.
// Image is the path or URL of the uploaded file.
type ImageCreateVariables struct {
	Alt     string `json:"alt"`
	Image   string `json:"image"`
	Product string `json:"product"`
}

// ReorderImages moves the image at oldIndex to newIndex and returns the full
// reordered id list. p is not modified.
func ReorderImages(p *types.Product, oldIndex, newIndex int) (ImageReorderVariables, error) {
	if p == nil {
		return ImageReorderVariables{}, types.ErrInvalidData
	}
	ids := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		ids = append(ids, img.ID)
	}
	moved, err := MoveID(ids, oldIndex, newIndex)
	if err != nil {
		return ImageReorderVariables{}, err
	}
	return ImageReorderVariables{ImagesIDs: moved, ProductID: p.ID}, nil
}

// MoveID returns a copy of ids with the element at from moved to position to.
func MoveID(ids []string, from, to int) ([]string, error) {
	if from < 0 || from >= len(ids) || to < 0 || to >= len(ids) {
		return nil, fmt.Errorf("%w: move %d to %d of %d", ErrIndexOutOfRange, from, to, len(ids))
	}
	out := slices.Clone(ids)
	id := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, id), nil
}

// ImageCreate builds the upload variables for a new image with an empty alt
// text.
func ImageCreate(productID, image string) ImageCreateVariables {
	return ImageCreateVariables{Alt: "", Image: image, Product: productID}
}
