package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"

	"github.com/dvitali/maquette/engine/resources"
)

type ImageLoader struct{}

// ImageParams selects optional decode behavior.
type ImageParams struct {
	// FlipY mirrors the image vertically while converting.
	FlipY bool
}

func (il *ImageLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}

	flip := false
	if p, ok := params.(*ImageParams); ok {
		flip = p.FlipY
	}

	data := convertRGBA(src, flip)

	return &resources.Resource{
		FullPath: path,
		DataSize: uint64(len(data.Pixels)),
		Data:     data,
	}, nil
}

func (il *ImageLoader) Unload(*resources.Resource) error {
	return nil
}

// convertRGBA renders the decoded image into a tightly packed RGBA
// buffer, optionally flipped on Y.
func convertRGBA(src image.Image, flipY bool) *resources.ImageData {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(rgba, rgba.Bounds(), src, bounds.Min, xdraw.Src)

	pixels := rgba.Pix
	if flipY {
		flipped := make([]uint8, len(pixels))
		stride := rgba.Stride
		for y := 0; y < h; y++ {
			copy(flipped[y*stride:(y+1)*stride], pixels[(h-1-y)*stride:(h-y)*stride])
		}
		pixels = flipped
	}

	return &resources.ImageData{
		ChannelCount: 4,
		Width:        uint32(w),
		Height:       uint32(h),
		Pixels:       pixels,
	}
}
