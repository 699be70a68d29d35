package loaders

import (
	"fmt"

	"github.com/fzipp/bmfont"

	"github.com/dvitali/maquette/engine/resources"
)

// BitmapFontLoader reads AngelCode .fnt descriptors along with their
// glyph page images.
type BitmapFontLoader struct{}

func (fl *BitmapFontLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	font, err := bmfont.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}

	data := &resources.FontData{
		Descriptor: font.Descriptor,
		Pages:      make(map[int]*resources.ImageData, len(font.PageSheets)),
	}
	for id, sheet := range font.PageSheets {
		data.Pages[id] = convertRGBA(sheet, false)
	}

	return &resources.Resource{
		FullPath: path,
		DataSize: uint64(len(font.Descriptor.Chars)),
		Data:     data,
	}, nil
}

func (fl *BitmapFontLoader) Unload(resource *resources.Resource) error {
	if resource != nil && resource.Data != nil {
		if data, ok := resource.Data.(*resources.FontData); ok {
			data.Pages = nil
			data.Descriptor = nil
		}
		resource.Data = nil
		resource.DataSize = 0
	}
	return nil
}
