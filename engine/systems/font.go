package systems

import (
	"fmt"

	"github.com/dvitali/maquette/engine/assets"
	"github.com/dvitali/maquette/engine/core"
	"github.com/dvitali/maquette/engine/resources"
)

// FontSystem loads bitmap fonts for HUD text. Fonts load synchronously;
// they are small and needed before the first frame.
type FontSystem struct {
	assetManager *assets.AssetManager
	fonts        map[string]*resources.FontData
}

func NewFontSystem(am *assets.AssetManager) (*FontSystem, error) {
	if am == nil {
		return nil, fmt.Errorf("font system requires an asset manager")
	}
	return &FontSystem{
		assetManager: am,
		fonts:        make(map[string]*resources.FontData),
	}, nil
}

func (fs *FontSystem) Shutdown() error {
	fs.fonts = make(map[string]*resources.FontData)
	return nil
}

// Acquire loads the named bitmap font, or returns the cached copy.
func (fs *FontSystem) Acquire(name string) (*resources.FontData, error) {
	if f, ok := fs.fonts[name]; ok {
		return f, nil
	}
	resource, err := fs.assetManager.LoadAsset(name, resources.ResourceTypeBitmapFont, nil)
	if err != nil {
		return nil, err
	}
	font, ok := resource.Data.(*resources.FontData)
	if !ok {
		return nil, fmt.Errorf("resource '%s' did not contain font data", name)
	}
	fs.fonts[name] = font
	core.LogDebug("loaded bitmap font '%s'", name)
	return font, nil
}
