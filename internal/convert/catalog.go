package convert

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Faultbox/rbxvmf/pkg/tga"
)

// DirCatalog serves stock textures from a directory. A texture is read
// from <name>.png, or converted from <name>.tga when no PNG exists.
type DirCatalog struct {
	Root string
}

// Open implements Catalog.
func (c DirCatalog) Open(name string) (io.ReadCloser, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid texture name %q: %w", name, fs.ErrNotExist)
	}

	f, err := os.Open(filepath.Join(c.Root, name+".png"))
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	src, err := os.Open(filepath.Join(c.Root, name+".tga"))
	if err != nil {
		return nil, err
	}
	defer src.Close()

	img, err := tga.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decoding %s.tga: %w", name, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return io.NopCloser(&buf), nil
}
