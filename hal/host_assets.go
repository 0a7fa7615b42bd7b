package hal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DirAssets serves assets from a directory. Names are slash-separated and may not escape the root.
type DirAssets struct {
	root string
}

// NewDirAssets returns an Assets implementation rooted at dir.
func NewDirAssets(dir string) *DirAssets {
	return &DirAssets{root: dir}
}

func (a *DirAssets) Fetch(name string) ([]byte, error) {
	clean := path.Clean("/" + strings.TrimSpace(name))
	if clean == "/" {
		return nil, fmt.Errorf("assets: %q: %w", name, ErrAssetNotFound)
	}
	data, err := os.ReadFile(filepath.Join(a.root, filepath.FromSlash(clean[1:])))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("assets: %q: %w", name, ErrAssetNotFound)
		}
		return nil, fmt.Errorf("assets: %q: %w", name, err)
	}
	return data, nil
}

type nullAssets struct{}

func (nullAssets) Fetch(name string) ([]byte, error) {
	return nil, fmt.Errorf("assets: %q: %w", name, ErrAssetNotFound)
}
