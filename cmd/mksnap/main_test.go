package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/app"
	"lumen/hal"
	"lumen/lumen/config"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	img.Set(0, 0, color.NRGBA{R: 0xFF, A: 0xFF})
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestCheckAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "img"), 0o755))
	writePNG(t, filepath.Join(dir, "img", "logo.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))

	bad, err := checkAssets(dir, 16)
	require.NoError(t, err)
	assert.Equal(t, 1, bad)

	_, err = checkAssets(filepath.Join(dir, "missing"), 16)
	assert.Error(t, err)
}

func TestSnapWritesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "snap.png")
	cfg := app.Config{Scene: app.SceneBackdrop, Settings: config.Default(), Seed: 3}
	require.NoError(t, snap(out, cfg, hal.HostConfig{Width: 64, Height: 40}, 3))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 40), img.Bounds())
}
