// Command mksnap renders the scenes headless and writes the composited
// frame as a PNG. With -check it instead decodes every image under the
// asset directory and reports the ones the scenes would replace with a
// fallback.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"lumen/app"
	"lumen/hal"
	"lumen/lumen/asset"
	"lumen/lumen/config"
)

const (
	defaultSnapPath = "snap.png"
	defaultTicks    = 90
)

func main() {
	var (
		outPath    string
		scene      string
		configPath string
		assetDir   string
		width      int
		height     int
		ticks      uint64
		seed       uint64
		showHUD    bool
		check      bool
	)
	flag.StringVar(&outPath, "out", defaultSnapPath, "Output PNG path.")
	flag.StringVar(&scene, "scene", app.SceneAll, "Scene to render: all|backdrop|hero|team.")
	flag.StringVar(&configPath, "config", "", "TOML settings file.")
	flag.StringVar(&assetDir, "assets", "assets", "Asset directory.")
	flag.IntVar(&width, "width", 960, "Viewport width.")
	flag.IntVar(&height, "height", 600, "Viewport height.")
	flag.Uint64Var(&ticks, "ticks", defaultTicks, "Frames to run before the snapshot.")
	flag.Uint64Var(&seed, "seed", 1, "Random seed.")
	flag.BoolVar(&showHUD, "hud", false, "Draw scene diagnostics.")
	flag.BoolVar(&check, "check", false, "Check the asset directory instead of rendering.")
	flag.Parse()

	settings := config.Default()
	if configPath != "" {
		var err error
		if settings, err = config.Load(configPath); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(2)
		}
	}

	if check {
		bad, err := checkAssets(assetDir, settings.Assets.TextureSize)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		if bad > 0 {
			os.Exit(1)
		}
		return
	}

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "error: -out is required")
		os.Exit(2)
	}
	cfg := app.Config{Scene: scene, Settings: settings, HUD: showHUD, Seed: seed}
	if err := snap(outPath, cfg, hal.HostConfig{Width: width, Height: height, AssetDir: assetDir}, ticks); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func snap(outPath string, cfg app.Config, host hal.HostConfig, ticks uint64) error {
	if ticks == 0 {
		ticks = 1
	}
	var (
		h hal.HAL
		a *app.App
	)
	err := hal.RunHeadless(context.Background(), func(hh hal.HAL) func() error {
		h = hh
		a = app.NewApp(hh, cfg)
		return a.Step
	}, hal.HeadlessConfig{Enabled: true, Hz: 240, Ticks: ticks, Host: host})
	if a != nil {
		defer a.Close()
	}
	if err != nil {
		return err
	}

	img := hal.FramebufferImage(h.Display().Framebuffer())
	if img == nil {
		return fmt.Errorf("no framebuffer")
	}
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode %q: %w", outPath, err)
	}
	return out.Close()
}

func checkAssets(dir string, size int) (bad int, err error) {
	dir = filepath.Clean(dir)
	st, err := os.Stat(dir)
	if err != nil {
		return 0, fmt.Errorf("stat assets %q: %w", dir, err)
	}
	if !st.IsDir() {
		return 0, fmt.Errorf("assets %q is not a directory", dir)
	}

	var files []string
	walkErr := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return 0, fmt.Errorf("walk assets %q: %w", dir, walkErr)
	}
	sort.Strings(files)

	for _, path := range files {
		rel, _ := filepath.Rel(dir, path)
		data, err := os.ReadFile(path)
		if err != nil {
			return bad, fmt.Errorf("read %q: %w", path, err)
		}
		tex, err := asset.Decode(data, size)
		if err != nil {
			bad++
			fmt.Printf("FAIL %s: %v\n", filepath.ToSlash(rel), err)
			continue
		}
		fmt.Printf("ok   %s %dx%d\n", filepath.ToSlash(rel), tex.W, tex.H)
	}
	return bad, nil
}
