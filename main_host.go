package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"lumen/app"
	"lumen/hal"
	"lumen/lumen/config"
)

func main() {
	var (
		headless   hal.HeadlessConfig
		term       bool
		termHz     int
		scene      string
		configPath string
		assetDir   string
		reduced    string
		showHUD    bool
		seed       uint64
		dumpConfig bool
	)
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&term, "term", false, "Render into the terminal.")
	flag.IntVar(&termHz, "term-hz", 30, "Refresh rate in terminal mode.")
	flag.StringVar(&scene, "scene", app.SceneAll, "Scene to run: all|backdrop|hero|team.")
	flag.StringVar(&configPath, "config", "", "TOML settings file.")
	flag.StringVar(&assetDir, "assets", "", "Asset directory (overrides the settings file).")
	flag.StringVar(&reduced, "reduced", "", "Reduced interaction: auto|on|off (overrides the settings file).")
	flag.BoolVar(&showHUD, "hud", false, "Show scene diagnostics.")
	flag.Uint64Var(&seed, "seed", 0, "Random seed (0 = random).")
	flag.BoolVar(&dumpConfig, "dump-config", false, "Print the effective settings as TOML and exit.")
	flag.Parse()

	settings := config.Default()
	if configPath != "" {
		var err error
		if settings, err = config.Load(configPath); err != nil {
			fatalf("%v", err)
		}
	}
	if reduced != "" {
		settings.Reduced = reduced
	}
	if assetDir != "" {
		settings.Assets.Dir = assetDir
	}
	if settings.Assets.Dir == "" {
		settings.Assets.Dir = "assets"
	}
	if err := settings.Validate(); err != nil {
		fatalf("%v", err)
	}
	if dumpConfig {
		if err := settings.Encode(os.Stdout); err != nil {
			fatalf("%v", err)
		}
		return
	}

	cfg := app.Config{Scene: scene, Settings: settings, HUD: showHUD, Seed: seed}
	host := hal.HostConfig{AssetDir: settings.Assets.Dir}

	var a *app.App
	newApp := func(h hal.HAL) func() error {
		a = app.NewApp(h, cfg)
		return a.Step
	}
	defer func() {
		if a != nil {
			a.Close()
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch {
	case headless.Enabled:
		headless.Host = host
		err = hal.RunHeadless(ctx, newApp, headless)
	case term:
		err = hal.RunTerminal(ctx, newApp, hal.TerminalConfig{Hz: termHz, Host: host})
	default:
		err = hal.RunWindow(newApp, hal.WindowConfig{Host: host})
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
