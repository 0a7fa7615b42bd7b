// Package config loads scene profiles from TOML.
//
// Every field has a built-in default, so a profile only lists what it
// changes. Unknown keys are rejected.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"lumen/lumen/loop"
	"lumen/lumen/quarkgl"
)

var ErrInvalid = errors.New("config: invalid")

// Config is a full scene profile.
type Config struct {
	// Reduced is "auto", "on" or "off".
	Reduced string `toml:"reduced"`

	Pointer  Pointer  `toml:"pointer"`
	Backdrop Backdrop `toml:"backdrop"`
	Hero     Hero     `toml:"hero"`
	Team     Team     `toml:"team"`
	Assets   Assets   `toml:"assets"`
}

// Pointer configures pointer smoothing. TauMS > 0 selects time-scaled
// smoothing; otherwise Factor is applied once per tick.
type Pointer struct {
	Factor float32 `toml:"factor"`
	TauMS  int     `toml:"tau_ms"`
}

type Backdrop struct {
	Particles        int     `toml:"particles"`
	ReducedParticles int     `toml:"reduced_particles"`
	Stars            int     `toml:"stars"`
	ReducedStars     int     `toml:"reduced_stars"`
	RadiusMin        float32 `toml:"radius_min"`
	RadiusMax        float32 `toml:"radius_max"`
	StarHalfExtent   float32 `toml:"star_half_extent"`
	GoldShare        float32 `toml:"gold_share"`
	Gold             string  `toml:"gold"`
	White            string  `toml:"white"`
	Opacity          float32 `toml:"opacity"`
	CameraZ          float32 `toml:"camera_z"`
}

type Hero struct {
	Particles   int     `toml:"particles"`
	CoreRadius  float32 `toml:"core_radius"`
	ShellRadius float32 `toml:"shell_radius"`
	Color       string  `toml:"color"`
	ShellColor  string  `toml:"shell_color"`
	Logo        string  `toml:"logo"`
	LogoSize    float32 `toml:"logo_size"`
	CameraZ     float32 `toml:"camera_z"`
}

type Team struct {
	Members      int     `toml:"members"`
	PoolCapacity int     `toml:"pool_capacity"`
	Threshold    float32 `toml:"threshold"`
	OpacityScale float32 `toml:"opacity_scale"`
	RepelRadius  float32 `toml:"repel_radius"`
	Color        string  `toml:"color"`
}

type Assets struct {
	Dir         string `toml:"dir"`
	TimeoutMS   int    `toml:"timeout_ms"`
	TextureSize int    `toml:"texture_size"`
}

// Default returns the built-in profile.
func Default() Config {
	return Config{
		Reduced: "auto",
		Pointer: Pointer{Factor: 0.05},
		Backdrop: Backdrop{
			Particles:        2000,
			ReducedParticles: 500,
			Stars:            100,
			ReducedStars:     30,
			RadiusMin:        50,
			RadiusMax:        150,
			StarHalfExtent:   100,
			GoldShare:        0.7,
			Gold:             "#FFC222",
			White:            "#FFFFFF",
			Opacity:          0.8,
			CameraZ:          80,
		},
		Hero: Hero{
			Particles:   200,
			CoreRadius:  10,
			ShellRadius: 15,
			Color:       "#FFC222",
			ShellColor:  "#FFD666",
			Logo:        "img/logo.png",
			LogoSize:    6,
			CameraZ:     35,
		},
		Team: Team{
			Members:      8,
			PoolCapacity: 50,
			Threshold:    350,
			OpacityScale: 0.4,
			RepelRadius:  150,
			Color:        "#FFC222",
		},
		Assets: Assets{
			TimeoutMS:   3000,
			TextureSize: 128,
		},
	}
}

// Load reads a profile file over the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	c, err := Decode(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Decode parses a TOML profile over the defaults and validates it.
func Decode(data []byte) (Config, error) {
	c := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Encode writes the profile as TOML.
func (c Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(c)
}

// Validate checks colors and modes. Counts and radii are not checked: the
// samplers treat invalid values as empty.
func (c Config) Validate() error {
	if _, err := c.ReducedMode(); err != nil {
		return err
	}
	for _, s := range []string{c.Backdrop.Gold, c.Backdrop.White, c.Hero.Color, c.Hero.ShellColor, c.Team.Color} {
		if _, err := quarkgl.Hex(s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	if c.Pointer.Factor < 0 || c.Pointer.Factor > 1 {
		return fmt.Errorf("%w: pointer.factor %v outside [0,1]", ErrInvalid, c.Pointer.Factor)
	}
	return nil
}

// ReducedMode maps the reduced setting.
func (c Config) ReducedMode() (loop.ReducedMode, error) {
	switch c.Reduced {
	case "", "auto":
		return loop.ReducedAuto, nil
	case "on":
		return loop.ReducedOn, nil
	case "off":
		return loop.ReducedOff, nil
	}
	return loop.ReducedAuto, fmt.Errorf("%w: reduced %q (want auto, on or off)", ErrInvalid, c.Reduced)
}

// PointerTau returns the smoothing time constant, or zero for fixed-factor smoothing.
func (c Config) PointerTau() time.Duration {
	return time.Duration(c.Pointer.TauMS) * time.Millisecond
}

// AssetTimeout returns the asset load timeout.
func (c Config) AssetTimeout() time.Duration {
	return time.Duration(c.Assets.TimeoutMS) * time.Millisecond
}

// Color parses a validated hex color, falling back to white.
func Color(s string) quarkgl.Color {
	col, err := quarkgl.Hex(s)
	if err != nil {
		return quarkgl.RGB(0xFF, 0xFF, 0xFF)
	}
	return col
}
