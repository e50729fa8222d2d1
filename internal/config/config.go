package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds canopy configuration.
type Config struct {
	Physics PhysicsConfig `toml:"physics"`
	Render  RenderConfig  `toml:"render"`
	Camera  CameraConfig  `toml:"camera"`
	Export  ExportConfig  `toml:"export"`
}

// PhysicsConfig tunes the force simulation.
type PhysicsConfig struct {
	Repulsion     float64 `toml:"repulsion"`      // charge strength pushing every pair apart
	LinkDistance  float64 `toml:"link_distance"`  // rest length of a link spring
	LinkStiffness float64 `toml:"link_stiffness"` // fraction of the displacement applied per tick
	Centering     float64 `toml:"centering"`      // pull toward the origin
	Damping       float64 `toml:"damping"`        // velocity decay per tick
	CollidePad    float64 `toml:"collide_pad"`    // extra spacing enforced between node rims
	WarmupTicks   int     `toml:"warmup_ticks"`   // ticks run before the first paint
	CooldownTicks int     `toml:"cooldown_ticks"` // tick budget after warm-up before forced settle
}

// RenderConfig tunes node and edge painting.
type RenderConfig struct {
	MinNodeSize   float64 `toml:"min_node_size"`
	MaxNodeSize   float64 `toml:"max_node_size"`
	SelectedSize  float64 `toml:"selected_size"`   // fixed radius override for the selected node
	SearchHitSize float64 `toml:"search_hit_size"` // fixed radius override for search matches
	MinFontSize   float64 `toml:"min_font_size"`
	MaxFontSize   float64 `toml:"max_font_size"`
	EdgeBaseWidth float64 `toml:"edge_base_width"`
	Background    string  `toml:"background"`
	ShowLabels    bool    `toml:"show_labels"`
}

// CameraConfig tunes camera behavior.
type CameraConfig struct {
	MinZoom    float64 `toml:"min_zoom"`
	MaxZoom    float64 `toml:"max_zoom"`
	ZoomStep   float64 `toml:"zoom_step"`   // multiplier applied by zoom in/out
	FitPadding float64 `toml:"fit_padding"` // pixels kept clear around a fitted graph
	FocusZoom  float64 `toml:"focus_zoom"`  // zoom applied when centering on a node
	AnimMillis int     `toml:"anim_millis"` // duration of camera animations
}

// ExportConfig tunes output generation.
type ExportConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Physics: PhysicsConfig{
			Repulsion:     2000,
			LinkDistance:  120,
			LinkStiffness: 0.005,
			Centering:     0.001,
			Damping:       0.85,
			CollidePad:    2,
			WarmupTicks:   100,
			CooldownTicks: 300,
		},
		Render: RenderConfig{
			MinNodeSize:   6,
			MaxNodeSize:   18,
			SelectedSize:  20,
			SearchHitSize: 16,
			MinFontSize:   9,
			MaxFontSize:   16,
			EdgeBaseWidth: 1.5,
			Background:    "#0a0e17",
			ShowLabels:    true,
		},
		Camera: CameraConfig{
			MinZoom:    0.1,
			MaxZoom:    5,
			ZoomStep:   1.25,
			FitPadding: 40,
			FocusZoom:  2.5,
			AnimMillis: 400,
		},
		Export: ExportConfig{
			Width:  1200,
			Height: 800,
		},
	}
}

// ConfigDir returns the canopy config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "canopy")
}

func configPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, falling back to defaults if it doesn't exist.
func Load() *Config {
	cfg := Default()
	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}
	_ = toml.Unmarshal(data, cfg)
	return cfg
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() error {
	if _, err := os.Stat(configPath()); err == nil {
		return nil // already exists
	}
	return Save(Default())
}
