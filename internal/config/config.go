// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ViewerConfig holds model and preview settings.
type ViewerConfig struct {
	SkinPath    string `yaml:"skin_path"`    // PNG to load on startup, empty for the placeholder
	Variant     string `yaml:"variant"`      // "classic" or "slim"
	Pose        string `yaml:"pose"`         // "standing", "walking" or "tpose"
	ShowOverlay bool   `yaml:"show_overlay"` // hat/jacket/sleeve layer visible
	ShowGrid    bool   `yaml:"show_grid"`    // texel grid on the model
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1024,
			Height:     768,
			Fullscreen: false,
			VSync:      true,
		},
		Viewer: ViewerConfig{
			SkinPath:    "",
			Variant:     "classic",
			Pose:        "standing",
			ShowOverlay: true,
			ShowGrid:    false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
