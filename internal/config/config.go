package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration
type Config struct {
	Cuts   CutConfig    `yaml:"cuts"`
	FFmpeg FFmpegConfig `yaml:"ffmpeg"`
	Render RenderConfig `yaml:"render"`
}

// CutConfig holds the scene constraints; all durations are in seconds
type CutConfig struct {
	SkipStart      float64 `yaml:"skip_start"`
	SkipEnd        float64 `yaml:"skip_end"`
	MinSceneLength float64 `yaml:"min_scene_length"`
	Threshold      float64 `yaml:"threshold"`
	Overlap        float64 `yaml:"overlap"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ProbePath  string `yaml:"probe_path"`
	Threads    int    `yaml:"threads"`
	Preset     string `yaml:"preset"`
	CRF        int    `yaml:"crf"`
	VideoCodec string `yaml:"video_codec"`
	AudioCodec string `yaml:"audio_codec"`
}

type RenderConfig struct {
	WorkDir  string  `yaml:"work_dir"`
	FadeIn   float64 `yaml:"fade_in"`
	Spacer   float64 `yaml:"spacer"`
	Workers  int     `yaml:"workers"`
	Progress bool    `yaml:"progress"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Encode writes configuration as YAML to w
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks option ranges
func (c *Config) Validate() error {
	switch {
	case c.Cuts.SkipStart < 0:
		return fmt.Errorf("skip-start must not be negative")
	case c.Cuts.SkipEnd < 0:
		return fmt.Errorf("skip-end must not be negative")
	case c.Cuts.MinSceneLength <= 0:
		return fmt.Errorf("min-scene-length must be positive")
	case c.Cuts.Threshold <= 0 || c.Cuts.Threshold >= 1:
		return fmt.Errorf("threshold must be between 0 and 1")
	case c.Cuts.Overlap < 0:
		return fmt.Errorf("overlap must not be negative")
	case c.Render.FadeIn < 0:
		return fmt.Errorf("render.fade_in must not be negative")
	case c.Render.Spacer < 0:
		return fmt.Errorf("render.spacer must not be negative")
	case c.Render.Workers < 1:
		return fmt.Errorf("render.workers must be at least 1")
	case c.FFmpeg.CRF < 0 || c.FFmpeg.CRF > 51:
		return fmt.Errorf("ffmpeg.crf must be between 0 and 51")
	case c.FFmpeg.Threads < 0:
		return fmt.Errorf("ffmpeg.threads must not be negative")
	}
	return nil
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Cuts: CutConfig{
			SkipStart:      0,
			SkipEnd:        0,
			MinSceneLength: 120,
			Threshold:      0.7,
			Overlap:        4,
		},
		FFmpeg: FFmpegConfig{
			BinaryPath: "ffmpeg",
			ProbePath:  "ffprobe",
			Threads:    0,
			Preset:     "medium",
			CRF:        23,
			VideoCodec: "libx264",
			AudioCodec: "aac",
		},
		Render: RenderConfig{
			WorkDir:  os.TempDir(),
			FadeIn:   0.5,
			Spacer:   0.5,
			Workers:  2,
			Progress: true,
		},
	}
}

// Seconds converts a configured number of seconds to a duration
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func findConfigFile() string {
	candidates := []string{
		"./mementoize.yaml",
		"./mementoize.yml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".mementoize", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return Default()
}
