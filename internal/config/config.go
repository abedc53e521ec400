package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Viewer  ViewerConfig  `toml:"viewer"`
	Assets  AssetsConfig  `toml:"assets"`
	Draw    DrawConfig    `toml:"draw"`
	Stream  StreamConfig  `toml:"stream"`
	Logging LoggingConfig `toml:"logging"`
}

type ViewerConfig struct {
	TickRate   time.Duration `toml:"tick_rate"`
	ScriptsDir string        `toml:"scripts_dir"`
}

type AssetsConfig struct {
	SkeletonPath string `toml:"skeleton_path"`
	MeshPath     string `toml:"mesh_path"`
}

// DrawConfig seeds the runtime visualization options. Colors are RGB triples
// in 0..1.
type DrawConfig struct {
	Enabled     bool       `toml:"enabled"`
	Joints      bool       `toml:"joints"`
	Bones       bool       `toml:"bones"`
	Axes        bool       `toml:"axes"`
	JointRadius float64    `toml:"joint_radius"`
	RootScale   float64    `toml:"root_scale"`
	BorderWidth float64    `toml:"border_width"`
	BoneColor   [3]float64 `toml:"bone_color"`
	RootColor   [3]float64 `toml:"root_color"`
}

type StreamConfig struct {
	Enabled       bool   `toml:"enabled"`
	BindAddress   string `toml:"bind_address"`
	SendQueueSize int    `toml:"send_queue_size"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Viewer: ViewerConfig{
			TickRate:   16 * time.Millisecond,
			ScriptsDir: "scripts",
		},
		Assets: AssetsConfig{
			SkeletonPath: "assets/skeletons.yaml",
			MeshPath:     "assets/meshes.yaml",
		},
		Draw: DrawConfig{
			Enabled:     true,
			Joints:      true,
			Bones:       true,
			Axes:        true,
			JointRadius: 0.05,
			RootScale:   1.0,
			BorderWidth: 1.0,
			BoneColor:   [3]float64{0.85, 0.85, 0.85},
			RootColor:   [3]float64{1.0, 0.3, 0.05},
		},
		Stream: StreamConfig{
			Enabled:       false,
			BindAddress:   "127.0.0.1:7801",
			SendQueueSize: 8,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
