package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `toml:"server" yaml:"server"`
	Game    GameConfig    `toml:"game" yaml:"game"`
	Network NetworkConfig `toml:"network" yaml:"network"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

type ServerConfig struct {
	Addr           string   `toml:"addr" yaml:"addr"`
	AdminAddr      string   `toml:"admin_addr" yaml:"admin_addr"` // 管理与监控接口的独立监听地址，为空则不开启
	StaticDir      string   `toml:"static_dir" yaml:"static_dir"`
	AllowedOrigins []string `toml:"allowed_origins" yaml:"allowed_origins"` // 为空则允许所有来源
}

// GameConfig 单局规则，所有会话共用同一棋盘尺寸
type GameConfig struct {
	Width             int           `toml:"width" yaml:"width"`
	Height            int           `toml:"height" yaml:"height"`
	TickInterval      time.Duration `toml:"tick_interval" yaml:"tick_interval"`
	TurnDebounce      time.Duration `toml:"turn_debounce" yaml:"turn_debounce"`
	AutoplayThreshold int           `toml:"autoplay_threshold" yaml:"autoplay_threshold"` // 累计死亡次数达到后开启自动驾驶
	FoodScore         int           `toml:"food_score" yaml:"food_score"`
	MaxRecordedMoves  int           `toml:"max_recorded_moves" yaml:"max_recorded_moves"` // 训练记录上限，超出丢弃最旧
}

type NetworkConfig struct {
	SendQueue    int           `toml:"send_queue" yaml:"send_queue"` // 每个连接缓存的快照数
	WriteTimeout time.Duration `toml:"write_timeout" yaml:"write_timeout"`
	ReadTimeout  time.Duration `toml:"read_timeout" yaml:"read_timeout"`
	PingInterval time.Duration `toml:"ping_interval" yaml:"ping_interval"`
	ReadLimit    int64         `toml:"read_limit" yaml:"read_limit"`
}

type LoggingConfig struct {
	Level      string `toml:"level" yaml:"level"`
	Format     string `toml:"format" yaml:"format"` // "json" 或 "console"
	File       string `toml:"file" yaml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" yaml:"max_age_days"`
	Stderr     bool   `toml:"stderr" yaml:"stderr"`
}

// Load 按扩展名读取 TOML 或 YAML，覆盖在 Default() 之上；path 为空时直接返回默认值
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      ":8000",
			StaticDir: "assets",
		},
		Game: GameConfig{
			Width:             30,
			Height:            30,
			TickInterval:      100 * time.Millisecond,
			TurnDebounce:      50 * time.Millisecond,
			AutoplayThreshold: 5,
			FoodScore:         10,
			MaxRecordedMoves:  1000,
		},
		Network: NetworkConfig{
			SendQueue:    64,
			WriteTimeout: 5 * time.Second,
			ReadTimeout:  60 * time.Second,
			PingInterval: 50 * time.Second,
			ReadLimit:    1 << 20,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			File:       "app.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// Validate 一次性报告所有非法字段
func (c *Config) Validate() error {
	var merr *multierror.Error
	if c.Game.Width <= 0 || c.Game.Height <= 0 {
		merr = multierror.Append(merr, fmt.Errorf("game: board must be positive, got %dx%d", c.Game.Width, c.Game.Height))
	}
	if c.Game.TickInterval <= 0 {
		merr = multierror.Append(merr, fmt.Errorf("game.tick_interval must be positive"))
	}
	if c.Game.TurnDebounce < 0 {
		merr = multierror.Append(merr, fmt.Errorf("game.turn_debounce must not be negative"))
	}
	if c.Game.AutoplayThreshold <= 0 {
		merr = multierror.Append(merr, fmt.Errorf("game.autoplay_threshold must be positive"))
	}
	if c.Game.FoodScore <= 0 {
		merr = multierror.Append(merr, fmt.Errorf("game.food_score must be positive"))
	}
	if c.Game.MaxRecordedMoves <= 0 {
		merr = multierror.Append(merr, fmt.Errorf("game.max_recorded_moves must be positive"))
	}
	if c.Server.AdminAddr != "" && c.Server.AdminAddr == c.Server.Addr {
		merr = multierror.Append(merr, fmt.Errorf("server.admin_addr must differ from server.addr"))
	}
	if c.Network.ReadLimit <= 0 {
		merr = multierror.Append(merr, fmt.Errorf("network.read_limit must be positive"))
	}
	if c.Network.SendQueue <= 0 {
		merr = multierror.Append(merr, fmt.Errorf("network.send_queue must be positive"))
	}
	if c.Network.ReadTimeout <= 0 || c.Network.PingInterval <= 0 || c.Network.WriteTimeout <= 0 {
		merr = multierror.Append(merr, fmt.Errorf("network: read_timeout, write_timeout and ping_interval must be positive"))
	} else if c.Network.PingInterval >= c.Network.ReadTimeout {
		merr = multierror.Append(merr, fmt.Errorf("network.ping_interval (%s) must be shorter than read_timeout (%s)",
			c.Network.PingInterval, c.Network.ReadTimeout))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		merr = multierror.Append(merr, fmt.Errorf("logging.format %q: want console or json", c.Logging.Format))
	}
	return merr.ErrorOrNil()
}
