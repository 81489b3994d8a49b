package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"lob-charts/chart"
	"lob-charts/infrastructure/logger"
)

// AppConfig holds the settings shared by both chart tools.
type AppConfig struct {
	Log     logger.Config `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Viewer  []string      `yaml:"viewer"` // 查看器命令，空则使用系统默认（xdg-open/open -W）
	Latency LatencyConfig `yaml:"latency"`
	Price   PriceConfig   `yaml:"price"`
}

type MetricsConfig struct {
	Addr     string `yaml:"addr"`     // 仅在 watch 模式下启动 /metrics
	Textfile string `yaml:"textfile"` // node_exporter textfile 输出路径
}

// LatencyConfig 延迟图：Time（µs）对累计操作数。
type LatencyConfig struct {
	Input  string        `yaml:"input"`
	Output string        `yaml:"output"`
	View   bool          `yaml:"view"`
	Chart  chart.Options `yaml:"chart"`
}

// PriceConfig 价格图：按 Bucket 宽度降采样后的价格序列。
type PriceConfig struct {
	Input  string        `yaml:"input"`
	Output string        `yaml:"output"`
	Bucket string        `yaml:"bucket"` // Go duration, e.g. 10ms
	Export string        `yaml:"export"` // 可选：降采样结果写入 CSV
	View   bool          `yaml:"view"`
	Chart  chart.Options `yaml:"chart"`
}

// BucketWidth parses Bucket.
func (p PriceConfig) BucketWidth() (time.Duration, error) {
	d, err := time.ParseDuration(p.Bucket)
	if err != nil {
		return 0, fmt.Errorf("price.bucket: %w", err)
	}
	return d, nil
}

// Default returns the configuration the tools run with when no file is given.
func Default() AppConfig {
	log := logger.DefaultConfig()
	log.Format = "console"
	return AppConfig{
		Log: log,
		Latency: LatencyConfig{
			Input:  "data/example_latency.csv",
			Output: "data/latency.png",
			View:   true,
			Chart: chart.Options{
				Title:  "Latency Scalability: Performance over Cumulative Operations",
				XLabel: "Total Number of Operations Performed",
				YLabel: "Latency (ms)",
				Legend: true,
				Grid:   true,
				ClampX: true,
				ClampY: true,
				Width:  12,
				Height: 7,
				Color:  "#1f77b499",
			},
		},
		Price: PriceConfig{
			Input:  "data/example_data.csv",
			Output: "data/price.png",
			Bucket: "10ms",
			View:   true,
			Chart: chart.Options{
				Title:         "LOB Stock Price Series",
				XLabel:        "Time",
				YLabel:        "Price",
				Grid:          true,
				XTickRotation: 45,
				MaxXTicks:     12,
				ClampX:        true,
				Width:         12,
				Height:        7,
			},
		},
	}
}

// Load reads YAML config from path on top of Default and validates it.
func Load(path string) (AppConfig, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads path (or Default when path is empty) then applies
// LOB_* environment overrides.
func LoadWithEnvOverrides(path string) (AppConfig, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return cfg, err
		}
	}
	if v := os.Getenv("LOB_LATENCY_CSV"); v != "" {
		cfg.Latency.Input = v
	}
	if v := os.Getenv("LOB_PRICE_CSV"); v != "" {
		cfg.Price.Input = v
	}
	if v := os.Getenv("LOB_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOB_OUTPUT_DIR"); v != "" {
		cfg.Latency.Output = filepath.Join(v, filepath.Base(cfg.Latency.Output))
		cfg.Price.Output = filepath.Join(v, filepath.Base(cfg.Price.Output))
	}
	return cfg, Validate(cfg)
}

// Validate ensures required fields are present.
func Validate(cfg AppConfig) error {
	if cfg.Latency.Input == "" {
		return ErrInvalid("latency.input is required")
	}
	if cfg.Latency.Output == "" {
		return ErrInvalid("latency.output is required")
	}
	if cfg.Price.Input == "" {
		return ErrInvalid("price.input is required")
	}
	if cfg.Price.Output == "" {
		return ErrInvalid("price.output is required")
	}
	width, err := cfg.Price.BucketWidth()
	if err != nil {
		return ErrInvalid(err.Error())
	}
	if width <= 0 {
		return ErrInvalid("price.bucket must be > 0")
	}
	for name, c := range map[string]chart.Options{"latency": cfg.Latency.Chart, "price": cfg.Price.Chart} {
		if c.MaxXTicks < 0 {
			return ErrInvalid(fmt.Sprintf("%s.chart.maxXTicks must be >= 0", name))
		}
		if c.Width < 0 || c.Height < 0 {
			return ErrInvalid(fmt.Sprintf("%s.chart width/height must be >= 0", name))
		}
	}
	return nil
}

// ErrInvalid 用于参数验证错误。
type ErrInvalid string

func (e ErrInvalid) Error() string { return string(e) }
