// Package cli holds the flag handling shared by cmd/latency and cmd/priceplot.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"lob-charts/chart"
	"lob-charts/config"
	"lob-charts/infrastructure/logger"
	"lob-charts/infrastructure/monitor"
	"lob-charts/internal/watch"
	"lob-charts/metrics"
	"lob-charts/report"
)

// Tool selects which pipeline a binary runs.
type Tool string

const (
	Latency Tool = report.PipelineLatency
	Price   Tool = report.PipelinePrice
)

type options struct {
	configPath  string
	input       string
	output      string
	bucket      string
	export      string
	view        bool
	viewSet     bool
	viewer      string
	watch       bool
	metricsAddr string
	metricsFile string
	logLevel    string
}

func parseFlags(tool Tool, args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet(string(tool), flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "YAML 配置文件路径（可选）")
	fs.StringVar(&o.input, "in", "", "输入 CSV，覆盖配置")
	fs.StringVar(&o.output, "out", "", "输出图片路径（png/svg/pdf），覆盖配置")
	if tool == Price {
		fs.StringVar(&o.bucket, "bucket", "", "降采样窗口宽度，例如 10ms")
		fs.StringVar(&o.export, "export", "", "降采样结果另存为 CSV")
	}
	fs.BoolVar(&o.view, "view", true, "渲染后用查看器打开；无显示环境用 -view=false")
	fs.StringVar(&o.viewer, "viewer", "", "查看器命令，例如 \"feh -Z\"，覆盖配置")
	fs.BoolVar(&o.watch, "watch", false, "输入文件变化时重新渲染，直到收到 SIGINT/SIGTERM")
	fs.StringVar(&o.metricsAddr, "metricsAddr", "", "watch 模式下 Prometheus 指标监听地址，例如 :9100")
	fs.StringVar(&o.metricsFile, "metricsFile", "", "退出时写入 node_exporter textfile 指标")
	fs.StringVar(&o.logLevel, "logLevel", "", "日志级别 debug/info/warn/error")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "view" {
			o.viewSet = true
		}
	})
	return o, nil
}

// Main runs tool with args and returns the process exit code.
func Main(tool Tool, args []string) int {
	o, err := parseFlags(tool, args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	// .env 不存在时忽略
	_ = godotenv.Load()

	cfg, err := config.LoadWithEnvOverrides(o.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		return 1
	}
	applyFlags(&cfg, tool, o)
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "配置无效: %v\n", err)
		return 1
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		return 1
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, tool, cfg, o, log); err != nil {
		return 1
	}
	return 0
}

func applyFlags(cfg *config.AppConfig, tool Tool, o options) {
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.metricsAddr != "" {
		cfg.Metrics.Addr = o.metricsAddr
	}
	if o.viewer != "" {
		cfg.Viewer = strings.Fields(o.viewer)
	}
	if o.metricsFile != "" {
		cfg.Metrics.Textfile = o.metricsFile
	}
	switch tool {
	case Latency:
		if o.input != "" {
			cfg.Latency.Input = o.input
		}
		if o.output != "" {
			cfg.Latency.Output = o.output
		}
		if o.viewSet {
			cfg.Latency.View = o.view
		}
	case Price:
		if o.input != "" {
			cfg.Price.Input = o.input
		}
		if o.output != "" {
			cfg.Price.Output = o.output
		}
		if o.bucket != "" {
			cfg.Price.Bucket = o.bucket
		}
		if o.export != "" {
			cfg.Price.Export = o.export
		}
		if o.viewSet {
			cfg.Price.View = o.view
		}
	}
}

func run(ctx context.Context, tool Tool, cfg config.AppConfig, o options, log *logger.Logger) error {
	mon := monitor.New(monitor.DefaultConfig())
	deps := report.Deps{Log: log, Monitor: mon}
	if len(cfg.Viewer) > 0 {
		viewer := cfg.Viewer
		deps.Open = func(ctx context.Context, path string) error {
			return chart.OpenWith(ctx, viewer, path)
		}
	}
	if cfg.Metrics.Textfile != "" {
		defer func() {
			if err := mon.WriteTextfile(cfg.Metrics.Textfile); err != nil {
				log.LogError(err, map[string]interface{}{"textfile": cfg.Metrics.Textfile})
			}
		}()
	}

	once := func(ctx context.Context) error {
		var (
			res report.Result
			err error
		)
		switch tool {
		case Latency:
			res, err = report.Latency(ctx, cfg.Latency, deps)
		case Price:
			res, err = report.Price(ctx, cfg.Price, deps)
		default:
			err = fmt.Errorf("unknown tool %q", tool)
		}
		if err == nil {
			log.Info("chart_written",
				zap.String("output", res.Output),
				zap.Int("rows", res.Rows),
				zap.Int("points", res.Points),
				zap.Duration("took", res.Took))
		}
		return err
	}

	if err := once(ctx); err != nil && !o.watch {
		return err
	}
	if !o.watch {
		return nil
	}

	if cfg.Metrics.Addr != "" {
		srv, err := metrics.StartMetricsServer(cfg.Metrics.Addr, mon.Handler())
		if err != nil {
			log.LogError(err, map[string]interface{}{"metricsAddr": cfg.Metrics.Addr})
			return err
		}
		log.Info("metrics_server_started", zap.String("addr", srv.Addr()))
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	input := cfg.Latency.Input
	if tool == Price {
		input = cfg.Price.Input
	}
	w, err := watch.New(input, watch.DefaultConfig(), log)
	if err != nil {
		log.LogError(err, nil)
		return err
	}
	log.Info("watching", zap.String("input", input))
	if err := w.Run(ctx, once); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
