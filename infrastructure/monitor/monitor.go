package monitor

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Monitor Prometheus监控指标收集器，按 pipeline 标签区分两个图表工具
type Monitor struct {
	registry *prometheus.Registry

	rowsLoaded    *prometheus.CounterVec
	bucketsOut    *prometheus.GaugeVec
	pointsPlotted *prometheus.GaugeVec
	stageDuration *prometheus.HistogramVec
	runs          *prometheus.CounterVec
	lastSuccess   *prometheus.GaugeVec
}

// Config 监控配置
type Config struct {
	Namespace string
	Subsystem string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Namespace: "lob",
		Subsystem: "charts",
	}
}

// New 创建新的Monitor实例
func New(cfg Config) *Monitor {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Monitor{
		registry: reg,
		rowsLoaded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "rows_loaded_total",
			Help:      "从 CSV 读取的记录数",
		}, []string{"pipeline"}),
		bucketsOut: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "buckets",
			Help:      "最近一次降采样输出的窗口数",
		}, []string{"pipeline"}),
		pointsPlotted: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "points_plotted",
			Help:      "最近一次绘制的点数",
		}, []string{"pipeline"}),
		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "stage_duration_seconds",
			Help:      "各阶段耗时分布（秒）",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}, []string{"pipeline", "stage"}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "runs_total",
			Help:      "运行次数，按结果区分",
		}, []string{"pipeline", "result"}),
		lastSuccess: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "last_success_timestamp_seconds",
			Help:      "最近一次成功运行的 Unix 时间",
		}, []string{"pipeline"}),
	}
}

// RecordRowsLoaded 记录读取行数
func (m *Monitor) RecordRowsLoaded(pipeline string, n int) {
	m.rowsLoaded.WithLabelValues(pipeline).Add(float64(n))
}

// UpdateBuckets 更新降采样窗口数
func (m *Monitor) UpdateBuckets(pipeline string, n int) {
	m.bucketsOut.WithLabelValues(pipeline).Set(float64(n))
}

// UpdatePointsPlotted 更新绘制点数
func (m *Monitor) UpdatePointsPlotted(pipeline string, n int) {
	m.pointsPlotted.WithLabelValues(pipeline).Set(float64(n))
}

// RecordStage 记录阶段耗时
func (m *Monitor) RecordStage(pipeline, stage string, took time.Duration) {
	m.stageDuration.WithLabelValues(pipeline, stage).Observe(took.Seconds())
}

// RecordRun 记录一次运行结果
func (m *Monitor) RecordRun(pipeline string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	} else {
		m.lastSuccess.WithLabelValues(pipeline).SetToCurrentTime()
	}
	m.runs.WithLabelValues(pipeline, result).Inc()
}

// WriteTextfile 以 node_exporter textfile 格式写出所有指标，适合批处理运行
func (m *Monitor) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// Handler 返回Prometheus HTTP处理器
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry 返回Prometheus注册器
func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}
