// Package report wires load → normalize → aggregate → render for each chart tool.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lob-charts/chart"
	"lob-charts/infrastructure/logger"
	"lob-charts/infrastructure/monitor"
	"lob-charts/series"
)

const (
	PipelineLatency = "latency"
	PipelinePrice   = "price"
)

// Deps 运行依赖；零值字段使用空实现
type Deps struct {
	Log     *logger.Logger
	Monitor *monitor.Monitor
	// Open shows the rendered chart; nil uses chart.Open.
	Open func(ctx context.Context, path string) error
}

// Result summarizes one pipeline run.
type Result struct {
	RunID    string
	Pipeline string
	Rows     int
	Points   int
	Output   string
	Stats    series.Stats // of the plotted y values
	Took     time.Duration
}

type run struct {
	pipeline string
	log      *logger.Logger
	mon      *monitor.Monitor
	open     func(ctx context.Context, path string) error
	started  time.Time
	result   Result
}

func newRun(pipeline string, deps Deps) *run {
	id := uuid.NewString()
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	open := deps.Open
	if open == nil {
		open = chart.Open
	}
	return &run{
		pipeline: pipeline,
		log:      log.WithFields(map[string]interface{}{"pipeline": pipeline, "run_id": id}),
		mon:      deps.Monitor,
		open:     open,
		started:  time.Now(),
		result:   Result{RunID: id, Pipeline: pipeline},
	}
}

// stage 执行一个阶段并记录耗时；错误带上阶段名
func (r *run) stage(name string, fields map[string]interface{}, fn func() error) error {
	start := time.Now()
	if err := fn(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	took := time.Since(start)
	if r.mon != nil {
		r.mon.RecordStage(r.pipeline, name, took)
	}
	r.log.LogStage(name, took, fields)
	return nil
}

func (r *run) render(ctx context.Context, s chart.Series, opts chart.Options, output string, view bool) error {
	err := r.stage("render", map[string]interface{}{"output": output, "points": len(s.X)}, func() error {
		return chart.Render(s, opts, output)
	})
	if err != nil {
		return err
	}
	r.result.Points = len(s.X)
	r.result.Stats = series.ComputeStats(s.Y)
	r.result.Output = output
	if r.mon != nil {
		r.mon.UpdatePointsPlotted(r.pipeline, len(s.X))
	}
	if view {
		return r.stage("view", nil, func() error { return r.open(ctx, output) })
	}
	return nil
}

func (r *run) finish(err error) (Result, error) {
	r.result.Took = time.Since(r.started)
	if r.mon != nil {
		r.mon.RecordRun(r.pipeline, err)
	}
	if err != nil {
		r.log.LogError(err, nil)
		return r.result, err
	}
	st := r.result.Stats
	r.log.Info("run_done", zap.Int("points", st.Count), zap.Float64("min", st.Min),
		zap.Float64("max", st.Max), zap.Float64("mean", st.Mean), zap.Float64("maxDrawdownPct", st.MaxDrawdownPct))
	return r.result, nil
}
