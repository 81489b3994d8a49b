package report

import (
	"context"

	"lob-charts/chart"
	"lob-charts/config"
	"lob-charts/dataset"
)

// LatencySeries plots elapsed ms (y) against the cumulative order count (x).
func LatencySeries(ds *dataset.Dataset) chart.Series {
	return chart.Series{Name: "Individual Op", X: ds.Values(), Y: ds.Times()}
}

// Latency 渲染延迟随累计操作数变化的折线图。
func Latency(ctx context.Context, cfg config.LatencyConfig, deps Deps) (Result, error) {
	r := newRun(PipelineLatency, deps)
	var ds *dataset.Dataset

	err := r.stage("load", map[string]interface{}{"input": cfg.Input}, func() error {
		var err error
		ds, err = dataset.LoadCSV(cfg.Input, dataset.OrdersColumn)
		return err
	})
	if err == nil {
		r.result.Rows = ds.Len()
		if r.mon != nil {
			r.mon.RecordRowsLoaded(r.pipeline, ds.Len())
		}
		err = r.stage("normalize", nil, func() error {
			return dataset.Normalize(ds, dataset.MicrosPerMilli)
		})
	}
	if err == nil {
		err = r.render(ctx, LatencySeries(ds), cfg.Chart, cfg.Output, cfg.View)
	}
	return r.finish(err)
}
