package report

import (
	"context"

	"lob-charts/chart"
	"lob-charts/config"
	"lob-charts/dataset"
	"lob-charts/series"
)

// PriceSeries plots bucket start (ms) against the bucket's last price.
func PriceSeries(buckets []series.Bucket) chart.Series {
	s := chart.Series{
		Name: "Price",
		X:    make([]float64, len(buckets)),
		Y:    make([]float64, len(buckets)),
	}
	for i, b := range buckets {
		s.X[i] = b.StartMillis()
		s.Y[i] = b.Value
	}
	return s
}

// Price 渲染按固定窗口降采样后的价格序列。
func Price(ctx context.Context, cfg config.PriceConfig, deps Deps) (Result, error) {
	r := newRun(PipelinePrice, deps)
	var (
		ds      *dataset.Dataset
		buckets []series.Bucket
	)

	width, err := cfg.BucketWidth()
	if err == nil {
		err = r.stage("load", map[string]interface{}{"input": cfg.Input}, func() error {
			var err error
			ds, err = dataset.LoadCSV(cfg.Input, dataset.PriceColumn)
			return err
		})
	}
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
		err = r.stage("resample", map[string]interface{}{"bucket": width.String()}, func() error {
			var err error
			buckets, err = series.Resample(ds.Records, width)
			return err
		})
	}
	if err == nil {
		if r.mon != nil {
			r.mon.UpdateBuckets(r.pipeline, len(buckets))
		}
		opts := cfg.Chart
		if opts.XTickFormat == nil {
			opts.XTickFormat = series.FormatMillis
		}
		err = r.render(ctx, PriceSeries(buckets), opts, cfg.Output, cfg.View)
	}
	if err == nil && cfg.Export != "" {
		err = r.stage("export", map[string]interface{}{"export": cfg.Export}, func() error {
			return series.WriteBucketsCSV(cfg.Export, buckets)
		})
	}
	return r.finish(err)
}
