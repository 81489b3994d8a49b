// Package series downsamples normalized event series for charting.
package series

import (
	"errors"
	"time"

	"lob-charts/dataset"
)

// DefaultBucket is the resampling width used by the price chart.
const DefaultBucket = 10 * time.Millisecond

// ErrBucketWidth is returned for a non-positive bucket width.
var ErrBucketWidth = errors.New("bucket width must be > 0")

// Bucket is the representative sample of one fixed-width window.
type Bucket struct {
	Start time.Duration // 窗口起点（相对首条记录）
	Value float64       // 窗口内最后一条记录的值
	Count int           // 落入窗口的记录数
	Label string
}

// StartMillis returns Start as fractional milliseconds, the unit of the chart x axis.
func (b Bucket) StartMillis() float64 {
	return float64(b.Start) / float64(time.Millisecond)
}

// Aggregator 按固定宽度的时间窗口对记录流做 last-value 降采样。
// Records must carry rebased times in milliseconds and arrive in file order.
type Aggregator struct {
	Width   time.Duration
	current *Bucket
	index   int64
}

func NewAggregator(width time.Duration) (*Aggregator, error) {
	if width <= 0 {
		return nil, ErrBucketWidth
	}
	return &Aggregator{Width: width}, nil
}

// OnRecord 更新当前窗口；记录进入新窗口时返回已闭合的上一窗口，否则返回 nil。
func (a *Aggregator) OnRecord(r dataset.Record) *Bucket {
	idx := a.windowOf(r.Elapsed())
	if a.current == nil {
		a.open(idx, r)
		return nil
	}
	// 时间回退的记录归入当前窗口，保证每个窗口只输出一次
	if idx <= a.index {
		a.current.Value = r.Value
		a.current.Count++
		return nil
	}
	closed := a.current
	a.open(idx, r)
	return closed
}

// Flush returns the open window, if any, and resets the aggregator.
func (a *Aggregator) Flush() *Bucket {
	b := a.current
	a.current = nil
	a.index = 0
	return b
}

func (a *Aggregator) open(idx int64, r dataset.Record) {
	start := time.Duration(idx) * a.Width
	a.index = idx
	a.current = &Bucket{
		Start: start,
		Value: r.Value,
		Count: 1,
		Label: FormatLabel(start),
	}
}

// windowOf 用整数纳秒计算窗口序号，负偏移向下取整
func (a *Aggregator) windowOf(d time.Duration) int64 {
	idx := int64(d / a.Width)
	if d < 0 && d%a.Width != 0 {
		idx--
	}
	return idx
}

// Resample keeps the last record of every non-empty width-aligned window.
// Empty windows are omitted rather than filled.
func Resample(records []dataset.Record, width time.Duration) ([]Bucket, error) {
	agg, err := NewAggregator(width)
	if err != nil {
		return nil, err
	}
	out := make([]Bucket, 0, len(records))
	for _, r := range records {
		if closed := agg.OnRecord(r); closed != nil {
			out = append(out, *closed)
		}
	}
	if last := agg.Flush(); last != nil {
		out = append(out, *last)
	}
	return out, nil
}
