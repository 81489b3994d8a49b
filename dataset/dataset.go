// Package dataset loads order-book event CSVs and normalizes their time axis.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// MicrosPerMilli converts the raw µs timestamps written by the benchmark into ms.
const MicrosPerMilli = 1000.0

// Record is one event row: a timestamp and a single measurement.
type Record struct {
	Time  float64
	Value float64
}

// Elapsed interprets Time as milliseconds since the first event, rounded to
// the nearest nanosecond.
func (r Record) Elapsed() time.Duration {
	return time.Duration(math.Round(r.Time * float64(time.Millisecond)))
}

// Dataset 按文件顺序保存事件记录，时间轴的归一化直接修改 Records。
type Dataset struct {
	TimeColumn  string
	ValueColumn string
	Records     []Record

	rebased bool
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.Records) }

// Rebased reports whether Rebase has been applied.
func (d *Dataset) Rebased() bool { return d.rebased }

// Rebase shifts every timestamp so the first record sits at zero.
// It may only run once per dataset.
func (d *Dataset) Rebase() error {
	if d.rebased {
		return ErrAlreadyRebased
	}
	if len(d.Records) == 0 {
		return errors.New("dataset has no records")
	}
	origin := d.Records[0].Time
	for i := range d.Records {
		d.Records[i].Time -= origin
	}
	d.rebased = true
	return nil
}

// Rescale divides every rebased timestamp by divisor.
func (d *Dataset) Rescale(divisor float64) error {
	if !d.rebased {
		return ErrNotRebased
	}
	if divisor <= 0 {
		return fmt.Errorf("rescale divisor must be > 0, got %v", divisor)
	}
	for i := range d.Records {
		d.Records[i].Time /= divisor
	}
	return nil
}

// Normalize rebases the dataset and converts its times with divisor.
func Normalize(d *Dataset, divisor float64) error {
	if err := d.Rebase(); err != nil {
		return fmt.Errorf("rebase: %w", err)
	}
	if err := d.Rescale(divisor); err != nil {
		return fmt.Errorf("rescale: %w", err)
	}
	return nil
}

// Times returns a copy of the time column.
func (d *Dataset) Times() []float64 {
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Time
	}
	return out
}

// Values returns a copy of the value column.
func (d *Dataset) Values() []float64 {
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Value
	}
	return out
}
