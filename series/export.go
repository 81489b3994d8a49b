package series

import (
	"encoding/csv"
	"errors"
	"os"
	"strconv"
)

// WriteBucketsCSV writes the resampled series as start_ms,label,value,count.
func WriteBucketsCSV(path string, buckets []Bucket) error {
	if len(buckets) == 0 {
		return errors.New("no buckets to write")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"start_ms", "label", "value", "count"}); err != nil {
		return err
	}
	for _, b := range buckets {
		record := []string{
			strconv.FormatFloat(b.StartMillis(), 'f', -1, 64),
			b.Label,
			strconv.FormatFloat(b.Value, 'f', -1, 64),
			strconv.Itoa(b.Count),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
