package series

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// FormatLabel renders an elapsed offset as "MM : SS.hh", minutes of the hour
// and hundredths truncated.
func FormatLabel(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int64(d/time.Minute) % 60
	seconds := int64(d/time.Second) % 60
	hundredths := int64(d%time.Second) / int64(10*time.Millisecond)
	return fmt.Sprintf("%02d : %02d.%02d", minutes, seconds, hundredths)
}

// FormatMillis is FormatLabel for a millisecond axis value.
func FormatMillis(ms float64) string {
	return FormatLabel(time.Duration(ms * float64(time.Millisecond)))
}

// RoundTo1SF 保留一位有效数字，符号不变，0 仍为 0。
// Ties round half to even on the shortest decimal form of x.
func RoundTo1SF(x float64) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	exp := int32(math.Floor(math.Log10(math.Abs(x))))
	return decimal.NewFromFloat(x).RoundBank(-exp).InexactFloat64()
}
