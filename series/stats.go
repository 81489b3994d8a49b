package series

// Stats summarizes a value series.
type Stats struct {
	Count          int
	Min            float64
	Max            float64
	Mean           float64
	MaxDrawdownPct float64 // 相对历史峰值的最大回撤（%）
}

// ComputeStats 统计序列的最小/最大/均值和最大回撤。
func ComputeStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	min, max := values[0], values[0]
	sum := 0.0
	peak := values[0]
	maxDD := 0.0
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
		if v > peak {
			peak = v
		}
		if peak != 0 {
			if dd := (peak - v) / peak * 100; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return Stats{
		Count:          len(values),
		Min:            min,
		Max:            max,
		Mean:           sum / float64(len(values)),
		MaxDrawdownPct: maxDD,
	}
}
