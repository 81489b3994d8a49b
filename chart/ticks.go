package chart

import "gonum.org/v1/plot"

// MaxTicks caps the labelled ticks produced by plot.DefaultTicks at N,
// thinning them evenly, and optionally relabels them with Format.
type MaxTicks struct {
	N      int
	Format func(float64) string
}

// Ticks implements plot.Ticker.
func (m MaxTicks) Ticks(min, max float64) []plot.Tick {
	all := plot.DefaultTicks{}.Ticks(min, max)
	major := make([]plot.Tick, 0, len(all))
	for _, t := range all {
		if t.Label != "" {
			major = append(major, t)
		}
	}
	if m.N > 0 && len(major) > m.N {
		stride := (len(major) + m.N - 1) / m.N
		thinned := make([]plot.Tick, 0, m.N)
		for i := 0; i < len(major); i += stride {
			thinned = append(thinned, major[i])
		}
		major = thinned
	}
	if m.Format != nil {
		for i := range major {
			major[i].Label = m.Format(major[i].Value)
		}
	}
	return major
}
