package chart

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSeries() Series {
	return Series{Name: "Individual Op", X: []float64{1, 2, 3}, Y: []float64{0, 1, 4}}
}

func TestRender_WritesFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"latency.png", "latency.svg"} {
		out := filepath.Join(dir, "nested", name)
		err := Render(sampleSeries(), Options{
			Title:  "Latency",
			XLabel: "ops",
			YLabel: "ms",
			Legend: true,
			Grid:   true,
			ClampX: true,
			ClampY: true,
		}, out)
		require.NoError(t, err, name)
		info, err := os.Stat(out)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestRender_Errors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.png")
	assert.Error(t, Render(Series{}, Options{}, out))
	assert.Error(t, Render(Series{X: []float64{1}, Y: []float64{1, 2}}, Options{}, out))
	assert.Error(t, Render(sampleSeries(), Options{}, filepath.Join(t.TempDir(), "x.bmp")))
	assert.Error(t, Render(sampleSeries(), Options{Color: "#zzzzzz"}, out))
}

func TestBuild_AppliesOptions(t *testing.T) {
	p, err := build(sampleSeries(), Options{
		Title:         "LOB Stock Price Series",
		XTickRotation: 45,
		MaxXTicks:     12,
		ClampX:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, "LOB Stock Price Series", p.Title.Text)
	assert.Equal(t, 0.0, p.X.Min)
	assert.Equal(t, 0.0, p.Y.Min) // min of the data itself
	assert.InDelta(t, 0.7853981, p.X.Tick.Label.Rotation, 1e-6)
	_, ok := p.X.Tick.Marker.(MaxTicks)
	assert.True(t, ok)
}

func TestMaxTicks(t *testing.T) {
	ticks := MaxTicks{N: 3}.Ticks(0, 1000)
	assert.LessOrEqual(t, len(ticks), 3)
	assert.NotEmpty(t, ticks)
	for _, tk := range ticks {
		assert.NotEmpty(t, tk.Label)
	}

	labelled := MaxTicks{Format: func(v float64) string { return "x" }}.Ticks(0, 10)
	require.NotEmpty(t, labelled)
	for _, tk := range labelled {
		assert.Equal(t, "x", tk.Label)
	}
}

func TestBuild_TickCapWithManyPoints(t *testing.T) {
	s := Series{X: make([]float64, 5000), Y: make([]float64, 5000)}
	for i := range s.X {
		s.X[i] = float64(i * 10) // 0..49990ms
		s.Y[i] = 100 + float64(i%7)
	}
	label := func(v float64) string { return fmt.Sprintf("%.0fms", v) }
	p, err := build(s, Options{MaxXTicks: 12, XTickFormat: label, ClampX: true})
	require.NoError(t, err)

	ticks := p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max)
	require.NotEmpty(t, ticks)
	assert.LessOrEqual(t, len(ticks), 12)
	for _, tk := range ticks {
		assert.Equal(t, label(tk.Value), tk.Label)
	}

	// 上限低于默认刻度数时按步长抽稀
	all := MaxTicks{}.Ticks(0, 49990)
	thinned := MaxTicks{N: 2}.Ticks(0, 49990)
	assert.LessOrEqual(t, len(thinned), 2)
	if len(all) > 2 {
		assert.Less(t, len(thinned), len(all))
	}

	out := filepath.Join(t.TempDir(), "price.png")
	require.NoError(t, Render(s, Options{MaxXTicks: 12, XTickFormat: label, XTickRotation: 45}, out))
	assert.FileExists(t, out)
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("")
	require.NoError(t, err)
	assert.Equal(t, defaultColor, c)

	c, err = parseColor("#1f77b499")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0x99}, c)

	_, err = parseColor("#123")
	assert.Error(t, err)
}

func TestOpen_UsesViewerCommand(t *testing.T) {
	var got string
	orig := viewerCommand
	t.Cleanup(func() { viewerCommand = orig })
	viewerCommand = func(ctx context.Context, path string) *exec.Cmd {
		got = path
		return exec.CommandContext(ctx, "true")
	}
	require.NoError(t, Open(context.Background(), "chart.png"))
	assert.Equal(t, "chart.png", got)

	viewerCommand = func(ctx context.Context, path string) *exec.Cmd {
		return exec.CommandContext(ctx, "false")
	}
	assert.Error(t, Open(context.Background(), "chart.png"))
}

func TestOpenWith_CustomCommand(t *testing.T) {
	require.NoError(t, OpenWith(context.Background(), []string{"true", "-x"}, "chart.png"))
	err := OpenWith(context.Background(), []string{"false"}, "chart.png")
	assert.ErrorContains(t, err, "open viewer")

	// 空命令回退到平台查看器
	orig := viewerCommand
	t.Cleanup(func() { viewerCommand = orig })
	var got string
	viewerCommand = func(ctx context.Context, path string) *exec.Cmd {
		got = path
		return exec.CommandContext(ctx, "true")
	}
	require.NoError(t, OpenWith(context.Background(), nil, "chart.png"))
	assert.Equal(t, "chart.png", got)
}
