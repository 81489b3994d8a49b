// Package chart renders 2-D line charts for the analysis pipelines.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Series is one line of (x, y) points.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// Options 绘图配置，调用时固定。
type Options struct {
	Title         string  `yaml:"title"`
	XLabel        string  `yaml:"xlabel"`
	YLabel        string  `yaml:"ylabel"`
	Legend        bool    `yaml:"legend"`        // 是否显示图例（使用 Series.Name）
	Grid          bool    `yaml:"grid"`          // 虚线网格
	XTickRotation float64 `yaml:"xtickRotation"` // 角度
	MaxXTicks     int     `yaml:"maxXTicks"`     // x 轴标签数量上限，0 表示不限
	ClampX        bool    `yaml:"clampX"`        // x 轴下限固定为 0
	ClampY        bool    `yaml:"clampY"`        // y 轴下限固定为 0
	Width         float64 `yaml:"width"`         // 英寸
	Height        float64 `yaml:"height"`        // 英寸
	Color         string  `yaml:"color"`         // #rrggbb 或 #rrggbbaa

	// XTickFormat relabels x ticks; nil keeps the numeric labels.
	XTickFormat func(float64) string `yaml:"-"`
}

var supportedFormats = map[string]bool{
	".png": true, ".svg": true, ".pdf": true, ".jpg": true, ".jpeg": true, ".eps": true, ".tif": true, ".tiff": true,
}

// Render draws s and writes the chart to output; the format follows the file extension.
func Render(s Series, opts Options, output string) error {
	if len(s.X) != len(s.Y) {
		return fmt.Errorf("series %q: %d x values vs %d y values", s.Name, len(s.X), len(s.Y))
	}
	if len(s.X) == 0 {
		return errors.New("series is empty")
	}
	ext := strings.ToLower(filepath.Ext(output))
	if !supportedFormats[ext] {
		return fmt.Errorf("unsupported chart format %q", ext)
	}

	p, err := build(s, opts)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = 12
	}
	if h <= 0 {
		h = 7
	}
	if err := p.Save(vg.Length(w)*vg.Inch, vg.Length(h)*vg.Inch, output); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

func build(s Series, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel

	if opts.Grid {
		grid := plotter.NewGrid()
		dashed := []vg.Length{vg.Points(4), vg.Points(2)}
		gridColor := color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xb3}
		grid.Vertical.Dashes = dashed
		grid.Vertical.Color = gridColor
		grid.Horizontal.Dashes = dashed
		grid.Horizontal.Color = gridColor
		p.Add(grid)
	}

	xys := make(plotter.XYs, len(s.X))
	for i := range s.X {
		xys[i].X = s.X[i]
		xys[i].Y = s.Y[i]
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("build line: %w", err)
	}
	c, err := parseColor(opts.Color)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	if opts.Legend && s.Name != "" {
		p.Legend.Add(s.Name, line)
		p.Legend.Top = true
	}

	if opts.ClampX {
		p.X.Min = 0
	}
	if opts.ClampY {
		p.Y.Min = 0
	}
	if opts.MaxXTicks > 0 || opts.XTickFormat != nil {
		p.X.Tick.Marker = MaxTicks{N: opts.MaxXTicks, Format: opts.XTickFormat}
	}
	if opts.XTickRotation != 0 {
		p.X.Tick.Label.Rotation = opts.XTickRotation * math.Pi / 180
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}
	return p, nil
}

// tab:blue
var defaultColor = color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}

func parseColor(hex string) (color.Color, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if hex == "" {
		return defaultColor, nil
	}
	if len(hex) != 6 && len(hex) != 8 {
		return nil, fmt.Errorf("invalid color %q", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
