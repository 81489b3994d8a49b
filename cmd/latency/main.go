package main

import (
	"os"

	"lob-charts/internal/cli"
)

// 绘制延迟随累计操作数变化的曲线。
// 用法：
//
//	go run ./cmd/latency -in data/example_latency.csv -out data/latency.png -view
func main() {
	os.Exit(cli.Main(cli.Latency, os.Args[1:]))
}
