package main

import (
	"os"

	"lob-charts/internal/cli"
)

// 绘制按固定窗口（默认 10ms）降采样后的成交价格序列。
// 用法：
//
//	go run ./cmd/priceplot -in data/example_data.csv -bucket 10ms -out data/price.png -view
func main() {
	os.Exit(cli.Main(cli.Price, os.Args[1:]))
}
