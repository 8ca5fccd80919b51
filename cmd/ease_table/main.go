// ease_table 打印缩放和旋转动画的采样曲线
//
// 用于评审缩放缓动的指数（默认 0.5 时曲线开始慢、结束陡），
// 与线性和三次缓出对比。
//
// 用法：
//
//	go run ./cmd/ease_table
//	go run ./cmd/ease_table --config data/scene.yaml --samples 20 --yaml
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/decker502/spincube/pkg/anim"
	"github.com/decker502/spincube/pkg/config"
	"gopkg.in/yaml.v3"
)

// sample 一个采样点
type sample struct {
	TimeMs      float64 `yaml:"timeMs"`
	Progress    float64 `yaml:"progress"`
	ScaleUp     float64 `yaml:"scaleUp"`
	ScaleDown   float64 `yaml:"scaleDown"`
	ScaleCubic  float64 `yaml:"scaleCubic"`
	RotationRad float64 `yaml:"rotationRad"`
}

// buildTable 在 [0, duration] 上均匀采样 samples+1 个点
func buildTable(cfg *config.SceneConfig, samples int) []sample {
	a := cfg.Animation
	scaleEase := anim.EaseOutPow(a.ScaleEasingExponent)

	table := make([]sample, 0, samples+1)
	for i := 0; i <= samples; i++ {
		p := float64(i) / float64(samples)
		table = append(table, sample{
			TimeMs:      p * a.ScaleDurationMs,
			Progress:    p,
			ScaleUp:     anim.Lerp(a.RestScale, a.ScaleTarget, scaleEase(p)),
			ScaleDown:   anim.Lerp(a.ScaleTarget, a.RestScale, scaleEase(p)),
			ScaleCubic:  anim.Lerp(a.RestScale, a.ScaleTarget, anim.EaseOutCubic(p)),
			RotationRad: anim.Lerp(0, a.RotationSpeed, anim.Linear(p)),
		})
	}
	return table
}

func main() {
	configPath := flag.String("config", "", "场景配置文件路径（默认使用内置默认值）")
	samples := flag.Int("samples", 10, "采样段数")
	asYAML := flag.Bool("yaml", false, "以 YAML 格式输出")
	flag.Parse()

	if *samples <= 0 {
		fmt.Fprintln(os.Stderr, "--samples must be > 0")
		os.Exit(2)
	}

	cfg := config.DefaultSceneConfig()
	if *configPath != "" {
		loaded, err := config.LoadSceneConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	table := buildTable(cfg, *samples)

	if *asYAML {
		out, err := yaml.Marshal(map[string]any{
			"scaleEasingExponent": cfg.Animation.ScaleEasingExponent,
			"samples":             table,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "yaml: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(out)
		return
	}

	fmt.Printf("scale easing: 1-(1-p)^%g over %gms, rotation: linear over %gms\n\n",
		cfg.Animation.ScaleEasingExponent, cfg.Animation.ScaleDurationMs, cfg.Animation.RotationDurationMs)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "t(ms)\tp\tscale up\tscale down\tcubic up\trotation\t")
	for _, s := range table {
		fmt.Fprintf(w, "%.0f\t%.2f\t%.4f\t%.4f\t%.4f\t%.4f\t\n",
			s.TimeMs, s.Progress, s.ScaleUp, s.ScaleDown, s.ScaleCubic, s.RotationRad)
	}
	w.Flush()
}
