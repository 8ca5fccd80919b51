package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/spincube/pkg/app"
	"github.com/decker502/spincube/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "场景配置文件路径（默认使用内置 data/scene.yaml）")
	noPersist := flag.Bool("no-persist", false, "不读取/保存镜头位置和全屏设置")
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	viewer, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		NoPersist:  *noPersist,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}
	viewer.ConfigureWindow()

	if err := ebiten.RunGame(viewer); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Printf("[Main] RunGame error: %v", err)
		viewer.Shutdown()
		fmt.Fprintf(os.Stderr, "运行错误: %v\n", err)
		os.Exit(1)
	}
	viewer.Shutdown()
}
