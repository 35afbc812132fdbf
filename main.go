package main

import (
	"flag"
	"log"

	"github.com/decker502/toanvui/pkg/app"
	"github.com/decker502/toanvui/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	seed       = flag.Int64("seed", 0, "随机种子（0 = 按时间生成）")
	configPath = flag.String("config", "", "外部游戏配置文件（为空时使用内置配置）")
	skipMenu   = flag.Bool("skip-menu", false, "跳过主菜单直接开始游戏")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Seed:       *seed,
		ConfigPath: *configPath,
		SkipMenu:   *skipMenu,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(app.WindowWidth(), app.WindowHeight())
	ebiten.SetWindowTitle("Hứng hình")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Start the game loop
	// This will call Update() and Draw() repeatedly until the window is closed
	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
