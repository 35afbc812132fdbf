// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"image/color"
	"io"
	"log"

	"github.com/decker502/toanvui/pkg/config"
	"github.com/decker502/toanvui/pkg/game"
	"github.com/decker502/toanvui/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Seed 随机种子，0 表示按时间生成
	Seed int64
	// ConfigPath 外部游戏配置文件路径，为空时使用内置配置
	ConfigPath string
	// SkipMenu 跳过主菜单，直接开始游戏
	SkipMenu bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	deps                     scenes.Deps
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := loadGameConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	uiStrings, err := game.NewUIStrings(game.DefaultUIStringsPath)
	if err != nil {
		// 文本缺失时界面显示 [KEY]，不影响游戏
		log.Printf("[App] Warning: Failed to load UI strings: %v", err)
	}

	gameState := game.GetGameState()
	settingsManager := gameState.GetSettingsManager()
	audioManager := game.NewAudioManager(settingsManager)
	audioManager.Preload(game.SoundCatch, game.SoundWrong, game.SoundCountdown, game.SoundGo)
	log.Printf("[App] AudioManager initialized")

	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	sceneManager := game.NewSceneManager()
	deps := scenes.Deps{
		SceneManager: sceneManager,
		GameState:    gameState,
		Audio:        audioManager,
		Strings:      uiStrings,
		Config:       gameConfig,
		Seed:         cfg.Seed,
	}
	sceneManager.SetSceneFactory(newSceneFactory(deps))

	if cfg.SkipMenu {
		log.Printf("[App] SkipMenu enabled, starting game directly")
		sceneManager.Goto(game.SceneReaction)
	} else {
		sceneManager.Goto(game.SceneMenu)
	}

	return &App{
		sceneManager: sceneManager,
		deps:         deps,
		verbose:      cfg.Verbose,
	}, nil
}

// newSceneFactory 按场景 ID 创建场景
func newSceneFactory(deps scenes.Deps) game.SceneFactory {
	return func(id game.SceneID) game.Scene {
		switch id {
		case game.SceneMenu:
			return scenes.NewMenuScene(deps)
		case game.SceneReaction:
			return scenes.NewReactionScene(deps)
		}
		return nil
	}
}

// loadGameConfig 读取游戏配置：指定了外部文件时从磁盘读取，否则读取内置配置
// 内置配置不可用时退回默认值
func loadGameConfig(path string) (*config.ReactionGameConfig, error) {
	if path != "" {
		cfg, err := config.LoadReactionConfig(path)
		if err != nil {
			return nil, err
		}
		log.Printf("[Config] 加载游戏配置: %s", path)
		return cfg, nil
	}

	cfg, err := config.LoadEmbeddedReactionConfig(config.ReactionConfigPath)
	if err != nil {
		log.Printf("[Config] Warning: %v (using defaults)", err)
		return config.DefaultReactionConfig(), nil
	}
	return cfg, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(WindowWidth(), WindowHeight())
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", WindowWidth(), WindowHeight())
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if fullscreen {
		ebiten.SetFullscreen(true)
	} else {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	}

	if sm := a.deps.GameState.GetSettingsManager(); sm != nil {
		sm.SetFullscreen(fullscreen)
		if err := sm.Save(); err != nil {
			log.Printf("[App] Warning: Failed to save settings: %v", err)
		}
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（竖屏画面两侧为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制游戏画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// WindowWidth 桌面端初始窗口宽度
func WindowWidth() int {
	return int(config.ScreenWidth * config.WindowScale)
}

// WindowHeight 桌面端初始窗口高度
func WindowHeight() int {
	return int(config.ScreenHeight * config.WindowScale)
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
