// reaction_tui 在终端中运行 "Hứng hình" 反应游戏
//
// 与桌面版共用同一个规则引擎和最高分存储。
//
// 用法：
//
//	go run ./cmd/reaction_tui [-seed N] [-config data/reaction_game.yaml] [-mute] [-log tui.log]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/decker502/toanvui/pkg/config"
	"github.com/decker502/toanvui/pkg/game"
	"github.com/decker502/toanvui/pkg/reaction"
	"github.com/gdamore/tcell/v2"
)

var (
	seed        = flag.Int64("seed", 0, "随机种子（0 = 按时间生成）")
	configPath  = flag.String("config", "data/reaction_game.yaml", "游戏配置文件（读取失败时使用默认配置）")
	stringsPath = flag.String("strings", "data/strings/vi.txt", "界面文本文件")
	mute        = flag.Bool("mute", false, "关闭声音")
	logPath     = flag.String("log", "", "日志文件（终端被界面占用，默认丢弃日志）")
)

func main() {
	flag.Parse()

	closeLog, err := setupLog(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := config.LoadReactionConfig(*configPath)
	if err != nil {
		log.Printf("[TUI] Warning: %v (using defaults)", err)
		cfg = config.DefaultReactionConfig()
	}

	strs, err := loadStrings(*stringsPath)
	if err != nil {
		log.Printf("[TUI] Warning: Failed to load UI strings: %v", err)
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}

	// 与桌面版共用 gdata 存储中的最高分
	gameState := game.GetGameState()
	session := reaction.NewSession(cfg, rand.New(rand.NewSource(s)), gameState.GetHighScoreManager())

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()

	sound := newSoundPlayer(!*mute && gameState.GetSettingsManager().GetSettings().SoundEnabled)

	g := newTUIGame(session, strs, sound)
	g.onGameOver = gameState.RecordResult
	g.run(screen)

	sound.close()
	screen.Fini()

	if result, ok := session.Result(); ok {
		fmt.Printf("%s\n", strs.Format("GAME_OVER_SCORE", result.FinalScore))
	}
}

// setupLog 把日志写入文件，未指定文件时丢弃
func setupLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return func() { f.Close() }, nil
}

// loadStrings 从磁盘读取界面文本
func loadStrings(path string) (*game.UIStrings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open UI strings: %w", err)
	}
	defer f.Close()
	return game.ParseUIStrings(f)
}
