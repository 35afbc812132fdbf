package main

import (
	"fmt"
	"time"

	"github.com/decker502/toanvui/pkg/game"
	"github.com/decker502/toanvui/pkg/reaction"
	"github.com/gdamore/tcell/v2"
)

const (
	laneCells   = 9 // 每条车道的列宽
	headerRows  = 4 // 分数 + 提示
	footerRows  = 4 // 篮子 + 操作说明
	minFallRows = 8
	frameTime   = 16 * time.Millisecond // ~60 FPS
	goBanner    = 0.8
)

// 图形字符与颜色
var (
	shapeGlyphs = map[reaction.Category]rune{
		reaction.CategoryCircle:   '●',
		reaction.CategorySquare:   '■',
		reaction.CategoryTriangle: '▲',
		reaction.CategoryStar:     '★',
	}
	shapeStyles = map[reaction.Category]tcell.Style{
		reaction.CategoryCircle:   tcell.StyleDefault.Foreground(tcell.ColorRed),
		reaction.CategorySquare:   tcell.StyleDefault.Foreground(tcell.ColorBlue),
		reaction.CategoryTriangle: tcell.StyleDefault.Foreground(tcell.ColorGreen),
		reaction.CategoryStar:     tcell.StyleDefault.Foreground(tcell.ColorYellow),
	}

	styleText   = tcell.StyleDefault
	styleMuted  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAccent = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleGuide  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleBasket = tcell.StyleDefault.Foreground(tcell.ColorOlive).Bold(true)
)

func glyph(c reaction.Category) rune {
	if r, ok := shapeGlyphs[c]; ok {
		return r
	}
	return '?'
}

func shapeStyle(c reaction.Category) tcell.Style {
	if s, ok := shapeStyles[c]; ok {
		return s
	}
	return styleText
}

// cellWriter 绘制目标（tcell.Screen 满足该接口）
type cellWriter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// board 终端上的车道区域
type board struct {
	left, top int
	rows      int // 掉落区域行数，进度 0 → 1 映射到 0 → rows-1
	lanes     int
}

func newBoard(width, height, lanes int) board {
	rows := height - headerRows - footerRows
	if rows < minFallRows {
		rows = minFallRows
	}
	left := (width - lanes*laneCells) / 2
	if left < 0 {
		left = 0
	}
	return board{left: left, top: headerRows, rows: rows, lanes: lanes}
}

// cell 掉落物在终端上的位置
func (b board) cell(lane int, progress float64) (x, y int) {
	x = b.left + lane*laneCells + laneCells/2
	row := int(progress * float64(b.rows-1))
	if row < 0 {
		row = 0
	}
	if row > b.rows-1 {
		row = b.rows - 1
	}
	return x, b.top + row
}

// laneAt 终端列所在的车道（鼠标点击）
func (b board) laneAt(x int) (int, bool) {
	if x < b.left || x >= b.left+b.lanes*laneCells {
		return 0, false
	}
	return (x - b.left) / laneCells, true
}

func (b board) basketRow() int {
	return b.top + b.rows
}

// command 玩家操作
type command int

const (
	cmdNone command = iota
	cmdLeft
	cmdRight
	cmdRetry
	cmdQuit
)

// keyCommand 把按键翻译成操作
func keyCommand(key tcell.Key, r rune) command {
	switch key {
	case tcell.KeyLeft:
		return cmdLeft
	case tcell.KeyRight:
		return cmdRight
	case tcell.KeyEnter:
		return cmdRetry
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmdQuit
	case tcell.KeyRune:
		switch r {
		case 'a', 'A', 'h':
			return cmdLeft
		case 'd', 'D', 'l':
			return cmdRight
		case 'r', 'R', ' ':
			return cmdRetry
		case 'q', 'Q':
			return cmdQuit
		}
	}
	return cmdNone
}

// tuiGame 终端版游戏
type tuiGame struct {
	session    *reaction.Session
	strings    *game.UIStrings
	sound      *soundPlayer
	onGameOver func(reaction.Result)

	width, height int
	banner        string
	bannerLeft    float64
	result        *reaction.Result
}

func newTUIGame(session *reaction.Session, strs *game.UIStrings, sound *soundPlayer) *tuiGame {
	return &tuiGame{
		session: session,
		strings: strs,
		sound:   sound,
		width:   80,
		height:  24,
	}
}

func (g *tuiGame) board() board {
	return newBoard(g.width, g.height, g.session.Config().Lanes)
}

// apply 执行一个操作，返回 false 表示退出
func (g *tuiGame) apply(cmd command) bool {
	switch cmd {
	case cmdQuit:
		return false
	case cmdLeft:
		g.session.MoveLeft()
	case cmdRight:
		g.session.MoveRight()
	case cmdRetry:
		if g.session.IsGameOver() {
			g.result = nil
			g.banner = ""
			g.session.Restart()
		}
	}
	return true
}

// handleEvent 处理终端事件，返回 false 表示退出
func (g *tuiGame) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.apply(keyCommand(ev.Key(), ev.Rune()))
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, _ := ev.Position()
			if lane, ok := g.board().laneAt(x); ok {
				g.session.SetPlayerLane(lane)
			}
		}
	case *tcell.EventResize:
		g.width, g.height = ev.Size()
	}
	return true
}

// tick 推进会话并处理事件
func (g *tuiGame) tick(dt float64) {
	if g.bannerLeft > 0 {
		g.bannerLeft -= dt
		if g.bannerLeft <= 0 {
			g.banner = ""
		}
	}

	for _, e := range g.session.Update(dt) {
		if g.sound != nil {
			g.sound.playEvent(e)
		}
		switch e.Type {
		case reaction.EventCountdownTick:
			if e.Countdown == 0 {
				g.showBanner(g.strings.GetString("COUNTDOWN_GO"), goBanner)
			}
		case reaction.EventSpeedUp:
			g.showBanner(g.strings.GetString("SPEED_UP"), g.session.Config().SpeedUpBannerDuration)
		case reaction.EventGameOver:
			result := e.Result
			g.result = &result
			if g.onGameOver != nil {
				g.onGameOver(result)
			}
		}
	}
}

func (g *tuiGame) showBanner(text string, duration float64) {
	g.banner = text
	g.bannerLeft = duration
}

// draw 绘制一帧（调用方负责 Clear / Show）
func (g *tuiGame) draw(w cellWriter) {
	snap := g.session.Snapshot()
	b := g.board()
	strs := g.strings

	drawString(w, 1, 0, strs.Format("HUD_SCORE", snap.Score), styleText)
	hi := strs.Format("HUD_HIGH_SCORE", snap.HighScore)
	drawString(w, g.width-len([]rune(hi))-1, 0, hi, styleMuted)

	if snap.HasTarget {
		prompt := strs.Format("PROMPT_CATCH", strs.ShapeName(string(snap.Target)))
		x := drawCentered(w, g.width, 2, prompt+"  ", styleText)
		w.SetContent(x, 2, glyph(snap.Target), nil, shapeStyle(snap.Target))
	}

	// 车道分隔线与拦截线
	for lane := 1; lane < b.lanes; lane++ {
		x := b.left + lane*laneCells
		for row := 0; row < b.rows; row++ {
			w.SetContent(x, b.top+row, '│', nil, styleGuide)
		}
	}
	_, catchY := b.cell(0, g.session.Config().CatchThreshold)
	for x := b.left; x < b.left+b.lanes*laneCells; x++ {
		if (x-b.left)%laneCells != 0 {
			w.SetContent(x, catchY, '┄', nil, styleGuide)
		}
	}

	for _, obj := range snap.Objects {
		x, y := b.cell(obj.Lane, obj.Progress)
		w.SetContent(x, y, glyph(obj.Category), nil, shapeStyle(obj.Category))
	}

	// 篮子
	bx, _ := b.cell(snap.PlayerLane, 0)
	drawString(w, bx-3, b.basketRow(), "\\_____/", styleBasket)

	switch {
	case g.result != nil:
		g.drawGameOver(w, *g.result, b)
	case snap.Phase == reaction.PhaseCountdown && snap.Countdown > 0:
		drawCentered(w, g.width, b.top+b.rows/2, fmt.Sprintf("%d", snap.Countdown), styleAccent)
	case g.banner != "":
		drawCentered(w, g.width, b.top+b.rows/2, g.banner, styleAccent)
	}

	drawCentered(w, g.width, b.basketRow()+2, "←/→ A/D · Enter: "+strs.GetString("BUTTON_RETRY")+" · Esc: "+strs.GetString("BUTTON_EXIT"), styleMuted)
}

func (g *tuiGame) drawGameOver(w cellWriter, result reaction.Result, b board) {
	strs := g.strings
	y := b.top + b.rows/2 - 2

	drawCentered(w, g.width, y, strs.GetString("GAME_OVER_TITLE"), styleAccent)
	drawCentered(w, g.width, y+1, strs.Format("GAME_OVER_SCORE", result.FinalScore), styleText)

	switch {
	case result.IsNewHighScore:
		drawCentered(w, g.width, y+2, strs.GetString("GAME_OVER_NEW_RECORD"), styleAccent)
	case result.Reason == reaction.ReasonWrongCatch:
		drawCentered(w, g.width, y+2, strs.GetString("GAME_OVER_WRONG_CATCH"), styleMuted)
	case result.Reason == reaction.ReasonTargetMissed:
		drawCentered(w, g.width, y+2, strs.GetString("GAME_OVER_TARGET_MISSED"), styleMuted)
	}
}

// run 主循环：定时推进 + 异步读取终端事件
func (g *tuiGame) run(screen tcell.Screen) {
	g.width, g.height = screen.Size()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// 屏幕已关闭
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !g.handleEvent(ev) {
				return
			}

		case now := <-ticker.C:
			g.tick(now.Sub(last).Seconds())
			last = now

			screen.Clear()
			g.draw(screen)
			screen.Show()
		}
	}
}

func drawString(w cellWriter, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		w.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// drawCentered 居中绘制，返回结束列
func drawCentered(w cellWriter, width, y int, s string, style tcell.Style) int {
	x := (width - len([]rune(s))) / 2
	if x < 0 {
		x = 0
	}
	return drawString(w, x, y, s, style)
}
