package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"github.com/decker502/toanvui/pkg/config"
	"github.com/decker502/toanvui/pkg/ecs"
	"github.com/decker502/toanvui/pkg/entities"
	"github.com/decker502/toanvui/pkg/game"
	"github.com/decker502/toanvui/pkg/reaction"
	"github.com/decker502/toanvui/pkg/systems"
	"github.com/decker502/toanvui/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// basketFollowRate 篮子追随目标车道的速度（每秒趋近比例）
	basketFollowRate = 18.0
	// goBannerDuration "Bắt đầu!" 横幅停留时长
	goBannerDuration = 0.8
)

// inputFrame is one frame of player intent, decoupled from ebiten input polling.
type inputFrame struct {
	moveLeft  bool
	moveRight bool
	tapped    bool
	tapX      int
	tapY      int
	confirm   bool // Enter / Space
	back      bool // Escape
}

// ReactionScene runs one "Hứng hình" session: the player moves a basket between
// lanes to catch the requested shape.
type ReactionScene struct {
	deps    Deps
	session *reaction.Session
	rng     *rand.Rand // effects only; batches use the session's own source

	layout     utils.LaneLayout
	gestures   *utils.GestureTracker
	showArrows bool
	leftArrow  Button
	rightArrow Button

	entityManager  *ecs.EntityManager
	lifetimeSystem *systems.LifetimeSystem
	motionSystem   *systems.EffectMotionSystem
	renderSystem   *systems.EffectRenderSystem

	face      *text.GoTextFace
	bigFace   *text.GoTextFace
	titleFace *text.GoTextFace

	basketX float64 // 平滑后的篮子中心

	result      *reaction.Result
	retryButton Button
	exitButton  Button
}

// NewReactionScene creates the game scene and starts the opening countdown.
//
// Parameters:
//   - deps: shared services; Config nil means the built-in defaults.
func NewReactionScene(deps Deps) *ReactionScene {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultReactionConfig()
		deps.Config = cfg
	}

	store := deps.highScoreStore()

	seed := deps.seed()
	em := ecs.NewEntityManager()
	centerX := float64(config.ScreenWidth) / 2

	scene := &ReactionScene{
		deps:    deps,
		session: reaction.NewSession(cfg, rand.New(rand.NewSource(seed)), store),
		rng:     rand.New(rand.NewSource(seed + 1)),
		layout: utils.LaneLayout{
			X:      config.LaneAreaX,
			Y:      config.LaneAreaY,
			Width:  config.LaneAreaWidth,
			Height: config.LaneAreaHeight,
			Lanes:  cfg.Lanes,
		},
		gestures:   utils.NewGestureTracker(),
		showArrows: utils.IsMobile(),
		leftArrow: Button{
			Label: "<",
			X:     config.ArrowButtonMargin,
			Y:     config.ArrowButtonCenterY - config.ArrowButtonSize/2,
			W:     config.ArrowButtonSize,
			H:     config.ArrowButtonSize,
		},
		rightArrow: Button{
			Label: ">",
			X:     config.ScreenWidth - config.ArrowButtonMargin - config.ArrowButtonSize,
			Y:     config.ArrowButtonCenterY - config.ArrowButtonSize/2,
			W:     config.ArrowButtonSize,
			H:     config.ArrowButtonSize,
		},
		entityManager:  em,
		lifetimeSystem: systems.NewLifetimeSystem(em),
		motionSystem:   systems.NewEffectMotionSystem(em),
		renderSystem:   systems.NewEffectRenderSystem(em, centerX, config.BannerY),
		face:           loadFace(config.HUDFontSize),
		bigFace:        loadFace(config.TitleFontSize * 2),
		titleFace:      loadFace(config.TitleFontSize),
		retryButton:    NewCenteredButton(deps.Strings.GetString("BUTTON_RETRY"), centerX, 480, config.ButtonWidth, config.ButtonHeight),
		exitButton:     NewCenteredButton(deps.Strings.GetString("BUTTON_EXIT"), centerX, 560, config.ButtonWidth, config.ButtonHeight),
	}
	scene.basketX = scene.layout.LaneCenterX(scene.session.PlayerLane())

	log.Printf("[ReactionScene] Initialized (seed %d, lanes %d)", seed, cfg.Lanes)
	return scene
}

// Session exposes the running game session.
func (r *ReactionScene) Session() *reaction.Session {
	return r.session
}

// Update polls input and advances the session.
func (r *ReactionScene) Update(deltaTime float64) {
	r.step(deltaTime, r.readInput())
}

// OnLeave drops in-flight effects when the scene is switched away.
func (r *ReactionScene) OnLeave() {
	r.entityManager.Clear()
	r.gestures.Reset()
}

func (r *ReactionScene) readInput() inputFrame {
	in := inputFrame{
		moveLeft:  inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA),
		moveRight: inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyD),
		confirm:   inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
		back:      inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}

	g := r.gestures.Update()
	switch g.Type {
	case utils.GestureSwipeLeft:
		in.moveLeft = true
	case utils.GestureSwipeRight:
		in.moveRight = true
	case utils.GestureTap:
		in.tapped = true
		in.tapX, in.tapY = g.X, g.Y
	}
	return in
}

// step applies one frame of input and advances the session and effects.
func (r *ReactionScene) step(dt float64, in inputFrame) {
	if r.session.IsGameOver() {
		r.stepGameOver(in)
	} else {
		if in.back {
			r.deps.gotoScene(game.SceneMenu)
			return
		}
		if in.moveLeft {
			r.session.MoveLeft()
		}
		if in.moveRight {
			r.session.MoveRight()
		}
		if in.tapped {
			r.handlePlayTap(in.tapX, in.tapY)
		}
		r.handleEvents(r.session.Update(dt))
	}

	r.motionSystem.Update(dt)
	r.lifetimeSystem.Update(dt)
	r.entityManager.RemoveMarkedEntities()

	target := r.layout.LaneCenterX(r.session.PlayerLane())
	r.basketX = utils.Lerp(r.basketX, target, utils.Clamp01(dt*basketFollowRate))
}

func (r *ReactionScene) stepGameOver(in inputFrame) {
	switch {
	case in.confirm:
		r.restart()
	case in.back:
		r.deps.gotoScene(game.SceneMenu)
	case in.tapped && r.retryButton.Contains(in.tapX, in.tapY):
		r.restart()
	case in.tapped && r.exitButton.Contains(in.tapX, in.tapY):
		r.deps.play(game.SoundClick)
		r.deps.gotoScene(game.SceneMenu)
	}
}

// handlePlayTap moves the basket: on-screen arrows step one lane, a tap on a lane jumps to it.
func (r *ReactionScene) handlePlayTap(x, y int) {
	if r.showArrows {
		if r.leftArrow.Contains(x, y) {
			r.session.MoveLeft()
			return
		}
		if r.rightArrow.Contains(x, y) {
			r.session.MoveRight()
			return
		}
	}

	if lane, ok := r.layout.LaneAt(float64(x)); ok {
		r.session.SetPlayerLane(lane)
	}
}

func (r *ReactionScene) restart() {
	r.deps.play(game.SoundClick)
	r.entityManager.Clear()
	r.gestures.Reset()
	r.result = nil
	r.session.Restart()
	r.basketX = r.layout.LaneCenterX(r.session.PlayerLane())
}

// handleEvents turns session events into sounds and effects.
func (r *ReactionScene) handleEvents(events []reaction.Event) {
	strs := r.deps.Strings
	cfg := r.session.Config()

	for _, e := range events {
		switch e.Type {
		case reaction.EventCountdownTick:
			if e.Countdown > 0 {
				r.deps.play(game.SoundCountdown)
				continue
			}
			r.deps.play(game.SoundGo)
			r.spawnBanner(strs.GetString("COUNTDOWN_GO"), colorGood, goBannerDuration)

		case reaction.EventCaught:
			x := r.layout.LaneCenterX(e.Object.Lane)
			y := r.layout.ProgressY(e.Object.Progress)
			if _, err := entities.NewConfettiBurst(r.entityManager, r.rng, x, y, entities.ConfettiCount); err != nil {
				log.Printf("[ReactionScene] Warning: confetti: %v", err)
			}
			if _, err := entities.NewScorePopup(r.entityManager, x, y-config.ObjectSize/2, fmt.Sprintf("+%d", cfg.PointsPerCatch), colorGood); err != nil {
				log.Printf("[ReactionScene] Warning: score popup: %v", err)
			}
			r.deps.play(game.SoundCatch)

		case reaction.EventWrongCatch, reaction.EventTargetMissed:
			r.deps.play(game.SoundWrong)

		case reaction.EventSpeedUp:
			r.spawnBanner(strs.GetString("SPEED_UP"), colorAccent, cfg.SpeedUpBannerDuration)
			r.deps.play(game.SoundSpeedUp)

		case reaction.EventGameOver:
			result := e.Result
			r.result = &result
			if r.deps.GameState != nil {
				r.deps.GameState.RecordResult(result)
			}
			if result.IsNewHighScore {
				r.deps.play(game.SoundNewRecord)
				if _, err := entities.NewConfettiBurst(r.entityManager, r.rng, float64(config.ScreenWidth)/2, 300, entities.ConfettiCount*2); err != nil {
					log.Printf("[ReactionScene] Warning: confetti: %v", err)
				}
			} else {
				r.deps.play(game.SoundGameOver)
			}
			log.Printf("[ReactionScene] Game over: score=%d, reason=%s, newRecord=%v",
				result.FinalScore, result.Reason, result.IsNewHighScore)
		}
	}
}

func (r *ReactionScene) spawnBanner(label string, clr color.RGBA, duration float64) {
	if _, err := entities.NewBanner(r.entityManager, label, clr, duration); err != nil {
		log.Printf("[ReactionScene] Warning: banner: %v", err)
	}
}

// Draw renders lanes, falling shapes, the basket, HUD, effects and the game-over panel.
func (r *ReactionScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	snap := r.session.Snapshot()

	r.drawLanes(screen)
	for _, obj := range snap.Objects {
		DrawShape(screen, obj.Category,
			r.layout.LaneCenterX(obj.Lane), r.layout.ProgressY(obj.Progress),
			config.ObjectSize, ShapeColor(obj.Category))
	}
	r.drawBasket(screen)
	r.drawHUD(screen, snap)

	if snap.Phase == reaction.PhaseCountdown && snap.Countdown > 0 {
		r.drawCountdown(screen, snap)
	}

	r.renderSystem.Draw(screen)

	if r.showArrows && r.result == nil {
		r.leftArrow.Draw(screen, r.titleFace, colorMuted)
		r.rightArrow.Draw(screen, r.titleFace, colorMuted)
	}

	if r.result != nil {
		r.drawGameOver(screen, *r.result)
	}
}

func (r *ReactionScene) drawLanes(screen *ebiten.Image) {
	l := r.layout
	sm := r.deps.settings()
	if sm == nil || sm.GetSettings().ShowLaneGuides {
		for i := 1; i < l.Lanes; i++ {
			x := float32(l.X + float64(i)*l.LaneWidth())
			vector.StrokeLine(screen, x, float32(l.Y), x, float32(l.Y+l.Height), 2, colorLaneGuide, true)
		}
	}

	// 拦截线
	y := float32(l.ProgressY(r.session.Config().CatchThreshold))
	vector.StrokeLine(screen, float32(l.X), y, float32(l.X+l.Width), y, 1, colorLaneGuide, true)
}

func (r *ReactionScene) drawBasket(screen *ebiten.Image) {
	x := r.basketX - config.BasketWidth/2
	y := r.layout.Y + r.layout.Height + config.BasketGap
	vector.DrawFilledRect(screen, float32(x), float32(y), config.BasketWidth, config.BasketHeight, colorBasket, true)
}

func (r *ReactionScene) drawHUD(screen *ebiten.Image, snap reaction.Snapshot) {
	strs := r.deps.Strings

	drawText(screen, strs.Format("HUD_SCORE", snap.Score), r.face, config.HUDMarginX, config.HUDScoreY, colorText)
	drawRightText(screen, strs.Format("HUD_HIGH_SCORE", snap.HighScore), r.face,
		config.ScreenWidth-config.HUDMarginX, config.HUDScoreY, colorMuted)

	if !snap.HasTarget {
		return
	}

	// 提示文字 + 目标图形图标
	prompt := strs.Format("PROMPT_CATCH", strs.ShapeName(string(snap.Target)))
	iconSize := config.HUDFontSize * 1.5
	width := 0.0
	if r.face != nil {
		width = text.Advance(prompt, r.face)
	}
	total := width + 12 + iconSize
	left := (float64(config.ScreenWidth) - total) / 2

	drawText(screen, prompt, r.face, left, config.HUDPromptY-config.HUDFontSize/2, colorText)
	DrawShape(screen, snap.Target, left+width+12+iconSize/2, config.HUDPromptY, iconSize, ShapeColor(snap.Target))
}

func (r *ReactionScene) drawCountdown(screen *ebiten.Image, snap reaction.Snapshot) {
	if r.bigFace == nil {
		return
	}

	// 每秒一次：放大后回落
	elapsed := 1 - snap.PhaseRemaining
	scale := 1 + 0.3*utils.Pulse(elapsed)
	alpha := 1 - 0.5*utils.EaseInQuad(elapsed)

	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(config.ScreenWidth)/2, config.BannerY)
	op.ColorScale.ScaleWithColor(colorAccent)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, fmt.Sprintf("%d", snap.Countdown), r.bigFace, op)
}

func (r *ReactionScene) drawGameOver(screen *ebiten.Image, result reaction.Result) {
	strs := r.deps.Strings
	centerX := float64(config.ScreenWidth) / 2

	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, colorOverlay, false)

	panelW, panelH := 400.0, 420.0
	panelY := 220.0
	vector.DrawFilledRect(screen, float32(centerX-panelW/2), float32(panelY), float32(panelW), float32(panelH), colorPanel, true)

	drawCenteredText(screen, strs.GetString("GAME_OVER_TITLE"), r.titleFace, centerX, panelY+50, colorText)
	drawCenteredText(screen, strs.Format("GAME_OVER_SCORE", result.FinalScore), r.face, centerX, panelY+120, colorText)

	var detail string
	detailColor := colorMuted
	switch {
	case result.IsNewHighScore:
		detail = strs.GetString("GAME_OVER_NEW_RECORD")
		detailColor = colorAccent
	case result.Reason == reaction.ReasonWrongCatch:
		detail = strs.GetString("GAME_OVER_WRONG_CATCH")
	case result.Reason == reaction.ReasonTargetMissed:
		detail = strs.GetString("GAME_OVER_TARGET_MISSED")
	}
	if detail != "" {
		drawWrappedText(screen, detail, r.face, centerX, panelY+175, panelW-40, 30, detailColor)
	}

	r.retryButton.Draw(screen, r.face, colorButton)
	r.exitButton.Draw(screen, r.face, colorMuted)
}
