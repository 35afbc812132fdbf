package scenes

import (
	"log"
	"math"

	"github.com/decker502/toanvui/pkg/config"
	"github.com/decker502/toanvui/pkg/game"
	"github.com/decker502/toanvui/pkg/reaction"
	"github.com/decker502/toanvui/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// menuShapes are the decorative shapes bobbing under the title.
var menuShapes = []reaction.Category{
	reaction.CategoryCircle,
	reaction.CategorySquare,
	reaction.CategoryTriangle,
	reaction.CategoryStar,
}

// MenuScene is the title screen: start button, high score and sound toggle.
type MenuScene struct {
	deps Deps

	titleFace *text.GoTextFace
	face      *text.GoTextFace
	smallFace *text.GoTextFace

	startButton Button
	soundButton Button

	// 只在进入菜单时读取一次
	highScore int
	lastScore int
	hasLast   bool

	elapsed float64
	started bool
}

// NewMenuScene creates the title screen.
//
// Parameters:
//   - deps: shared services; the scene manager is used to switch to the game.
func NewMenuScene(deps Deps) *MenuScene {
	centerX := float64(config.ScreenWidth) / 2

	scene := &MenuScene{
		deps:        deps,
		titleFace:   loadFace(config.TitleFontSize),
		face:        loadFace(config.HUDFontSize),
		smallFace:   loadFace(config.HUDFontSize * 0.75),
		startButton: NewCenteredButton(deps.Strings.GetString("MENU_START"), centerX, 420, config.ButtonWidth, config.ButtonHeight),
		soundButton: NewCenteredButton("", centerX, 510, config.ButtonWidth, config.ButtonHeight*0.75),
	}
	scene.refreshSoundLabel()

	if store := deps.highScoreStore(); store != nil {
		scene.highScore = store.LoadHighScore()
	}
	if deps.GameState != nil && deps.GameState.LastResult != nil {
		scene.lastScore = deps.GameState.LastResult.FinalScore
		scene.hasLast = true
	}

	log.Printf("[MenuScene] Initialized (high score %d)", scene.highScore)
	return scene
}

// Update handles keyboard and pointer input.
func (m *MenuScene) Update(deltaTime float64) {
	m.elapsed += deltaTime

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		m.start()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		m.toggleSound()
		return
	}

	if ok, x, y := utils.IsJustTouchedOrClicked(); ok {
		m.handleTap(x, y)
	}
}

// handleTap dispatches a click or tap to the button under it.
func (m *MenuScene) handleTap(x, y int) {
	switch {
	case m.startButton.Contains(x, y):
		m.start()
	case m.soundButton.Contains(x, y):
		m.toggleSound()
	}
}

func (m *MenuScene) start() {
	if m.started {
		return
	}
	m.started = true
	m.deps.play(game.SoundClick)
	m.deps.gotoScene(game.SceneReaction)
}

func (m *MenuScene) toggleSound() {
	sm := m.deps.settings()
	if sm == nil {
		return
	}

	enabled := sm.ToggleSound()
	if err := sm.Save(); err != nil {
		log.Printf("[MenuScene] Warning: Failed to save settings: %v", err)
	}
	m.refreshSoundLabel()

	if enabled {
		m.deps.play(game.SoundClick)
	}
}

func (m *MenuScene) soundEnabled() bool {
	sm := m.deps.settings()
	return sm == nil || sm.GetSettings().SoundEnabled
}

func (m *MenuScene) refreshSoundLabel() {
	if m.soundEnabled() {
		m.soundButton.Label = m.deps.Strings.GetString("MENU_SOUND_ON")
	} else {
		m.soundButton.Label = m.deps.Strings.GetString("MENU_SOUND_OFF")
	}
}

// Draw renders the title, decorative shapes, buttons and the high score.
func (m *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	centerX := float64(config.ScreenWidth) / 2
	strs := m.deps.Strings

	drawCenteredText(screen, strs.GetString("GAME_TITLE"), m.titleFace, centerX, 170, colorText)

	// 标题下方的四种图形，依次上下浮动
	spacing := 80.0
	startX := centerX - spacing*float64(len(menuShapes)-1)/2
	for i, category := range menuShapes {
		bob := math.Sin(m.elapsed*2+float64(i)*0.6) * 8
		DrawShape(screen, category, startX+float64(i)*spacing, 290+bob, 56, ShapeColor(category))
	}

	m.startButton.Draw(screen, m.face, colorButton)
	m.soundButton.Draw(screen, m.smallFace, colorMuted)

	drawCenteredText(screen, strs.Format("MENU_HIGH_SCORE", m.highScore), m.face, centerX, 620, colorAccent)
	if m.hasLast {
		drawCenteredText(screen, strs.Format("MENU_LAST_SCORE", m.lastScore), m.smallFace, centerX, 660, colorText)
	}
	drawWrappedText(screen, strs.GetString("MENU_HINT"), m.smallFace, centerX, 720, config.ScreenWidth-2*config.HUDMarginX, 26, colorMuted)
}
