package scenes

import (
	"testing"

	"github.com/decker502/toanvui/pkg/config"
	"github.com/decker502/toanvui/pkg/game"
	"github.com/decker502/toanvui/pkg/reaction"
	"github.com/decker502/toanvui/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// stubScene 只记录被创建的场景 ID
type stubScene struct{ id game.SceneID }

func (s *stubScene) Update(float64)     {}
func (s *stubScene) Draw(*ebiten.Image) {}

// newTestDeps 内存存储 + 静音音频 + 记录场景切换
func newTestDeps(t *testing.T) (Deps, *[]game.SceneID) {
	t.Helper()

	var created []game.SceneID
	sm := game.NewSceneManager()
	sm.SetSceneFactory(func(id game.SceneID) game.Scene {
		created = append(created, id)
		return &stubScene{id: id}
	})

	gs := game.NewGameState(nil)
	return Deps{
		SceneManager: sm,
		GameState:    gs,
		Audio:        game.NewSilentAudioManager(gs.GetSettingsManager()),
		Config:       config.DefaultReactionConfig(),
		Seed:         42,
	}, &created
}

// tapLane 点击指定车道中部
func tapLane(r *ReactionScene, lane int) inputFrame {
	return inputFrame{
		tapped: true,
		tapX:   int(r.layout.LaneCenterX(lane)),
		tapY:   int(r.layout.ProgressY(0.5)),
	}
}

// targetLane 当前批次中目标图形所在车道
func targetLane(snap reaction.Snapshot) (int, bool) {
	for _, obj := range snap.Objects {
		if obj.IsTarget {
			return obj.Lane, true
		}
	}
	return 0, false
}

// runUntil 按 50ms 步长推进，直到 done 返回 true
func runUntil(t *testing.T, r *ReactionScene, maxFrames int, input func() inputFrame, done func() bool) {
	t.Helper()
	for i := 0; i < maxFrames; i++ {
		if done() {
			return
		}
		r.step(0.05, input())
	}
	if !done() {
		t.Fatalf("condition not reached within %d frames (phase %s)", maxFrames, r.session.Phase())
	}
}

func TestReactionSceneMovement(t *testing.T) {
	deps, _ := newTestDeps(t)
	r := NewReactionScene(deps)

	if got := r.session.PlayerLane(); got != 1 {
		t.Fatalf("initial lane: got %d, want 1", got)
	}

	tests := []struct {
		name string
		in   inputFrame
		want int
	}{
		{"左移", inputFrame{moveLeft: true}, 0},
		{"最左侧再左移", inputFrame{moveLeft: true}, 0},
		{"右移", inputFrame{moveRight: true}, 1},
		{"点击最右车道", tapLane(r, 2), 2},
		{"点击车道区域外", inputFrame{tapped: true, tapX: 5, tapY: 400}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.step(0.016, tt.in)
			if got := r.session.PlayerLane(); got != tt.want {
				t.Errorf("lane: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReactionSceneArrowButtons(t *testing.T) {
	deps, _ := newTestDeps(t)
	r := NewReactionScene(deps)
	r.showArrows = true

	left := inputFrame{tapped: true, tapX: int(r.leftArrow.X + 5), tapY: int(r.leftArrow.Y + 5)}
	r.step(0.016, left)
	if got := r.session.PlayerLane(); got != 0 {
		t.Errorf("after left arrow: got lane %d, want 0", got)
	}

	right := inputFrame{tapped: true, tapX: int(r.rightArrow.X + 5), tapY: int(r.rightArrow.Y + 5)}
	r.step(0.016, right)
	r.step(0.016, right)
	if got := r.session.PlayerLane(); got != 2 {
		t.Errorf("after two right arrows: got lane %d, want 2", got)
	}
}

func TestReactionSceneCatchSpawnsEffects(t *testing.T) {
	deps, _ := newTestDeps(t)
	r := NewReactionScene(deps)

	follow := func() inputFrame {
		if lane, ok := targetLane(r.session.Snapshot()); ok {
			return tapLane(r, lane)
		}
		return inputFrame{}
	}
	runUntil(t, r, 400, follow, func() bool { return r.session.Score() > 0 })

	if got := r.session.Score(); got != config.DefaultReactionConfig().PointsPerCatch {
		t.Errorf("score: got %d, want %d", got, config.DefaultReactionConfig().PointsPerCatch)
	}
	if r.entityManager.EntityCount() == 0 {
		t.Error("a catch should spawn confetti and a score popup")
	}
}

func TestReactionSceneGameOverAndRetry(t *testing.T) {
	deps, _ := newTestDeps(t)
	r := NewReactionScene(deps)

	// 不移动：迟早会漏接目标或接错
	runUntil(t, r, 4000, func() inputFrame { return inputFrame{} }, r.session.IsGameOver)

	if r.result == nil {
		t.Fatal("game over should store the result")
	}
	if deps.GameState.GamesPlayed != 1 {
		t.Errorf("GamesPlayed: got %d, want 1", deps.GameState.GamesPlayed)
	}
	if r.result.Reason == reaction.ReasonNone {
		t.Error("game over reason should be set")
	}

	// 结束后方向键无效
	lane := r.session.PlayerLane()
	r.step(0.016, inputFrame{moveLeft: true, moveRight: true})
	if r.session.PlayerLane() != lane {
		t.Error("movement after game over should be ignored")
	}

	retry := inputFrame{tapped: true, tapX: int(r.retryButton.X + 10), tapY: int(r.retryButton.Y + 10)}
	r.step(0.016, retry)

	if r.result != nil {
		t.Error("retry should clear the result")
	}
	if r.session.IsGameOver() || r.session.Score() != 0 {
		t.Errorf("retry should start a fresh session: phase %s, score %d", r.session.Phase(), r.session.Score())
	}
	if r.entityManager.EntityCount() != 0 {
		t.Errorf("retry should clear effects, %d entities left", r.entityManager.EntityCount())
	}
}

func TestReactionSceneExitToMenu(t *testing.T) {
	tests := []struct {
		name     string
		gameOver bool
		in       func(r *ReactionScene) inputFrame
	}{
		{"游戏中按返回", false, func(*ReactionScene) inputFrame { return inputFrame{back: true} }},
		{"结束后点击退出", true, func(r *ReactionScene) inputFrame {
			return inputFrame{tapped: true, tapX: int(r.exitButton.X + 10), tapY: int(r.exitButton.Y + 10)}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, created := newTestDeps(t)
			r := NewReactionScene(deps)

			if tt.gameOver {
				runUntil(t, r, 4000, func() inputFrame { return inputFrame{} }, r.session.IsGameOver)
			}

			r.step(0.016, tt.in(r))
			deps.SceneManager.Update(0)

			if len(*created) != 1 || (*created)[0] != game.SceneMenu {
				t.Errorf("scenes created: got %v, want [menu]", *created)
			}
		})
	}
}

func TestReactionSceneBasketFollowsLane(t *testing.T) {
	deps, _ := newTestDeps(t)
	r := NewReactionScene(deps)

	r.step(0.016, inputFrame{moveRight: true})
	for i := 0; i < 60; i++ {
		r.step(0.016, inputFrame{})
	}

	want := r.layout.LaneCenterX(2)
	if diff := r.basketX - want; diff > 0.5 || diff < -0.5 {
		t.Errorf("basketX: got %.2f, want ≈ %.2f", r.basketX, want)
	}
}

func TestReactionSceneNilDeps(t *testing.T) {
	r := NewReactionScene(Deps{Seed: 7})

	// 无存储、无音频、无场景管理器时照常运行
	for i := 0; i < 200 && !r.session.IsGameOver(); i++ {
		r.step(0.05, inputFrame{back: i == 150})
	}
	if r.session.Config() == nil {
		t.Error("default config should be used")
	}
}

func TestMenuScene(t *testing.T) {
	deps, created := newTestDeps(t)
	m := NewMenuScene(deps)
	sm := deps.GameState.GetSettingsManager()

	if m.soundButton.Label != "[MENU_SOUND_ON]" {
		t.Errorf("sound label: got %q", m.soundButton.Label)
	}

	t.Run("切换音效", func(t *testing.T) {
		m.handleTap(int(m.soundButton.X+5), int(m.soundButton.Y+5))
		if sm.GetSettings().SoundEnabled {
			t.Error("sound should be disabled after toggle")
		}
		if m.soundButton.Label != "[MENU_SOUND_OFF]" {
			t.Errorf("sound label: got %q", m.soundButton.Label)
		}
	})

	t.Run("点击空白处", func(t *testing.T) {
		m.handleTap(0, 0)
		deps.SceneManager.Update(0)
		if len(*created) != 0 {
			t.Errorf("no scene should be created, got %v", *created)
		}
	})

	t.Run("开始游戏", func(t *testing.T) {
		m.handleTap(int(m.startButton.X+5), int(m.startButton.Y+5))
		m.handleTap(int(m.startButton.X+5), int(m.startButton.Y+5))
		deps.SceneManager.Update(0)
		if len(*created) != 1 || (*created)[0] != game.SceneReaction {
			t.Errorf("scenes created: got %v, want [reaction]", *created)
		}
	})
}

// countingStore 记录最高分被读取的次数
type countingStore struct {
	reaction.MemoryHighScoreStore
	loads int
}

func (c *countingStore) LoadHighScore() int {
	c.loads++
	return c.MemoryHighScoreStore.LoadHighScore()
}

func TestMenuSceneHighScore(t *testing.T) {
	tests := []struct {
		name   string
		stored int
	}{
		{"没有记录", 0},
		{"已有记录", 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, _ := newTestDeps(t)
			store := &countingStore{MemoryHighScoreStore: reaction.MemoryHighScoreStore{Score: tt.stored}}
			deps.HighScores = store

			m := NewMenuScene(deps)
			for i := 0; i < 120; i++ {
				m.Update(1.0 / 60)
			}

			if m.highScore != tt.stored {
				t.Errorf("highScore: got %d, want %d", m.highScore, tt.stored)
			}
			if store.loads != 1 {
				t.Errorf("store reads: got %d, want 1", store.loads)
			}
		})
	}
}

func TestMenuSceneHighScoreFromGameState(t *testing.T) {
	deps, _ := newTestDeps(t)
	deps.GameState.GetHighScoreManager().SaveHighScore(70)

	if got := NewMenuScene(deps).highScore; got != 70 {
		t.Errorf("highScore: got %d, want 70", got)
	}
	if got := NewMenuScene(Deps{}).highScore; got != 0 {
		t.Errorf("highScore without game state: got %d, want 0", got)
	}
}

func TestMenuSceneLastScore(t *testing.T) {
	deps, _ := newTestDeps(t)

	if m := NewMenuScene(deps); m.hasLast {
		t.Error("no last score before any game")
	}

	deps.GameState.RecordResult(reaction.Result{FinalScore: 40})
	m := NewMenuScene(deps)
	if !m.hasLast || m.lastScore != 40 {
		t.Errorf("last score: got %d (shown %v), want 40", m.lastScore, m.hasLast)
	}
}

func TestMobileArrowsFromEnv(t *testing.T) {
	t.Setenv(utils.MobileEmulateEnv, "1")
	deps, _ := newTestDeps(t)
	if !NewReactionScene(deps).showArrows {
		t.Error("arrows should be shown when mobile layout is emulated")
	}
}
