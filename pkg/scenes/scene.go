package scenes

import (
	"log"
	"time"

	"github.com/decker502/toanvui/pkg/config"
	"github.com/decker502/toanvui/pkg/game"
	"github.com/decker502/toanvui/pkg/reaction"
	"github.com/decker502/toanvui/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Scene is a type alias for game.Scene to maintain backward compatibility.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// Deps holds the shared services every scene is built from.
// Any field may be nil; scenes fall back to silent or in-memory behavior.
type Deps struct {
	SceneManager *game.SceneManager
	GameState    *game.GameState
	Audio        *game.AudioManager
	Strings      *game.UIStrings
	Config       *config.ReactionGameConfig

	// HighScores overrides the game state's high score manager.
	HighScores reaction.HighScoreStore

	// Seed drives batch generation and effects. Zero means time-based.
	Seed int64
}

// seed returns the configured seed or a time-based one.
func (d Deps) seed() int64 {
	if d.Seed != 0 {
		return d.Seed
	}
	return time.Now().UnixNano()
}

// settings returns the settings manager, or nil when no game state is set.
func (d Deps) settings() *game.SettingsManager {
	if d.GameState == nil {
		return nil
	}
	return d.GameState.GetSettingsManager()
}

// highScoreStore returns the override, the game state's manager, or nil.
func (d Deps) highScoreStore() reaction.HighScoreStore {
	if d.HighScores != nil {
		return d.HighScores
	}
	if d.GameState == nil {
		return nil
	}
	return d.GameState.GetHighScoreManager()
}

func (d Deps) play(id game.SoundID) {
	if d.Audio != nil {
		d.Audio.PlaySound(id)
	}
}

func (d Deps) gotoScene(id game.SceneID) {
	if d.SceneManager != nil {
		d.SceneManager.Goto(id)
	}
}

// loadFace creates a text face, returning nil if the font is unavailable.
func loadFace(size float64) *text.GoTextFace {
	face, err := utils.NewDefaultFace(size)
	if err != nil {
		log.Printf("[Scenes] Warning: Failed to load font (size %.0f): %v", size, err)
		return nil
	}
	return face
}
