package reaction

import (
	"math/rand"
	"testing"

	"github.com/decker502/toanvui/pkg/config"
)

// newTestSession 创建使用固定种子的会话
func newTestSession(t *testing.T, store HighScoreStore) *Session {
	t.Helper()
	return NewSession(config.DefaultReactionConfig(), rand.New(rand.NewSource(42)), store)
}

// setBatch 直接布置一批掉落物（跳过随机生成）
func setBatch(s *Session, target Category, objs ...FallingObject) {
	s.phase = PhaseFalling
	s.phaseTimer = 0
	s.target = target
	s.hasTarget = true
	s.batchIndex++
	s.active = append(s.active[:0], objs...)
}

// advanceToFalling 推进到下一批开始掉落
func advanceToFalling(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; i < 10000 && s.Phase() != PhaseFalling; i++ {
		if s.IsGameOver() {
			t.Fatal("session ended while waiting for next batch")
		}
		s.Update(0.05)
	}
	if s.Phase() != PhaseFalling {
		t.Fatalf("never reached falling phase, stuck in %v", s.Phase())
	}
}

// playCleanBatch 站到目标车道接住目标，直到本批结算完毕
func playCleanBatch(t *testing.T, s *Session) []Event {
	t.Helper()
	advanceToFalling(t, s)

	target, ok := s.Target()
	if !ok {
		t.Fatal("falling batch without target")
	}
	for _, obj := range s.Objects() {
		if obj.Category == target {
			s.SetPlayerLane(obj.Lane)
		}
	}

	var events []Event
	for i := 0; i < 10000 && s.Phase() == PhaseFalling; i++ {
		events = append(events, s.Update(0.05)...)
	}
	if s.IsGameOver() {
		t.Fatalf("clean batch ended the session: %+v", events)
	}
	return events
}

func findEvent(events []Event, typ EventType) (Event, bool) {
	for _, e := range events {
		if e.Type == typ {
			return e, true
		}
	}
	return Event{}, false
}

func TestNewSessionStartsInCountdown(t *testing.T) {
	s := newTestSession(t, nil)

	snap := s.Snapshot()
	if snap.Phase != PhaseCountdown {
		t.Errorf("Phase: got %v, want countdown", snap.Phase)
	}
	if snap.Countdown != 3 {
		t.Errorf("Countdown: got %d, want 3", snap.Countdown)
	}
	if snap.PlayerLane != 1 {
		t.Errorf("PlayerLane: got %d, want middle lane 1", snap.PlayerLane)
	}
	if snap.Score != 0 || snap.BatchesCompleted != 0 || len(snap.Objects) != 0 {
		t.Errorf("unexpected initial snapshot: %+v", snap)
	}
	if snap.FallDuration != 4.0 {
		t.Errorf("FallDuration: got %v, want 4.0", snap.FallDuration)
	}
}

func TestCountdownSequence(t *testing.T) {
	s := newTestSession(t, nil)

	var ticks []int
	for i := 0; i < 3; i++ {
		for _, e := range s.Update(1.0) {
			if e.Type == EventCountdownTick {
				ticks = append(ticks, e.Countdown)
			}
		}
	}

	want := []int{2, 1, 0}
	if len(ticks) != len(want) {
		t.Fatalf("countdown ticks: got %v, want %v", ticks, want)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Fatalf("countdown ticks: got %v, want %v", ticks, want)
		}
	}

	if s.Phase() != PhaseSpawning {
		t.Fatalf("after countdown: got %v, want spawning", s.Phase())
	}

	events := s.Update(0.01)
	if _, ok := findEvent(events, EventBatchSpawned); !ok {
		t.Fatalf("expected batch to spawn right after countdown, got %+v", events)
	}
	if s.Phase() != PhaseFalling {
		t.Errorf("Phase: got %v, want falling", s.Phase())
	}
}

func TestCountdownDisabled(t *testing.T) {
	cfg := config.DefaultReactionConfig()
	cfg.CountdownSeconds = 0
	s := NewSession(cfg, rand.New(rand.NewSource(1)), nil)

	if s.Phase() != PhaseSpawning {
		t.Fatalf("Phase: got %v, want spawning", s.Phase())
	}
	s.Update(0.01)
	if s.Phase() != PhaseFalling {
		t.Errorf("Phase: got %v, want falling", s.Phase())
	}
}

func TestAdvanceBatchInvariants(t *testing.T) {
	cfg := config.DefaultReactionConfig()
	durations := []float64{4.0, 2.5, 1.5}

	for seed := int64(1); seed <= 200; seed++ {
		for _, d := range durations {
			s := NewSession(cfg, rand.New(rand.NewSource(seed)), nil)
			s.fallDuration = d
			s.phase = PhaseSpawning

			batch, ok := s.AdvanceBatch()
			if !ok {
				t.Fatal("AdvanceBatch should succeed in spawning phase")
			}

			if got, want := len(batch.Objects), cfg.ObjectCountFor(d); got != want {
				t.Fatalf("seed %d duration %v: got %d objects, want %d", seed, d, got, want)
			}

			targets := 0
			categories := make(map[Category]bool)
			lanes := make(map[int]bool)
			for _, obj := range batch.Objects {
				if obj.IsTarget {
					targets++
					if obj.Category != batch.Target {
						t.Fatalf("target object category %s != batch target %s", obj.Category, batch.Target)
					}
				}
				if categories[obj.Category] {
					t.Fatalf("seed %d: duplicate category %s in batch", seed, obj.Category)
				}
				categories[obj.Category] = true
				if lanes[obj.Lane] {
					t.Fatalf("seed %d: duplicate lane %d in batch", seed, obj.Lane)
				}
				lanes[obj.Lane] = true
				if obj.Lane < 0 || obj.Lane >= cfg.Lanes {
					t.Fatalf("lane %d out of range", obj.Lane)
				}
				if obj.Progress != 0 {
					t.Fatalf("new object should start at progress 0, got %v", obj.Progress)
				}
			}
			if targets != 1 {
				t.Fatalf("seed %d: got %d targets, want exactly 1", seed, targets)
			}

			target, ok := s.Target()
			if !ok || target != batch.Target {
				t.Fatalf("session target %s (%v) != batch target %s", target, ok, batch.Target)
			}
		}
	}
}

func TestAdvanceBatchOnlyWhileSpawning(t *testing.T) {
	s := newTestSession(t, nil)
	if _, ok := s.AdvanceBatch(); ok {
		t.Error("AdvanceBatch should be rejected during countdown")
	}
}

func TestCatchExample(t *testing.T) {
	objects := []FallingObject{
		{ID: 1, Category: CategoryCircle, Lane: 0, Progress: 0.75, IsTarget: true},
		{ID: 2, Category: CategorySquare, Lane: 1, Progress: 0.75},
		{ID: 3, Category: CategoryTriangle, Lane: 2, Progress: 0.75},
	}

	t.Run("接住目标得分并继续", func(t *testing.T) {
		s := newTestSession(t, nil)
		setBatch(s, CategoryCircle, objects...)
		s.SetPlayerLane(0)

		events := s.Update(0.4)

		e, ok := findEvent(events, EventCaught)
		if !ok {
			t.Fatalf("expected caught event, got %+v", events)
		}
		if e.Object.ID != 1 || e.Score != 10 {
			t.Errorf("caught event: %+v", e)
		}
		if s.Score() != 10 {
			t.Errorf("Score: got %d, want 10", s.Score())
		}
		if s.IsGameOver() {
			t.Fatal("catching the target must not end the session")
		}
		if len(s.Objects()) != 2 {
			t.Errorf("caught object should be removed, %d left", len(s.Objects()))
		}

		// 其余非目标图形落地无害，本批结束后进入下一批等待
		for i := 0; i < 100 && s.Phase() == PhaseFalling; i++ {
			s.Update(0.05)
		}
		if s.Phase() != PhaseSpawning {
			t.Errorf("Phase: got %v, want spawning", s.Phase())
		}
		if s.BatchesCompleted() != 1 {
			t.Errorf("BatchesCompleted: got %d, want 1", s.BatchesCompleted())
		}
	})

	t.Run("接到错误图形立即结束", func(t *testing.T) {
		s := newTestSession(t, nil)
		setBatch(s, CategoryCircle, objects...)
		s.SetPlayerLane(1)

		events := s.Update(0.4)

		if _, ok := findEvent(events, EventWrongCatch); !ok {
			t.Fatalf("expected wrong catch event, got %+v", events)
		}
		over, ok := findEvent(events, EventGameOver)
		if !ok {
			t.Fatal("expected game over event")
		}
		if over.Result.Reason != ReasonWrongCatch {
			t.Errorf("Reason: got %v, want wrong_catch", over.Result.Reason)
		}
		if s.Score() != 0 || over.Result.FinalScore != 0 {
			t.Errorf("score should stay 0, got %d", s.Score())
		}
		if !s.IsGameOver() {
			t.Error("session should be over")
		}
	})
}

func TestWrongCatchForgivenWhenNotFatal(t *testing.T) {
	cfg := config.DefaultReactionConfig()
	cfg.WrongCatchIsFatal = false
	s := NewSession(cfg, rand.New(rand.NewSource(1)), nil)

	setBatch(s, CategoryCircle,
		FallingObject{ID: 1, Category: CategoryCircle, Lane: 0, Progress: 0.1, IsTarget: true},
		FallingObject{ID: 2, Category: CategoryStar, Lane: 1, Progress: 0.75},
	)

	events := s.Update(0.4)
	if _, ok := findEvent(events, EventWrongCatch); !ok {
		t.Fatalf("expected wrong catch event, got %+v", events)
	}
	if s.IsGameOver() {
		t.Error("wrong catch should be forgiven when wrongCatchIsFatal=false")
	}
	if s.Score() != 0 {
		t.Errorf("wrong catch must not score, got %d", s.Score())
	}
}

func TestMissRules(t *testing.T) {
	t.Run("非目标落地无害", func(t *testing.T) {
		s := newTestSession(t, nil)
		s.SetPlayerLane(2)
		setBatch(s, CategoryCircle,
			FallingObject{ID: 1, Category: CategoryCircle, Lane: 2, Progress: 0.1, IsTarget: true},
			FallingObject{ID: 2, Category: CategorySquare, Lane: 0, Progress: 0.97},
		)

		events := s.Update(0.2)
		e, ok := findEvent(events, EventMissed)
		if !ok || e.Object.ID != 2 {
			t.Fatalf("expected harmless miss of object 2, got %+v", events)
		}
		if s.IsGameOver() {
			t.Error("missing a non-target must not end the session")
		}
	})

	t.Run("目标落地结束", func(t *testing.T) {
		s := newTestSession(t, nil)
		s.SetPlayerLane(2)
		setBatch(s, CategoryCircle,
			FallingObject{ID: 1, Category: CategoryCircle, Lane: 0, Progress: 0.97, IsTarget: true},
		)

		events := s.Update(0.2)
		if _, ok := findEvent(events, EventTargetMissed); !ok {
			t.Fatalf("expected target missed event, got %+v", events)
		}
		result, ok := s.Result()
		if !ok {
			t.Fatal("session should be over")
		}
		if result.Reason != ReasonTargetMissed {
			t.Errorf("Reason: got %v, want target_missed", result.Reason)
		}
	})
}

func TestResolveOnlyOnce(t *testing.T) {
	s := newTestSession(t, nil) // 玩家在中间车道 1
	setBatch(s, CategoryStar,
		FallingObject{ID: 7, Category: CategoryStar, Lane: 1, Progress: 0.9, IsTarget: true},
		FallingObject{ID: 8, Category: CategorySquare, Lane: 0, Progress: 0.5},
	)

	outcome, ok := s.ResolveInterception(7)
	if !ok || outcome != OutcomeScored {
		t.Fatalf("first resolution: got (%v, %v), want (scored, true)", outcome, ok)
	}
	if _, ok := s.ResolveInterception(7); ok {
		t.Error("an object must resolve only once")
	}
	if _, ok := s.ResolveMiss(7); ok {
		t.Error("a caught object cannot be missed afterwards")
	}

	// 未到底部的物体不能按落地结算，不在玩家车道的物体不能被拦截
	if _, ok := s.ResolveMiss(8); ok {
		t.Error("object at progress 0.5 has not reached the bottom")
	}
	if _, ok := s.ResolveInterception(8); ok {
		t.Error("object outside the player's lane cannot be intercepted")
	}

	s.active[0].Progress = 1.0
	outcome, ok = s.ResolveMiss(8)
	if !ok || outcome != OutcomeHarmlessMiss {
		t.Fatalf("miss resolution: got (%v, %v), want (harmless_miss, true)", outcome, ok)
	}
	if s.BatchesCompleted() != 1 {
		t.Errorf("batch should be complete, BatchesCompleted=%d", s.BatchesCompleted())
	}
	if s.Score() != 10 {
		t.Errorf("Score: got %d, want 10", s.Score())
	}
}

func TestScoreIncrementsByFixedPoints(t *testing.T) {
	s := newTestSession(t, nil)

	last := 0
	for batch := 0; batch < 12; batch++ {
		for _, e := range playCleanBatch(t, s) {
			if e.Type != EventCaught {
				continue
			}
			if e.Score != last+10 {
				t.Fatalf("score went from %d to %d, want +10", last, e.Score)
			}
			last = e.Score
		}
	}
	if s.Score() != 120 {
		t.Errorf("Score after 12 clean batches: got %d, want 120", s.Score())
	}
}

func TestSpeedUpRamp(t *testing.T) {
	cfg := config.DefaultReactionConfig()
	cfg.SpeedUpEveryBatches = 2
	cfg.InitialFallDuration = 2.0
	cfg.MinFallDuration = 1.5
	cfg.SpeedUpFactor = 0.8
	s := NewSession(cfg, rand.New(rand.NewSource(7)), nil)

	previous := s.FallDuration()
	speedUps := 0
	for batch := 1; batch <= 10; batch++ {
		events := playCleanBatch(t, s)
		current := s.FallDuration()

		if current < cfg.MinFallDuration {
			t.Fatalf("fall duration %v dropped below floor %v", current, cfg.MinFallDuration)
		}

		_, sawSpeedUp := findEvent(events, EventSpeedUp)
		switch {
		case batch%2 == 0 && previous > cfg.MinFallDuration:
			if current >= previous {
				t.Fatalf("batch %d: duration should strictly decrease, %v -> %v", batch, previous, current)
			}
			if !sawSpeedUp || s.Phase() != PhaseSpeedUp {
				t.Fatalf("batch %d: expected speed-up interstitial", batch)
			}
			speedUps++
		default:
			if current != previous {
				t.Fatalf("batch %d: duration changed unexpectedly %v -> %v", batch, previous, current)
			}
			if sawSpeedUp {
				t.Fatalf("batch %d: unexpected speed-up", batch)
			}
		}
		previous = current
	}

	// 2.0 -> 1.6 -> 1.5（夹紧到下限）后不再加速
	if speedUps != 2 {
		t.Errorf("speed ups: got %d, want 2", speedUps)
	}
	if s.FallDuration() != 1.5 {
		t.Errorf("FallDuration: got %v, want floor 1.5", s.FallDuration())
	}
}

func TestSpeedUpBannerDelaysNextBatch(t *testing.T) {
	cfg := config.DefaultReactionConfig()
	cfg.SpeedUpEveryBatches = 1
	s := NewSession(cfg, rand.New(rand.NewSource(3)), nil)

	playCleanBatch(t, s)
	if s.Phase() != PhaseSpeedUp {
		t.Fatalf("Phase: got %v, want speed_up", s.Phase())
	}

	s.Update(1.4)
	if s.Phase() != PhaseSpeedUp {
		t.Fatalf("banner should still be showing after 1.4s, phase=%v", s.Phase())
	}
	events := s.Update(0.2)
	if _, ok := findEvent(events, EventBatchSpawned); !ok {
		t.Fatalf("expected next batch after banner, got %+v", events)
	}
}

func TestHighScorePersistedAcrossSessions(t *testing.T) {
	store := &MemoryHighScoreStore{Score: 30}
	s := newTestSession(t, store)

	if s.HighScore() != 30 {
		t.Fatalf("HighScore: got %d, want 30", s.HighScore())
	}

	for i := 0; i < 5; i++ {
		playCleanBatch(t, s)
	}
	if s.Score() != 50 {
		t.Fatalf("Score: got %d, want 50", s.Score())
	}

	// 站到没有掉落物的车道，让目标落地
	advanceToFalling(t, s)
	occupied := make(map[int]bool)
	for _, obj := range s.Objects() {
		occupied[obj.Lane] = true
	}
	for lane := 0; lane < 3; lane++ {
		if !occupied[lane] {
			s.SetPlayerLane(lane)
			break
		}
	}
	for i := 0; i < 10000 && !s.IsGameOver(); i++ {
		s.Update(0.05)
	}

	result, ok := s.Result()
	if !ok {
		t.Fatal("session should be over")
	}
	if !result.IsNewHighScore || result.FinalScore != 50 || result.PreviousHighScore != 30 {
		t.Errorf("unexpected result: %+v", result)
	}
	if store.Score != 50 || store.Writes != 1 {
		t.Errorf("store: got score=%d writes=%d, want 50/1", store.Score, store.Writes)
	}

	next := newTestSession(t, store)
	if next.HighScore() != 50 {
		t.Errorf("next session HighScore: got %d, want 50", next.HighScore())
	}
}

func TestLowerScoreDoesNotOverwriteHighScore(t *testing.T) {
	store := &MemoryHighScoreStore{Score: 100}
	s := newTestSession(t, store)
	setBatch(s, CategoryCircle,
		FallingObject{ID: 1, Category: CategoryCircle, Lane: 0, Progress: 0.99, IsTarget: true},
	)

	s.Update(0.1)

	result, ok := s.Result()
	if !ok {
		t.Fatal("session should be over")
	}
	if result.IsNewHighScore {
		t.Error("0 is not a new high score")
	}
	if store.Writes != 0 {
		t.Errorf("store should not be written, writes=%d", store.Writes)
	}
}

func TestRestartResetsState(t *testing.T) {
	s := newTestSession(t, nil)
	for i := 0; i < 3; i++ {
		playCleanBatch(t, s)
	}
	advanceToFalling(t, s)
	s.Update(0.1)

	s.Restart()

	snap := s.Snapshot()
	if snap.Phase != PhaseCountdown || snap.Score != 0 || snap.BatchesCompleted != 0 {
		t.Errorf("unexpected snapshot after restart: %+v", snap)
	}
	if len(snap.Objects) != 0 {
		t.Errorf("in-flight objects should be cleared, got %d", len(snap.Objects))
	}
	if snap.FallDuration != 4.0 {
		t.Errorf("FallDuration: got %v, want 4.0", snap.FallDuration)
	}
	if events := s.DrainEvents(); events != nil {
		t.Errorf("pending events should be discarded, got %+v", events)
	}
}

func TestPlayerLaneClampedAndFrozenAfterGameOver(t *testing.T) {
	s := newTestSession(t, nil)

	s.MoveLeft()
	s.MoveLeft()
	if s.PlayerLane() != 0 {
		t.Errorf("PlayerLane: got %d, want 0", s.PlayerLane())
	}
	s.SetPlayerLane(9)
	if s.PlayerLane() != 2 {
		t.Errorf("PlayerLane: got %d, want 2", s.PlayerLane())
	}

	setBatch(s, CategoryCircle,
		FallingObject{ID: 1, Category: CategoryCircle, Lane: 0, Progress: 0.99, IsTarget: true},
	)
	s.Update(0.1)
	if !s.IsGameOver() {
		t.Fatal("session should be over")
	}

	s.MoveLeft()
	if s.PlayerLane() != 2 {
		t.Errorf("input after game over should be ignored, lane=%d", s.PlayerLane())
	}
	if events := s.Update(1.0); events != nil {
		t.Errorf("Update after game over should be a no-op, got %+v", events)
	}
}

func BenchmarkSessionUpdate(b *testing.B) {
	s := NewSession(config.DefaultReactionConfig(), rand.New(rand.NewSource(1)), nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if s.IsGameOver() {
			s.Restart()
		}
		if target, ok := s.Target(); ok {
			for _, obj := range s.active {
				if obj.Category == target {
					s.SetPlayerLane(obj.Lane)
				}
			}
		}
		s.Update(1.0 / 60.0)
	}
}

func TestFallingStepDoesNotCarryIntoNextBatch(t *testing.T) {
	s := newTestSession(t, nil)
	setBatch(s, CategoryCircle, FallingObject{ID: 1, Category: CategoryCircle, Lane: 1, Progress: 0.9, IsTarget: true})

	events := s.Update(10)

	if _, ok := findEvent(events, EventBatchCleared); !ok {
		t.Fatalf("expected batch cleared, got %+v", events)
	}
	if _, ok := findEvent(events, EventBatchSpawned); ok {
		t.Error("next batch must not spawn within the same falling step")
	}
	if s.Phase() != PhaseSpawning {
		t.Fatalf("Phase: got %v, want spawning", s.Phase())
	}
	if want := s.Config().BatchDelay; s.phaseTimer != want {
		t.Errorf("batch delay: got %.3f, want %.3f", s.phaseTimer, want)
	}
}
