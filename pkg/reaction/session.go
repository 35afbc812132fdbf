package reaction

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/toanvui/pkg/config"
)

// Session 一局反应游戏的全部状态
//
// 所有状态只通过本类型的方法修改，单线程使用：
//   - Update(dt) 是唯一的时间推进入口，按阶段计时器驱动倒计时、出批、加速
//   - 掉落物在同一个 tick 内结算并从活动列表移除，每个掉落物只会结算一次
//   - Restart() 丢弃所有计时器和在途掉落物，不存在上一局的残留回调
//
// 产生的事件先放进内部队列，由 Update() 或 DrainEvents() 一并返回。
type Session struct {
	cfg        *config.ReactionGameConfig
	categories []Category
	rng        *rand.Rand
	store      HighScoreStore

	phase      Phase
	phaseTimer float64 // 当前计时阶段剩余时间
	countdown  int

	score            int
	highScore        int
	batchesCompleted int
	batchIndex       int
	fallDuration     float64
	target           Category
	hasTarget        bool
	active           []FallingObject
	playerLane       int
	nextID           ObjectID

	result  Result
	pending []Event
}

// NewSession 创建会话并进入倒计时
//
// 参数：
//   - cfg: 游戏配置，为 nil 时使用 config.DefaultReactionConfig()
//   - rng: 随机源，为 nil 时使用固定种子（便于复现）
//   - store: 最高分存储，为 nil 时只在内存中记录
func NewSession(cfg *config.ReactionGameConfig, rng *rand.Rand, store HighScoreStore) *Session {
	if cfg == nil {
		cfg = config.DefaultReactionConfig()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if store == nil {
		store = &MemoryHighScoreStore{}
	}

	categories := make([]Category, len(cfg.Categories))
	for i, c := range cfg.Categories {
		categories[i] = Category(c)
	}

	s := &Session{
		cfg:        cfg,
		categories: categories,
		rng:        rng,
		store:      store,
	}
	s.Restart()
	return s
}

// Restart 重置分数、批次计数、速度，清空在途掉落物并重新进入倒计时
// 最高分在每局开始时从存储读取一次
func (s *Session) Restart() {
	s.score = 0
	s.batchesCompleted = 0
	s.batchIndex = 0
	s.fallDuration = s.cfg.InitialFallDuration
	s.target = ""
	s.hasTarget = false
	s.active = s.active[:0]
	s.playerLane = s.cfg.Lanes / 2
	s.nextID = 1
	s.result = Result{}
	s.pending = s.pending[:0]
	s.highScore = s.store.LoadHighScore()

	s.countdown = s.cfg.CountdownSeconds
	if s.countdown > 0 {
		s.phase = PhaseCountdown
		s.phaseTimer = 1.0
	} else {
		s.phase = PhaseSpawning
		s.phaseTimer = 0
	}

	log.Printf("[ReactionSession] Restart: fallDuration=%.2fs, highScore=%d", s.fallDuration, s.highScore)
}

// Update 推进 dt 秒，返回期间产生的事件
//
// 计时阶段（倒计时、出批等待、加速提示）会把剩余时间传递给下一阶段。
// Falling 阶段每次调用只推进一步：本批在这一步内结算完毕时，
// 剩余时间被丢弃，下一批的等待从完整的 batchDelay 开始。
func (s *Session) Update(dt float64) []Event {
	for dt > 0 && s.phase != PhaseGameOver {
		switch s.phase {
		case PhaseCountdown:
			dt = s.stepCountdown(dt)
		case PhaseSpawning:
			dt = s.stepTimer(dt)
			if s.phaseTimer <= 0 {
				s.AdvanceBatch()
			}
		case PhaseSpeedUp:
			dt = s.stepTimer(dt)
			if s.phaseTimer <= 0 {
				s.enterSpawning(0)
			}
		case PhaseFalling:
			s.stepFalling(dt)
			dt = 0
		}
	}
	return s.DrainEvents()
}

// DrainEvents 取出并清空事件队列
func (s *Session) DrainEvents() []Event {
	if len(s.pending) == 0 {
		return nil
	}
	events := make([]Event, len(s.pending))
	copy(events, s.pending)
	s.pending = s.pending[:0]
	return events
}

// stepTimer 消耗阶段计时器，返回未用完的时间
func (s *Session) stepTimer(dt float64) float64 {
	if dt < s.phaseTimer {
		s.phaseTimer -= dt
		return 0
	}
	left := dt - s.phaseTimer
	s.phaseTimer = 0
	return left
}

func (s *Session) stepCountdown(dt float64) float64 {
	left := s.stepTimer(dt)
	if s.phaseTimer > 0 {
		return left
	}

	s.countdown--
	s.emit(Event{Type: EventCountdownTick, Countdown: s.countdown})
	if s.countdown <= 0 {
		s.enterSpawning(0)
	} else {
		s.phaseTimer = 1.0
	}
	return left
}

func (s *Session) enterSpawning(delay float64) {
	s.phase = PhaseSpawning
	s.phaseTimer = delay
}

// AdvanceBatch 生成下一批掉落物并进入 Falling
//
// 数量由当前速度档位决定（1~3），每个掉落物的车道和图形互不相同，
// 其中恰好一个被指定为目标。非 Spawning 阶段调用无效，返回 false。
func (s *Session) AdvanceBatch() (Batch, bool) {
	if s.phase != PhaseSpawning {
		return Batch{}, false
	}

	count := s.cfg.ObjectCountFor(s.fallDuration)
	objects := generateBatch(s.rng, s.categories, s.cfg.Lanes, count, s.nextID)
	s.nextID += ObjectID(len(objects))

	s.batchIndex++
	for _, obj := range objects {
		if obj.IsTarget {
			s.target = obj.Category
			s.hasTarget = true
		}
	}
	s.active = append(s.active[:0], objects...)
	s.phase = PhaseFalling
	s.phaseTimer = 0

	batch := Batch{
		Index:   s.batchIndex,
		Target:  s.target,
		Objects: append([]FallingObject(nil), objects...),
	}
	s.emit(Event{Type: EventBatchSpawned, BatchIndex: batch.Index, Target: batch.Target})
	return batch, true
}

// stepFalling 单一的每帧更新：推进所有掉落物，然后按索引顺序结算
func (s *Session) stepFalling(dt float64) {
	step := dt / s.fallDuration
	for i := range s.active {
		s.active[i].Progress += step
	}

	i := 0
	for i < len(s.active) && s.phase == PhaseFalling {
		obj := s.active[i]
		switch {
		case s.intercepts(obj):
			s.removeAt(i)
			s.applyCatch(obj)
		case obj.Progress >= 1:
			s.removeAt(i)
			s.applyMiss(obj)
		default:
			i++
		}
	}

	s.checkBatchComplete()
}

// intercepts 掉落物是否位于玩家车道且已越过拦截线
func (s *Session) intercepts(obj FallingObject) bool {
	return obj.Lane == s.playerLane && obj.Progress >= s.cfg.CatchThreshold
}

// ResolveInterception 立即结算一次拦截
//
// 仅当该掉落物仍在活动列表中、位于玩家车道且已越过拦截线时生效；
// 否则返回 false（包括已经结算过的掉落物）。
func (s *Session) ResolveInterception(id ObjectID) (Outcome, bool) {
	if s.phase != PhaseFalling {
		return 0, false
	}
	idx := s.indexOf(id)
	if idx < 0 || !s.intercepts(s.active[idx]) {
		return 0, false
	}

	obj := s.active[idx]
	s.removeAt(idx)
	outcome := s.applyCatch(obj)
	s.checkBatchComplete()
	return outcome, true
}

// ResolveMiss 立即结算一次落地
//
// 仅当该掉落物仍在活动列表中且已到达底部边界时生效。
func (s *Session) ResolveMiss(id ObjectID) (Outcome, bool) {
	if s.phase != PhaseFalling {
		return 0, false
	}
	idx := s.indexOf(id)
	if idx < 0 || s.active[idx].Progress < 1 {
		return 0, false
	}

	obj := s.active[idx]
	s.removeAt(idx)
	outcome := s.applyMiss(obj)
	s.checkBatchComplete()
	return outcome, true
}

func (s *Session) applyCatch(obj FallingObject) Outcome {
	if obj.Category == s.target {
		s.score += s.cfg.PointsPerCatch
		s.emit(Event{Type: EventCaught, Object: obj, Target: s.target, Score: s.score})
		return OutcomeScored
	}

	s.emit(Event{Type: EventWrongCatch, Object: obj, Target: s.target, Score: s.score})
	if s.cfg.WrongCatchIsFatal {
		s.endGame(ReasonWrongCatch)
	}
	return OutcomeWrongCatch
}

func (s *Session) applyMiss(obj FallingObject) Outcome {
	if obj.Category == s.target {
		s.emit(Event{Type: EventTargetMissed, Object: obj, Target: s.target, Score: s.score})
		s.endGame(ReasonTargetMissed)
		return OutcomeTargetMissed
	}

	s.emit(Event{Type: EventMissed, Object: obj, Target: s.target, Score: s.score})
	return OutcomeHarmlessMiss
}

// checkBatchComplete 本批全部结算后计数，并决定进入加速提示还是等待下一批
func (s *Session) checkBatchComplete() {
	if s.phase != PhaseFalling || len(s.active) > 0 {
		return
	}

	s.batchesCompleted++
	s.hasTarget = false
	s.emit(Event{Type: EventBatchCleared, BatchIndex: s.batchIndex, Score: s.score})

	if s.batchesCompleted%s.cfg.SpeedUpEveryBatches == 0 {
		next := math.Max(s.cfg.MinFallDuration, s.fallDuration*s.cfg.SpeedUpFactor)
		if next < s.fallDuration {
			s.fallDuration = next
			s.phase = PhaseSpeedUp
			s.phaseTimer = s.cfg.SpeedUpBannerDuration
			s.emit(Event{Type: EventSpeedUp, FallDuration: s.fallDuration})
			log.Printf("[ReactionSession] Speed up after %d batches: fallDuration=%.2fs",
				s.batchesCompleted, s.fallDuration)
			return
		}
	}

	s.enterSpawning(s.cfg.BatchDelay)
}

func (s *Session) endGame(reason GameOverReason) {
	previous := s.highScore
	isNew := s.score > previous
	if isNew {
		s.highScore = s.score
		s.store.SaveHighScore(s.score)
	}

	s.phase = PhaseGameOver
	s.phaseTimer = 0
	s.result = Result{
		FinalScore:        s.score,
		PreviousHighScore: previous,
		IsNewHighScore:    isNew,
		BatchesCompleted:  s.batchesCompleted,
		Reason:            reason,
	}
	s.emit(Event{Type: EventGameOver, Score: s.score, Result: s.result})

	log.Printf("[ReactionSession] Game over (%s): score=%d, highScore=%d, newRecord=%v",
		reason, s.score, s.highScore, isNew)
}

func (s *Session) emit(e Event) {
	s.pending = append(s.pending, e)
}

func (s *Session) indexOf(id ObjectID) int {
	for i := range s.active {
		if s.active[i].ID == id {
			return i
		}
	}
	return -1
}

// removeAt 按索引移除，保持其余掉落物的顺序
func (s *Session) removeAt(i int) {
	s.active = append(s.active[:i], s.active[i+1:]...)
}

// --- 玩家输入 ---

// MoveLeft 玩家左移一条车道（已在最左侧时无效）
func (s *Session) MoveLeft() {
	s.SetPlayerLane(s.playerLane - 1)
}

// MoveRight 玩家右移一条车道（已在最右侧时无效）
func (s *Session) MoveRight() {
	s.SetPlayerLane(s.playerLane + 1)
}

// SetPlayerLane 直接设置玩家车道（触屏点击车道），超出范围时夹紧
// 结束后不再接受输入
func (s *Session) SetPlayerLane(lane int) {
	if s.phase == PhaseGameOver {
		return
	}
	if lane < 0 {
		lane = 0
	}
	if lane > s.cfg.Lanes-1 {
		lane = s.cfg.Lanes - 1
	}
	s.playerLane = lane
}

// --- 查询 ---

// Phase 当前阶段
func (s *Session) Phase() Phase { return s.phase }

// Score 当前分数
func (s *Session) Score() int { return s.score }

// HighScore 最高分（本局开始时读取，破纪录后立即更新）
func (s *Session) HighScore() int { return s.highScore }

// IsGameOver 是否已结束
func (s *Session) IsGameOver() bool { return s.phase == PhaseGameOver }

// Result 返回结束结果，未结束时第二个返回值为 false
func (s *Session) Result() (Result, bool) {
	return s.result, s.phase == PhaseGameOver
}

// FallDuration 当前掉落时长（秒）
func (s *Session) FallDuration() float64 { return s.fallDuration }

// BatchesCompleted 已完成的批数
func (s *Session) BatchesCompleted() int { return s.batchesCompleted }

// PlayerLane 玩家当前车道
func (s *Session) PlayerLane() int { return s.playerLane }

// Target 本批目标图形，没有在途批次时第二个返回值为 false
func (s *Session) Target() (Category, bool) { return s.target, s.hasTarget }

// Objects 返回活动掉落物的副本
func (s *Session) Objects() []FallingObject {
	return append([]FallingObject(nil), s.active...)
}

// Config 返回会话使用的配置
func (s *Session) Config() *config.ReactionGameConfig { return s.cfg }

// Snapshot 返回当前状态的只读副本
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Phase:            s.phase,
		Score:            s.score,
		HighScore:        s.highScore,
		Target:           s.target,
		HasTarget:        s.hasTarget,
		Objects:          s.Objects(),
		PlayerLane:       s.playerLane,
		Lanes:            s.cfg.Lanes,
		Countdown:        s.countdown,
		PhaseRemaining:   s.phaseTimer,
		FallDuration:     s.fallDuration,
		BatchesCompleted: s.batchesCompleted,
		BatchIndex:       s.batchIndex,
	}
}
