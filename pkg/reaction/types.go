// Package reaction 实现 "Hứng hình"（接图形）反应游戏的规则引擎
//
// 引擎不依赖渲染和输入框架：场景每帧调用 Session.Update(dt)，
// 读取 Snapshot() 绘制画面，并消费返回的事件播放音效、生成特效。
//
// 状态流转：
//
//	Countdown(3→0) → Spawning → Falling → Spawning → ... → GameOver
//	                              ↓ 每 N 批
//	                           SpeedUp → Spawning
package reaction

import "fmt"

// Category 图形种类，如 "circle"
type Category string

// 内置图形种类（配置文件可以只启用其中一部分）
const (
	CategoryCircle   Category = "circle"
	CategorySquare   Category = "square"
	CategoryTriangle Category = "triangle"
	CategoryStar     Category = "star"
)

// ObjectID 掉落物的唯一标识，同一局内递增，从 1 开始
type ObjectID uint64

// FallingObject 掉落物
type FallingObject struct {
	ID       ObjectID
	Category Category
	Lane     int     // 车道（0 ~ lanes-1）
	Progress float64 // 掉落进度：0 = 顶部，1 = 到达底部边界
	IsTarget bool    // 是否为本批目标图形
}

// Phase 会话阶段
type Phase int

const (
	PhaseCountdown Phase = iota // 开局倒计时
	PhaseSpawning               // 等待生成下一批
	PhaseFalling                // 本批正在掉落
	PhaseSpeedUp                // 加速提示
	PhaseGameOver               // 结束（终态）
)

func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhaseSpawning:
		return "spawning"
	case PhaseFalling:
		return "falling"
	case PhaseSpeedUp:
		return "speed_up"
	case PhaseGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Outcome 单个掉落物的结算结果
type Outcome int

const (
	OutcomeScored       Outcome = iota // 接到目标图形
	OutcomeWrongCatch                  // 接到非目标图形
	OutcomeHarmlessMiss                // 非目标图形落地
	OutcomeTargetMissed                // 目标图形落地
)

func (o Outcome) String() string {
	switch o {
	case OutcomeScored:
		return "scored"
	case OutcomeWrongCatch:
		return "wrong_catch"
	case OutcomeHarmlessMiss:
		return "harmless_miss"
	case OutcomeTargetMissed:
		return "target_missed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// GameOverReason 结束原因
type GameOverReason int

const (
	ReasonNone GameOverReason = iota
	ReasonWrongCatch
	ReasonTargetMissed
)

func (r GameOverReason) String() string {
	switch r {
	case ReasonWrongCatch:
		return "wrong_catch"
	case ReasonTargetMissed:
		return "target_missed"
	default:
		return "none"
	}
}

// Result 一局结束后交给场景展示的结果
type Result struct {
	FinalScore        int
	PreviousHighScore int
	IsNewHighScore    bool
	BatchesCompleted  int
	Reason            GameOverReason
}

// Snapshot 某一时刻的只读会话状态，供渲染使用
type Snapshot struct {
	Phase            Phase
	Score            int
	HighScore        int
	Target           Category
	HasTarget        bool
	Objects          []FallingObject
	PlayerLane       int
	Lanes            int
	Countdown        int
	PhaseRemaining   float64 // 当前计时阶段剩余时间（秒）
	FallDuration     float64
	BatchesCompleted int
	BatchIndex       int
}
