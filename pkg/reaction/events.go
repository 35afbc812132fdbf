package reaction

// EventType 会话事件类型
type EventType int

const (
	EventCountdownTick EventType = iota // 倒计时数字变化（Countdown 为新数字，0 表示开始）
	EventBatchSpawned                   // 新一批掉落物生成
	EventCaught                         // 接到目标图形，Score 为新分数
	EventWrongCatch                     // 接到非目标图形
	EventMissed                         // 非目标图形落地（无害）
	EventTargetMissed                   // 目标图形落地
	EventBatchCleared                   // 本批全部结算完毕
	EventSpeedUp                        // 进入加速提示，FallDuration 为新时长
	EventGameOver                       // 会话结束，Result 有效
)

func (t EventType) String() string {
	switch t {
	case EventCountdownTick:
		return "countdown_tick"
	case EventBatchSpawned:
		return "batch_spawned"
	case EventCaught:
		return "caught"
	case EventWrongCatch:
		return "wrong_catch"
	case EventMissed:
		return "missed"
	case EventTargetMissed:
		return "target_missed"
	case EventBatchCleared:
		return "batch_cleared"
	case EventSpeedUp:
		return "speed_up"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event 会话事件
// 字段按事件类型选择性填写，未使用的字段为零值
type Event struct {
	Type         EventType
	Object       FallingObject
	BatchIndex   int
	Target       Category
	Score        int
	Countdown    int
	FallDuration float64
	Result       Result
}
