// simulate_reaction 无界面运行 "Hứng hình" 反应游戏，用于调整配置数值
//
// 自动玩家在每批生成时决定是否走向目标车道（按 -mistake 概率故意走错），
// 逐批打印掉落时长、目标和结算结果，最后输出整局结果。
//
// 用法：
//
//	go run ./cmd/simulate_reaction -seed 42 -mistake 0.05 -batches 100
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/decker502/toanvui/pkg/config"
	"github.com/decker502/toanvui/pkg/game"
	"github.com/decker502/toanvui/pkg/reaction"
)

var (
	seed       = flag.Int64("seed", 1, "随机种子")
	maxBatches = flag.Int("batches", 200, "最多模拟的批数（未结束时停止）")
	mistake    = flag.Float64("mistake", 0.05, "自动玩家每批走错车道的概率（0 ~ 1）")
	step       = flag.Float64("dt", 1.0/60.0, "每次推进的时长（秒）")
	configPath = flag.String("config", "", "游戏配置文件（为空时使用默认配置）")
	persist    = flag.Bool("persist", false, "读写 gdata 中保存的最高分")
	verbose    = flag.Bool("verbose", false, "显示引擎日志")
)

// options 一次模拟的参数
type options struct {
	Seed       int64
	MaxBatches int
	Mistake    float64
	Step       float64
	Out        io.Writer // 逐批日志，nil 时不输出
}

// summary 模拟结果
type summary struct {
	Result      reaction.Result
	Finished    bool // 是否以 GameOver 结束
	Batches     int
	Caught      int
	SpeedUps    int
	FinalFall   float64
	SimulatedAt float64 // 模拟经过的游戏时间（秒）
}

// autoPlayer 每批开始时选定要去的车道
type autoPlayer struct {
	rng     *rand.Rand
	mistake float64
	lane    int
}

// plan 根据新一批的掉落物选择车道
func (p *autoPlayer) plan(objects []reaction.FallingObject, lanes int) {
	target := -1
	for _, obj := range objects {
		if obj.IsTarget {
			target = obj.Lane
		}
	}
	if target < 0 {
		return
	}

	p.lane = target
	if lanes > 1 && p.rng.Float64() < p.mistake {
		p.lane = (target + 1 + p.rng.Intn(lanes-1)) % lanes
	}
}

// simulate 运行一局直到结束或达到批数上限
func simulate(cfg *config.ReactionGameConfig, store reaction.HighScoreStore, opts options) summary {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	if opts.Step <= 0 {
		opts.Step = 1.0 / 60.0
	}

	session := reaction.NewSession(cfg, rand.New(rand.NewSource(opts.Seed)), store)
	player := &autoPlayer{rng: rand.New(rand.NewSource(opts.Seed + 1)), mistake: opts.Mistake, lane: session.PlayerLane()}

	var sum summary
	// 每批最多 fall + delay + banner，再留一些余量
	maxTicks := int(float64(opts.MaxBatches+cfg.CountdownSeconds+1) * (cfg.InitialFallDuration + cfg.BatchDelay + cfg.SpeedUpBannerDuration + 1) / opts.Step)

	for tick := 0; tick < maxTicks && !session.IsGameOver() && sum.Batches < opts.MaxBatches; tick++ {
		session.SetPlayerLane(player.lane)
		for _, e := range session.Update(opts.Step) {
			switch e.Type {
			case reaction.EventBatchSpawned:
				player.plan(session.Objects(), cfg.Lanes)
				fmt.Fprintf(out, "batch %3d  fall=%.2fs  target=%-8s objects=%d  lane→%d\n",
					e.BatchIndex, session.FallDuration(), e.Target, len(session.Objects()), player.lane)
			case reaction.EventCaught:
				sum.Caught++
			case reaction.EventBatchCleared:
				sum.Batches++
			case reaction.EventSpeedUp:
				sum.SpeedUps++
				fmt.Fprintf(out, "           speed up → %.2fs\n", e.FallDuration)
			case reaction.EventWrongCatch, reaction.EventTargetMissed:
				fmt.Fprintf(out, "           %s (%s in lane %d)\n", e.Type, e.Object.Category, e.Object.Lane)
			}
		}
		sum.SimulatedAt += opts.Step
	}

	sum.Result, sum.Finished = session.Result()
	if !sum.Finished {
		sum.Result = reaction.Result{
			FinalScore:        session.Score(),
			PreviousHighScore: session.HighScore(),
			BatchesCompleted:  session.BatchesCompleted(),
		}
	}
	sum.FinalFall = session.FallDuration()
	return sum
}

func loadConfig(path string) (*config.ReactionGameConfig, error) {
	if path == "" {
		return config.DefaultReactionConfig(), nil
	}
	return config.LoadReactionConfig(path)
}

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if *mistake < 0 || *mistake > 1 {
		fmt.Fprintf(os.Stderr, "-mistake must be within [0, 1], got %v\n", *mistake)
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var store reaction.HighScoreStore
	if *persist {
		store = game.GetGameState().GetHighScoreManager()
	}

	sum := simulate(cfg, store, options{
		Seed:       *seed,
		MaxBatches: *maxBatches,
		Mistake:    *mistake,
		Step:       *step,
		Out:        os.Stdout,
	})

	fmt.Println()
	if sum.Finished {
		fmt.Printf("Game over: %s\n", sum.Result.Reason)
	} else {
		fmt.Printf("Stopped after %d batches (still running)\n", sum.Batches)
	}
	fmt.Printf("Score: %d (previous high %d, new record: %v)\n",
		sum.Result.FinalScore, sum.Result.PreviousHighScore, sum.Result.IsNewHighScore)
	fmt.Printf("Batches: %d, caught: %d, speed-ups: %d, final fall: %.2fs, game time: %.1fs\n",
		sum.Batches, sum.Caught, sum.SpeedUps, sum.FinalFall, sum.SimulatedAt)
}
