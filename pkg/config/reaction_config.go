package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/decker502/toanvui/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// ReactionConfigPath 内置反应游戏配置在嵌入资源中的路径
const ReactionConfigPath = "data/reaction_game.yaml"

// ReactionGameConfig "Hứng hình"（接图形）反应游戏的数值配置
//
// 所有时长单位为秒，掉落进度为归一化值（0 = 顶部，1 = 底部边界）。
type ReactionGameConfig struct {
	Lanes                 int         `yaml:"lanes"`                 // 车道数（默认 3）
	CountdownSeconds      int         `yaml:"countdownSeconds"`      // 开局倒计时（3 → 0）
	InitialFallDuration   float64     `yaml:"initialFallDuration"`   // 初始掉落时长
	MinFallDuration       float64     `yaml:"minFallDuration"`       // 掉落时长下限
	SpeedUpFactor         float64     `yaml:"speedUpFactor"`         // 每次加速的乘数（0 < f < 1）
	SpeedUpEveryBatches   int         `yaml:"speedUpEveryBatches"`   // 每完成多少批触发一次加速
	BatchDelay            float64     `yaml:"batchDelay"`            // 两批之间的等待
	SpeedUpBannerDuration float64     `yaml:"speedUpBannerDuration"` // 加速提示停留时长
	CatchThreshold        float64     `yaml:"catchThreshold"`        // 拦截线（掉落进度）
	PointsPerCatch        int         `yaml:"pointsPerCatch"`        // 每次接对得分
	WrongCatchIsFatal     bool        `yaml:"wrongCatchIsFatal"`     // 接错图形是否直接结束
	Categories            []string    `yaml:"categories"`            // 图形种类
	SpeedTiers            []SpeedTier `yaml:"speedTiers"`            // 速度档位 -> 每批数量
}

// SpeedTier 速度档位
// 当前掉落时长 >= MinFallDuration 时命中该档位（档位按 MinFallDuration 降序匹配）
type SpeedTier struct {
	MinFallDuration float64 `yaml:"minFallDuration"`
	ObjectCount     int     `yaml:"objectCount"`
}

// DefaultReactionConfig 返回内置默认配置
// 与 data/reaction_game.yaml 保持一致，嵌入资源不可用时作为兜底
func DefaultReactionConfig() *ReactionGameConfig {
	return &ReactionGameConfig{
		Lanes:                 3,
		CountdownSeconds:      3,
		InitialFallDuration:   4.0,
		MinFallDuration:       1.2,
		SpeedUpFactor:         0.85,
		SpeedUpEveryBatches:   5,
		BatchDelay:            0.3,
		SpeedUpBannerDuration: 1.5,
		CatchThreshold:        0.8,
		PointsPerCatch:        10,
		WrongCatchIsFatal:     true,
		Categories:            []string{"circle", "square", "triangle", "star"},
		SpeedTiers: []SpeedTier{
			{MinFallDuration: 3.0, ObjectCount: 1},
			{MinFallDuration: 2.0, ObjectCount: 2},
			{MinFallDuration: 0, ObjectCount: 3},
		},
	}
}

// ParseReactionConfig 解析并校验 YAML 配置
// 未出现在 YAML 中的字段保留默认值
func ParseReactionConfig(data []byte) (*ReactionGameConfig, error) {
	cfg := DefaultReactionConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse reaction game YAML: %w", err)
	}

	// 档位按下限降序排列，匹配时取第一个满足条件的档位
	sort.SliceStable(cfg.SpeedTiers, func(i, j int) bool {
		return cfg.SpeedTiers[i].MinFallDuration > cfg.SpeedTiers[j].MinFallDuration
	})

	if err := validateReactionConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid reaction game config: %w", err)
	}
	return cfg, nil
}

// LoadReactionConfig 从磁盘文件加载配置（命令行工具使用）
func LoadReactionConfig(filePath string) (*ReactionGameConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read reaction game config: %w", err)
	}
	return ParseReactionConfig(data)
}

// LoadEmbeddedReactionConfig 从嵌入资源加载配置（App 使用）
func LoadEmbeddedReactionConfig(filePath string) (*ReactionGameConfig, error) {
	data, err := embedded.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded reaction game config: %w", err)
	}
	return ParseReactionConfig(data)
}

// ObjectCountFor 返回给定掉落时长对应的每批数量
func (c *ReactionGameConfig) ObjectCountFor(fallDuration float64) int {
	for _, tier := range c.SpeedTiers {
		if fallDuration >= tier.MinFallDuration {
			return tier.ObjectCount
		}
	}
	// 比所有档位都快时使用最后（最快）的档位
	return c.SpeedTiers[len(c.SpeedTiers)-1].ObjectCount
}

// validateReactionConfig 验证配置的有效性
func validateReactionConfig(cfg *ReactionGameConfig) error {
	if cfg.Lanes < 1 {
		return fmt.Errorf("lanes must be >= 1, got %d", cfg.Lanes)
	}
	if cfg.CountdownSeconds < 0 {
		return fmt.Errorf("countdownSeconds must be >= 0, got %d", cfg.CountdownSeconds)
	}
	if cfg.InitialFallDuration <= 0 {
		return fmt.Errorf("initialFallDuration must be > 0, got %v", cfg.InitialFallDuration)
	}
	if cfg.MinFallDuration <= 0 || cfg.MinFallDuration > cfg.InitialFallDuration {
		return fmt.Errorf("minFallDuration must be in (0, initialFallDuration], got %v", cfg.MinFallDuration)
	}
	if cfg.SpeedUpFactor <= 0 || cfg.SpeedUpFactor >= 1 {
		return fmt.Errorf("speedUpFactor must be in (0, 1), got %v", cfg.SpeedUpFactor)
	}
	if cfg.SpeedUpEveryBatches < 1 {
		return fmt.Errorf("speedUpEveryBatches must be >= 1, got %d", cfg.SpeedUpEveryBatches)
	}
	if cfg.BatchDelay < 0 {
		return fmt.Errorf("batchDelay must be >= 0, got %v", cfg.BatchDelay)
	}
	if cfg.SpeedUpBannerDuration < 0 {
		return fmt.Errorf("speedUpBannerDuration must be >= 0, got %v", cfg.SpeedUpBannerDuration)
	}
	if cfg.CatchThreshold <= 0 || cfg.CatchThreshold >= 1 {
		return fmt.Errorf("catchThreshold must be in (0, 1), got %v", cfg.CatchThreshold)
	}
	if cfg.PointsPerCatch < 1 {
		return fmt.Errorf("pointsPerCatch must be >= 1, got %d", cfg.PointsPerCatch)
	}

	seen := make(map[string]bool, len(cfg.Categories))
	for _, c := range cfg.Categories {
		if c == "" {
			return fmt.Errorf("category name cannot be empty")
		}
		if seen[c] {
			return fmt.Errorf("duplicate category %q", c)
		}
		seen[c] = true
	}

	if len(cfg.SpeedTiers) == 0 {
		return fmt.Errorf("speedTiers cannot be empty")
	}
	for i, tier := range cfg.SpeedTiers {
		if tier.ObjectCount < 1 || tier.ObjectCount > 3 {
			return fmt.Errorf("speedTiers[%d].objectCount must be between 1 and 3, got %d", i, tier.ObjectCount)
		}
		// 同一批内车道互不相同、图形互不相同
		if tier.ObjectCount > cfg.Lanes {
			return fmt.Errorf("speedTiers[%d].objectCount %d exceeds lanes %d", i, tier.ObjectCount, cfg.Lanes)
		}
		if tier.ObjectCount > len(cfg.Categories) {
			return fmt.Errorf("speedTiers[%d].objectCount %d exceeds category count %d", i, tier.ObjectCount, len(cfg.Categories))
		}
	}

	return nil
}
