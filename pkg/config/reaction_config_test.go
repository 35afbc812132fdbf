package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/decker502/toanvui/pkg/embedded"
)

func TestDefaultReactionConfigIsValid(t *testing.T) {
	cfg := DefaultReactionConfig()
	if err := validateReactionConfig(cfg); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.Lanes != 3 {
		t.Errorf("Lanes: got %d, want 3", cfg.Lanes)
	}
	if cfg.PointsPerCatch != 10 {
		t.Errorf("PointsPerCatch: got %d, want 10", cfg.PointsPerCatch)
	}
	if !cfg.WrongCatchIsFatal {
		t.Error("WrongCatchIsFatal should default to true")
	}
}

func TestLoadReactionConfig(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("加载有效配置文件", func(t *testing.T) {
		content := `
lanes: 3
initialFallDuration: 5.0
minFallDuration: 1.0
speedUpEveryBatches: 3
categories: [circle, square, triangle]
speedTiers:
  - minFallDuration: 0
    objectCount: 3
  - minFallDuration: 4.0
    objectCount: 1
`
		path := filepath.Join(tempDir, "valid.yaml")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write test config: %v", err)
		}

		cfg, err := LoadReactionConfig(path)
		if err != nil {
			t.Fatalf("LoadReactionConfig failed: %v", err)
		}

		if cfg.InitialFallDuration != 5.0 {
			t.Errorf("InitialFallDuration: got %v, want 5.0", cfg.InitialFallDuration)
		}
		if cfg.SpeedUpEveryBatches != 3 {
			t.Errorf("SpeedUpEveryBatches: got %d, want 3", cfg.SpeedUpEveryBatches)
		}
		// 未写出的字段保留默认值
		if cfg.BatchDelay != 0.3 {
			t.Errorf("BatchDelay: got %v, want default 0.3", cfg.BatchDelay)
		}
		if len(cfg.Categories) != 3 {
			t.Errorf("Categories: got %d, want 3", len(cfg.Categories))
		}
		// 档位按下限降序排列
		if cfg.SpeedTiers[0].MinFallDuration != 4.0 {
			t.Errorf("SpeedTiers should be sorted descending, got %+v", cfg.SpeedTiers)
		}
	})

	t.Run("文件不存在", func(t *testing.T) {
		if _, err := LoadReactionConfig(filepath.Join(tempDir, "missing.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("YAML格式错误", func(t *testing.T) {
		path := filepath.Join(tempDir, "broken.yaml")
		if err := os.WriteFile(path, []byte("lanes: [oops"), 0644); err != nil {
			t.Fatalf("Failed to write test config: %v", err)
		}
		if _, err := LoadReactionConfig(path); err == nil {
			t.Error("Expected parse error")
		}
	})
}

func TestParseReactionConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"车道数为0", "lanes: 0", "lanes"},
		{"加速因子>=1", "speedUpFactor: 1.0", "speedUpFactor"},
		{"下限大于初始时长", "initialFallDuration: 1.0\nminFallDuration: 2.0", "minFallDuration"},
		{"拦截线越界", "catchThreshold: 1.5", "catchThreshold"},
		{"重复图形", "categories: [circle, circle, star]", "duplicate category"},
		{"数量超过图形种类", "categories: [circle, square]", "exceeds category count"},
		{"数量超过车道", "lanes: 2", "exceeds lanes"},
		{"档位为空", "speedTiers: []", "speedTiers cannot be empty"},
		{"得分为0", "pointsPerCatch: 0", "pointsPerCatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReactionConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestObjectCountFor(t *testing.T) {
	cfg := DefaultReactionConfig()

	tests := []struct {
		duration float64
		want     int
	}{
		{4.0, 1},
		{3.0, 1},
		{2.9, 2},
		{2.0, 2},
		{1.9, 3},
		{1.2, 3},
	}

	for _, tt := range tests {
		if got := cfg.ObjectCountFor(tt.duration); got != tt.want {
			t.Errorf("ObjectCountFor(%v) = %d, want %d", tt.duration, got, tt.want)
		}
	}
}

func TestLoadEmbeddedReactionConfig(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", ReactionConfigPath))
	if err != nil {
		t.Fatalf("Failed to read bundled config: %v", err)
	}
	embedded.Init(fstest.MapFS{ReactionConfigPath: {Data: data}})
	t.Cleanup(func() { embedded.Init(nil) })

	cfg, err := LoadEmbeddedReactionConfig(ReactionConfigPath)
	if err != nil {
		t.Fatalf("LoadEmbeddedReactionConfig failed: %v", err)
	}

	// 内置 YAML 与 DefaultReactionConfig 保持一致
	def := DefaultReactionConfig()
	if cfg.InitialFallDuration != def.InitialFallDuration ||
		cfg.MinFallDuration != def.MinFallDuration ||
		cfg.SpeedUpFactor != def.SpeedUpFactor ||
		cfg.SpeedUpEveryBatches != def.SpeedUpEveryBatches ||
		len(cfg.Categories) != len(def.Categories) ||
		len(cfg.SpeedTiers) != len(def.SpeedTiers) {
		t.Errorf("bundled config drifted from defaults: %+v", cfg)
	}
}
