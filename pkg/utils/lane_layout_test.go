package utils

import "testing"

func TestLaneLayout(t *testing.T) {
	l := LaneLayout{X: 30, Y: 150, Width: 420, Height: 540, Lanes: 3}

	if l.LaneWidth() != 140 {
		t.Errorf("LaneWidth: got %v, want 140", l.LaneWidth())
	}

	centers := []float64{100, 240, 380}
	for lane, want := range centers {
		if got := l.LaneCenterX(lane); got != want {
			t.Errorf("LaneCenterX(%d): got %v, want %v", lane, got, want)
		}
	}

	if got := l.ProgressY(0); got != 150 {
		t.Errorf("ProgressY(0): got %v", got)
	}
	if got := l.ProgressY(1); got != 690 {
		t.Errorf("ProgressY(1): got %v", got)
	}
}

func TestLaneAt(t *testing.T) {
	l := LaneLayout{X: 30, Y: 150, Width: 420, Height: 540, Lanes: 3}

	tests := []struct {
		name   string
		x      float64
		lane   int
		inside bool
	}{
		{"左边界", 30, 0, true},
		{"第一条车道", 100, 0, true},
		{"第二条车道起点", 170, 1, true},
		{"第三条车道", 449.9, 2, true},
		{"右边界外", 450, 0, false},
		{"左边界外", 29, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lane, ok := l.LaneAt(tt.x)
			if ok != tt.inside || (ok && lane != tt.lane) {
				t.Errorf("LaneAt(%v) = (%d, %v), 期望 (%d, %v)", tt.x, lane, ok, tt.lane, tt.inside)
			}
		})
	}
}

func TestLaneLayoutZeroLanes(t *testing.T) {
	l := LaneLayout{X: 0, Y: 0, Width: 100, Height: 100}
	if l.LaneWidth() != 0 {
		t.Error("zero lanes should have zero width")
	}
	if _, ok := l.LaneAt(50); ok {
		t.Error("zero lanes should not report a lane")
	}
	if !l.Contains(50, 50) || l.Contains(100, 50) {
		t.Error("Contains boundary mismatch")
	}
}
