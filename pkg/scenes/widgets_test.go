package scenes

import "testing"

func TestButtonContains(t *testing.T) {
	b := NewCenteredButton("Chơi lại", 240, 500, 200, 60)

	if b.X != 140 {
		t.Fatalf("X: got %v, want 140", b.X)
	}

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"中心", 240, 530, true},
		{"左上角", 140, 500, true},
		{"右边界外", 340, 530, false},
		{"下边界外", 240, 560, false},
		{"上方", 240, 499, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, 期望 %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
