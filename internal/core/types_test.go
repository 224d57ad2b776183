package core

import "testing"

func TestZoomLevelsStep(t *testing.T) {
	z := DefaultZoomLevels
	tests := []struct {
		cur, next, prev float64
	}{
		{1, 1.5, 1},
		{1.5, 2, 1},
		{2.5, 3, 2},
		{4, 4, 3.5},
		{1.7, 2, 1.5},
	}

	for _, tt := range tests {
		if got := z.Next(tt.cur); got != tt.next {
			t.Errorf("Next(%v) = %v, want %v", tt.cur, got, tt.next)
		}
		if got := z.Prev(tt.cur); got != tt.prev {
			t.Errorf("Prev(%v) = %v, want %v", tt.cur, got, tt.prev)
		}
	}
}

func TestZoomLevelsNearest(t *testing.T) {
	z := DefaultZoomLevels
	tests := []struct {
		in, want float64
	}{
		{1.5, 1.5},
		{1.4, 1.5},
		{1.2, 1},
		{1.25, 1.5}, // tie goes up
		{3.74, 3.5},
		{3.75, 4},
		{0.2, 1},
		{9, 4},
	}

	for _, tt := range tests {
		if got := z.Nearest(tt.in); got != tt.want {
			t.Errorf("Nearest(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestZoomLevelsClampContains(t *testing.T) {
	z := DefaultZoomLevels
	if got := z.Clamp(0.5); got != 1 {
		t.Errorf("Clamp(0.5) = %v, want 1", got)
	}
	if got := z.Clamp(10); got != 4 {
		t.Errorf("Clamp(10) = %v, want 4", got)
	}
	if !z.Contains(2.5) || z.Contains(2.25) {
		t.Errorf("Contains mismatch for 2.5 / 2.25")
	}
}

func TestZoomLevelsValidate(t *testing.T) {
	tests := []struct {
		levels  ZoomLevels
		wantErr bool
	}{
		{DefaultZoomLevels, false},
		{ZoomLevels{2}, false},
		{ZoomLevels{}, true},
		{ZoomLevels{1, 1}, true},
		{ZoomLevels{2, 1}, true},
		{ZoomLevels{0, 1}, true},
	}

	for _, tt := range tests {
		err := tt.levels.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.levels, err, tt.wantErr)
		}
	}
}

func TestRectWithin(t *testing.T) {
	tests := []struct {
		r    Rect
		want bool
	}{
		{Rect{0, 0, 959, 593}, true},
		{Rect{479.5, 296.5, 479.5, 296.5}, true},
		{Rect{480, 0, 479.5, 296.5}, false},
		{Rect{-1, 0, 10, 10}, false},
	}

	for _, tt := range tests {
		if got := tt.r.Within(MapSpace); got != tt.want {
			t.Errorf("%+v.Within(MapSpace) = %v, want %v", tt.r, got, tt.want)
		}
	}
}
