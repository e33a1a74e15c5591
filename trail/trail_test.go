package trail

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const frameDt = 1.0 / 60.0

func testConfig(capacity int) Config {
	cfg := DefaultConfig()
	cfg.Capacity = capacity
	return cfg
}

// TestOverflowKeepsCapacity inserts more samples than slots
func TestOverflowKeepsCapacity(t *testing.T) {
	b := NewBuffer(testConfig(60))

	for i := 0; i < 250; i++ {
		x := float64(i%17) / 17
		idx := b.Insert(x, 0.5)

		if got := b.At(idx); got.Age != 0 || got.X != x || !got.Active {
			t.Fatalf("Insert %d: expected fresh point at slot %d, got %+v", i, idx, got)
		}
		b.Advance(frameDt)
	}

	if b.Len() != 60 {
		t.Fatalf("Expected 60 points, got %d", b.Len())
	}
	for i, p := range b.Points() {
		if math.IsInf(p.Age, 0) || math.IsNaN(p.Age) {
			t.Errorf("Point %d has non-finite age %v", i, p.Age)
		}
		if !p.Active {
			t.Errorf("Point %d should be active after overflow", i)
		}
	}
}

// TestTieBreakLowestIndex verifies equal ages resolve to the lowest slot
func TestTieBreakLowestIndex(t *testing.T) {
	b := NewBuffer(testConfig(4))

	// All slots share the initial age
	if idx := b.Oldest(); idx != 0 {
		t.Fatalf("Expected slot 0 among equal initial ages, got %d", idx)
	}

	b.points[0].Age = 0.2
	b.points[1].Age = 0.7
	b.points[2].Age = 0.1
	b.points[3].Age = 0.7

	if idx := b.Oldest(); idx != 1 {
		t.Errorf("Expected slot 1 for tie between 1 and 3, got %d", idx)
	}
	if idx := b.Insert(0.3, 0.3); idx != 1 {
		t.Errorf("Expected insert into slot 1, got %d", idx)
	}
	if idx := b.Oldest(); idx != 3 {
		t.Errorf("Expected slot 3 after replacing slot 1, got %d", idx)
	}
}

// TestFillOrder verifies initial fill walks slots in order and then recycles in insertion order
func TestFillOrder(t *testing.T) {
	b := NewBuffer(testConfig(5))

	var order []int
	for i := 0; i < 12; i++ {
		order = append(order, b.Step(float64(i), 0, frameDt))
	}

	want := []int{0, 1, 2, 3, 4, 0, 1, 2, 3, 4, 0, 1}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("Slot order mismatch (-want +got):\n%s", diff)
	}
}

// TestAgingAppliesToAllPoints verifies inactive slots age too
func TestAgingAppliesToAllPoints(t *testing.T) {
	cfg := testConfig(3)
	cfg.AgeRate = 2
	b := NewBuffer(cfg)
	b.Insert(0.1, 0.1)

	before := b.Points()
	b.Advance(0.25)
	after := b.Points()

	for i := range before {
		if after[i].Age-before[i].Age != 0.5 {
			t.Errorf("Slot %d aged %v, want 0.5", i, after[i].Age-before[i].Age)
		}
	}
}

func TestOpacity(t *testing.T) {
	tests := []struct {
		age  float64
		want float64
	}{
		{0, 1},
		{0.25, 0.75},
		{1, 0},
		{3, 0},
		{1e9, 0},
	}
	for _, tt := range tests {
		if got := (Point{Age: tt.age}).Opacity(); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Opacity(age=%v) = %v, want %v", tt.age, got, tt.want)
		}
	}
}

// TestVisibleSnapshot verifies fully faded and never-written slots are excluded
func TestVisibleSnapshot(t *testing.T) {
	cfg := testConfig(4)
	cfg.AgeRate = 1
	b := NewBuffer(cfg)

	b.Insert(0.1, 0.2)
	b.Advance(0.5)
	b.Insert(0.3, 0.4)
	b.Advance(0.6)

	got := b.Visible(nil)
	want := []Point{{X: 0.3, Y: 0.4, Age: 0.6, Active: true}}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Visible mismatch (-want +got):\n%s", diff)
	}
	if b.ActiveCount() != 1 {
		t.Errorf("Expected 1 active point, got %d", b.ActiveCount())
	}
}

func TestFloodScale(t *testing.T) {
	cfg := testConfig(2)
	cfg.BaseRadius = 0.1
	cfg.FloodGain = 10
	b := NewBuffer(cfg)

	if got := b.UpdateScale(0.5, true); got != 6 {
		t.Errorf("Expected scale 6 while engaging, got %v", got)
	}
	if math.Abs(b.Radius()-0.6) > 1e-12 {
		t.Errorf("Expected radius 0.6, got %v", b.Radius())
	}
	if got := b.UpdateScale(0.5, false); got != 1 {
		t.Errorf("Expected scale reset to 1 on release, got %v", got)
	}
}

func TestResetAndDegenerateCapacity(t *testing.T) {
	b := NewBuffer(testConfig(0))
	if b.Len() != 1 {
		t.Fatalf("Expected capacity raised to 1, got %d", b.Len())
	}
	b.Insert(0.5, 0.5)
	b.Reset()
	if b.Last() != -1 || b.ActiveCount() != 0 {
		t.Error("Expected reset buffer to have no active points")
	}
	b.Advance(math.NaN())
	if b.At(0).Age != 1e9 {
		t.Errorf("Expected NaN dt ignored, got age %v", b.At(0).Age)
	}
}
