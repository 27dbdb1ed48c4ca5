package ui

import (
	"math"
	"math/rand"
	"testing"
)

func TestNewControlsDefaults(t *testing.T) {
	record := NewControls().Record()
	if record.SepalLength != 5.8 || record.SepalWidth != 3.0 || record.PetalLength != 4.3 || record.PetalWidth != 1.3 {
		t.Fatalf("unexpected defaults: %+v", record)
	}
}

func TestControlsStayWithinBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	controls := NewControls()
	for i := 0; i < 1000; i++ {
		for _, s := range Sliders() {
			if err := controls.Set(s.Field, rnd.NormFloat64()*20); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			value, _ := controls.Value(s.Field)
			if value < s.Min || value > s.Max {
				t.Fatalf("%s out of range: %f", s.Field, value)
			}
		}
	}
}

func TestControlsSnapToStep(t *testing.T) {
	controls := NewControls()
	if err := controls.Set("petal_width", 0.1234); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value, _ := controls.Value("petal_width"); value != 0.1 {
		t.Fatalf("expected 0.1, got %v", value)
	}
	if err := controls.Set("sepal_length", 6.27); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value, _ := controls.Value("sepal_length"); math.Abs(value-6.3) > 1e-9 {
		t.Fatalf("expected 6.3, got %v", value)
	}
}

func TestControlsRejectInvalidInput(t *testing.T) {
	controls := NewControls()
	if err := controls.Set("stem_length", 1); err == nil {
		t.Fatal("expected error for unknown field")
	}
	if err := controls.Set("sepal_width", math.NaN()); err == nil {
		t.Fatal("expected error for NaN")
	}
	if value, _ := controls.Value("sepal_width"); value != 3.0 {
		t.Fatalf("rejected input should not change the value, got %v", value)
	}
}

func TestControlsFromValues(t *testing.T) {
	controls := ControlsFromValues(map[string]float64{"petal_length": 100, "unknown": 3})
	record := controls.Record()
	if record.PetalLength != 7.0 {
		t.Fatalf("expected clamped 7.0, got %v", record.PetalLength)
	}
	if record.SepalLength != 5.8 {
		t.Fatalf("expected default sepal length, got %v", record.SepalLength)
	}
}
