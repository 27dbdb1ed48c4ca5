package ui

import (
	"fmt"
	"math"

	"irispredict/ml"
)

// Slider describes one bounded numeric input.
type Slider struct {
	Field   string
	Label   string
	Min     float64
	Max     float64
	Default float64
	Step    float64
}

var sliders = []Slider{
	{Field: "sepal_length", Label: "Sepal length (cm)", Min: 4.0, Max: 8.0, Default: 5.8, Step: 0.1},
	{Field: "sepal_width", Label: "Sepal width (cm)", Min: 2.0, Max: 4.5, Default: 3.0, Step: 0.1},
	{Field: "petal_length", Label: "Petal length (cm)", Min: 1.0, Max: 7.0, Default: 4.3, Step: 0.1},
	{Field: "petal_width", Label: "Petal width (cm)", Min: 0.1, Max: 2.5, Default: 1.3, Step: 0.1},
}

// Sliders returns the input controls in feature order.
func Sliders() []Slider {
	return append([]Slider(nil), sliders...)
}

func (s Slider) clamp(value float64) float64 {
	steps := math.Round((value - s.Min) / s.Step)
	value = s.Min + steps*s.Step
	// drop float noise from the step multiplication
	value = math.Round(value*1e6) / 1e6
	return math.Max(s.Min, math.Min(s.Max, value))
}

// Controls holds the current slider values. The zero value is not usable;
// start from NewControls.
type Controls struct {
	values [4]float64
}

func NewControls() *Controls {
	c := &Controls{}
	for i, s := range sliders {
		c.values[i] = s.Default
	}
	return c
}

// ControlsFromValues starts from the defaults and applies every known field
// in values. Unknown fields are ignored.
func ControlsFromValues(values map[string]float64) *Controls {
	c := NewControls()
	for field, value := range values {
		_ = c.Set(field, value)
	}
	return c
}

// Set snaps value to the slider's step and clamps it into range.
func (c *Controls) Set(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("invalid value for %s", field)
	}
	for i, s := range sliders {
		if s.Field == field {
			c.values[i] = s.clamp(value)
			return nil
		}
	}
	return fmt.Errorf("unknown field %q", field)
}

func (c *Controls) Value(field string) (float64, bool) {
	for i, s := range sliders {
		if s.Field == field {
			return c.values[i], true
		}
	}
	return 0, false
}

// Record assembles the current values into a feature record.
func (c *Controls) Record() ml.FeatureRecord {
	record, _ := ml.RecordFromVector(c.values[:])
	return record
}
