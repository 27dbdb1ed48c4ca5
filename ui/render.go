package ui

import "irispredict/ml"

type MessageKind string

const (
	Success MessageKind = "success"
	Info    MessageKind = "info"
	Warning MessageKind = "warning"
	Error   MessageKind = "error"
)

type Message struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

// Bar is one entry of the probability chart, in percent.
type Bar struct {
	Class string  `json:"class"`
	Value float64 `json:"value"`
}

type SliderView struct {
	Field string  `json:"field"`
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
	Value float64 `json:"value"`
}

// Prediction is the outcome of one triggered inference.
type Prediction struct {
	Index         int       `json:"index"`
	Class         string    `json:"class"`
	Confidence    float64   `json:"confidence"`
	Probabilities []float64 `json:"probabilities"`
}

// Render describes everything the page shows after one interaction.
type Render struct {
	Locale        string           `json:"locale"`
	Title         string           `json:"title"`
	Icon          string           `json:"icon"`
	Subtitle      string           `json:"subtitle"`
	SidebarHeader string           `json:"sidebar_header"`
	Sliders       []SliderView     `json:"sliders"`
	Footer        string           `json:"footer"`
	Notices       []Message        `json:"notices,omitempty"`
	RecordHeading string           `json:"record_heading"`
	Columns       []string         `json:"columns"`
	Record        ml.FeatureRecord `json:"record"`
	ActionLabel   string           `json:"action_label"`
	Messages      []Message        `json:"messages,omitempty"`
	ChartHeading  string           `json:"chart_heading,omitempty"`
	ClassColumn   string           `json:"class_column,omitempty"`
	ValueColumn   string           `json:"value_column,omitempty"`
	Chart         []Bar            `json:"chart,omitempty"`
	Prediction    *Prediction      `json:"prediction,omitempty"`
}

// Row returns the record values in column order.
func (r Render) Row() []float64 {
	return ml.FeatureVector(r.Record)
}
