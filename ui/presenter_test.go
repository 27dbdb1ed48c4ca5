package ui

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"irispredict/artifact"
)

type fakeClassifier struct {
	label    int
	probs    []float64
	err      error
	panicMsg string
	calls    int
}

func (f *fakeClassifier) Predict(features []float64) (int, error) {
	f.calls++
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.label, f.err
}

func (f *fakeClassifier) PredictProba(features []float64) ([]float64, error) {
	f.calls++
	return f.probs, f.err
}

func (f *fakeClassifier) NumClasses() int {
	return len(f.probs)
}

var irisNames = []string{"setosa", "versicolor", "virginica"}

func newTestPresenter(t *testing.T, classifier *fakeClassifier, names []string, issues ...LoadIssue) *Presenter {
	t.Helper()
	var presenter *Presenter
	var err error
	if classifier == nil {
		presenter, err = NewPresenter(nil, names, issues...)
	} else {
		presenter, err = NewPresenter(classifier, names, issues...)
	}
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return presenter
}

func TestPredictAndRenderConfidence(t *testing.T) {
	presenter := newTestPresenter(t, &fakeClassifier{label: 1, probs: []float64{0.05, 0.90, 0.05}}, irisNames)

	render := presenter.PredictAndRender(NewControls(), English)
	if len(render.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %+v", render.Messages)
	}
	if render.Messages[0].Kind != Success || render.Messages[0].Text != "Predicted species: versicolor" {
		t.Fatalf("unexpected success message: %+v", render.Messages[0])
	}
	if render.Messages[1].Kind != Info || render.Messages[1].Text != "Confidence: 90.00%" {
		t.Fatalf("unexpected info message: %+v", render.Messages[1])
	}
	if render.Prediction.Class != irisNames[1] {
		t.Fatalf("unexpected class: %s", render.Prediction.Class)
	}
}

func TestPredictAndRenderDefaultsEndToEnd(t *testing.T) {
	classifier := &fakeClassifier{label: 1, probs: []float64{0.02, 0.95, 0.03}}
	presenter := newTestPresenter(t, classifier, irisNames)

	render := presenter.PredictAndRender(NewControls(), English)
	row := render.Row()
	want := []float64{5.8, 3.0, 4.3, 1.3}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("unexpected record %v", row)
		}
	}
	if render.Prediction.Class != "versicolor" {
		t.Fatalf("unexpected class: %s", render.Prediction.Class)
	}
	if render.Messages[1].Text != "Confidence: 95.00%" {
		t.Fatalf("unexpected confidence: %s", render.Messages[1].Text)
	}

	wantChart := []float64{2.0, 95.0, 3.0}
	if len(render.Chart) != len(irisNames) {
		t.Fatalf("expected %d bars, got %d", len(irisNames), len(render.Chart))
	}
	sum := 0.0
	for i, bar := range render.Chart {
		if bar.Class != irisNames[i] {
			t.Fatalf("bar %d: expected %s, got %s", i, irisNames[i], bar.Class)
		}
		if math.Abs(bar.Value-wantChart[i]) > 1e-9 {
			t.Fatalf("bar %d: expected %f, got %f", i, wantChart[i], bar.Value)
		}
		sum += bar.Value
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("chart should sum to 100, got %f", sum)
	}
}

func TestPredictAndRenderWithoutModel(t *testing.T) {
	presenter := newTestPresenter(t, nil, artifact.FallbackClassNames())

	render := presenter.PredictAndRender(NewControls(), English)
	if len(render.Messages) != 1 || render.Messages[0].Kind != Error {
		t.Fatalf("expected a single error message, got %+v", render.Messages)
	}
	if render.Messages[0].Text != "Model not loaded. Check the logs." {
		t.Fatalf("unexpected message: %s", render.Messages[0].Text)
	}
	if render.Prediction != nil || len(render.Chart) != 0 {
		t.Fatal("expected no partial result")
	}
	if _, err := presenter.Predict(NewControls().Record()); !errors.Is(err, ErrModelNotLoaded) {
		t.Fatalf("expected ErrModelNotLoaded, got %v", err)
	}
}

func TestPredictAndRenderInferenceFailure(t *testing.T) {
	classifier := &fakeClassifier{probs: []float64{1, 0, 0}, err: errors.New("shape mismatch")}
	presenter := newTestPresenter(t, classifier, irisNames)

	render := presenter.PredictAndRender(NewControls(), English)
	if len(render.Messages) != 1 || render.Messages[0].Kind != Error {
		t.Fatalf("expected a single error message, got %+v", render.Messages)
	}
	if !strings.Contains(render.Messages[0].Text, "shape mismatch") {
		t.Fatalf("expected cause in message: %s", render.Messages[0].Text)
	}
	if render.Prediction != nil || render.Chart != nil {
		t.Fatal("expected no partial result")
	}
	if classifier.calls != 1 {
		t.Fatalf("expected no retry, got %d calls", classifier.calls)
	}

	_, err := presenter.Predict(NewControls().Record())
	var inferenceErr *InferenceError
	if !errors.As(err, &inferenceErr) {
		t.Fatalf("expected InferenceError, got %v", err)
	}
}

func TestPredictRecoversFromPanic(t *testing.T) {
	presenter := newTestPresenter(t, &fakeClassifier{probs: []float64{1, 0, 0}, panicMsg: "boom"}, irisNames)

	_, err := presenter.Predict(NewControls().Record())
	var inferenceErr *InferenceError
	if !errors.As(err, &inferenceErr) {
		t.Fatalf("expected InferenceError, got %v", err)
	}
}

func TestPredictMisalignedClassNames(t *testing.T) {
	classifier := &fakeClassifier{label: 1, probs: []float64{0.5, 0.5}}
	presenter := newTestPresenter(t, classifier, artifact.FallbackClassNames())

	if _, err := presenter.Predict(NewControls().Record()); err == nil {
		t.Fatal("expected error when probabilities and class names differ in length")
	}
	render := presenter.Page(NewControls(), English)
	if len(render.Notices) != 1 || render.Notices[0].Kind != Warning {
		t.Fatalf("expected alignment warning, got %+v", render.Notices)
	}
}

func TestPageNotices(t *testing.T) {
	_, modelErr := artifact.LoadClassifier(filepath.Join(t.TempDir(), "model.json"))
	names, namesErr := artifact.LoadClassNames(filepath.Join(t.TempDir(), "names.json"))
	presenter := newTestPresenter(t, nil, names,
		LoadIssue{Artifact: ModelArtifact, Err: modelErr},
		LoadIssue{Artifact: ClassNamesArtifact, Err: namesErr},
	)

	render := presenter.Page(NewControls(), English)
	if len(render.Notices) != 2 {
		t.Fatalf("expected 2 notices, got %+v", render.Notices)
	}
	if !strings.HasPrefix(render.Notices[0].Text, "Error: model file not found at ") {
		t.Fatalf("unexpected model notice: %s", render.Notices[0].Text)
	}
	if !strings.HasPrefix(render.Notices[1].Text, "Error: class names file not found at ") {
		t.Fatalf("unexpected class names notice: %s", render.Notices[1].Text)
	}
	if len(render.Sliders) != 4 || render.Sliders[0].Label != "Sepal length (cm)" {
		t.Fatalf("unexpected sliders: %+v", render.Sliders)
	}
}

func TestPredictAndRenderPortuguese(t *testing.T) {
	presenter := newTestPresenter(t, &fakeClassifier{label: 1, probs: []float64{0.02, 0.95, 0.03}}, irisNames)

	render := presenter.PredictAndRender(NewControls(), Portuguese)
	if render.Title != "Preditor de Espécie de Íris" {
		t.Fatalf("unexpected title: %s", render.Title)
	}
	if render.Messages[0].Text != "Espécie Prevista: versicolor" {
		t.Fatalf("unexpected message: %s", render.Messages[0].Text)
	}
	if render.Messages[1].Text != "Confiança: 95,00%" {
		t.Fatalf("unexpected confidence: %s", render.Messages[1].Text)
	}
	if !strings.Contains(render.Subtitle, "Regressão Logística") {
		t.Fatalf("unexpected subtitle: %s", render.Subtitle)
	}
	if render.Sliders[3].Label != "Largura da Pétala (cm)" {
		t.Fatalf("unexpected slider label: %s", render.Sliders[3].Label)
	}
}

func TestPageSubtitleNamesModel(t *testing.T) {
	presenter := newTestPresenter(t, nil, irisNames)

	render := presenter.Page(NewControls(), English)
	if render.Subtitle != "Enter the flower's measurements to predict its species using a logistic regression model." {
		t.Fatalf("unexpected subtitle: %s", render.Subtitle)
	}
}

func TestCachedPresenterLoadsClassNamesOnce(t *testing.T) {
	loads := 0
	cache, err := artifact.NewClassNameCacheFunc(1, func(path string) ([]string, error) {
		loads++
		return irisNames, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	classifier := &fakeClassifier{label: 2, probs: []float64{0.1, 0.2, 0.7}}
	presenter, err := NewCachedPresenter(classifier, cache, "classes.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 5; i++ {
		if render := presenter.Page(NewControls(), English); len(render.Notices) != 0 {
			t.Fatalf("unexpected notices: %+v", render.Notices)
		}
		render := presenter.PredictAndRender(NewControls(), English)
		if render.Prediction == nil || render.Prediction.Class != "virginica" {
			t.Fatalf("unexpected prediction: %+v", render.Prediction)
		}
		if len(render.Chart) != 3 || render.Chart[0].Class != "setosa" {
			t.Fatalf("unexpected chart: %+v", render.Chart)
		}
	}
	if loads != 1 {
		t.Fatalf("expected a single class-name load, got %d", loads)
	}
}

func TestCachedPresenterReportsMissingClassNames(t *testing.T) {
	loads := 0
	cache, err := artifact.NewClassNameCacheFunc(1, func(path string) ([]string, error) {
		loads++
		return artifact.LoadClassNames(path)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "classes.json")
	presenter, err := NewCachedPresenter(nil, cache, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 3; i++ {
		render := presenter.Page(NewControls(), English)
		if len(render.Notices) != 1 || !strings.HasPrefix(render.Notices[0].Text, "Error: class names file not found at ") {
			t.Fatalf("expected class names notice, got %+v", render.Notices)
		}
	}
	if names := presenter.ClassNames(); len(names) != 3 || names[0] != "Classe 0" {
		t.Fatalf("expected placeholder class names, got %v", names)
	}
	if loads != 1 {
		t.Fatalf("expected a single class-name load, got %d", loads)
	}
}
