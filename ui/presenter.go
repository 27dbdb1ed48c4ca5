// Package ui turns control state and classifier output into render descriptions.
package ui

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"irispredict/artifact"
	"irispredict/ml"
)

// ErrModelNotLoaded is returned by Predict when no classifier is available.
var ErrModelNotLoaded = errors.New("model not loaded")

// InferenceError wraps a failure raised while running the classifier.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// Artifact names which startup input a LoadIssue concerns.
type Artifact int

const (
	ModelArtifact Artifact = iota
	ClassNamesArtifact
)

// LoadIssue is a startup failure shown to the user on every page.
type LoadIssue struct {
	Artifact Artifact
	Err      error
}

// Presenter holds the state loaded at startup. It is read-only afterwards
// and may be shared by concurrent requests.
type Presenter struct {
	classifier ml.Classifier
	classNames []string
	names      *artifact.ClassNameCache
	namesPath  string
	issues     []LoadIssue
	catalog    catalog.Catalog
}

// NewPresenter accepts a nil classifier; predictions are then disabled.
func NewPresenter(classifier ml.Classifier, classNames []string, issues ...LoadIssue) (*Presenter, error) {
	cat, err := newCatalog()
	if err != nil {
		return nil, errors.Wrap(err, "build message catalog")
	}
	return &Presenter{
		classifier: classifier,
		classNames: append([]string(nil), classNames...),
		issues:     append([]LoadIssue(nil), issues...),
		catalog:    cat,
	}, nil
}

// NewCachedPresenter looks the class-name table up in cache on every render
// instead of holding a copy. A failed load shows up as a page notice.
func NewCachedPresenter(classifier ml.Classifier, cache *artifact.ClassNameCache, namesPath string, issues ...LoadIssue) (*Presenter, error) {
	p, err := NewPresenter(classifier, nil, issues...)
	if err != nil {
		return nil, err
	}
	p.names = cache
	p.namesPath = namesPath
	return p, nil
}

func (p *Presenter) ModelLoaded() bool {
	return p.classifier != nil
}

func (p *Presenter) ClassNames() []string {
	names, _ := p.classTable()
	return append([]string(nil), names...)
}

// classTable returns the current class names. On error the names are the
// placeholders.
func (p *Presenter) classTable() ([]string, error) {
	if p.names == nil {
		return p.classNames, nil
	}
	return p.names.Get(p.namesPath)
}

// Predict runs the classifier on record. Any failure, including a panic in
// the classifier, is returned as *InferenceError.
func (p *Presenter) Predict(record ml.FeatureRecord) (*Prediction, error) {
	names, _ := p.classTable()
	return p.predict(record, names)
}

func (p *Presenter) predict(record ml.FeatureRecord, classNames []string) (prediction *Prediction, err error) {
	if p.classifier == nil {
		return nil, ErrModelNotLoaded
	}
	defer func() {
		if r := recover(); r != nil {
			prediction = nil
			err = &InferenceError{Err: fmt.Errorf("classifier panic: %v", r)}
		}
	}()

	features := ml.FeatureVector(record)
	index, err := p.classifier.Predict(features)
	if err != nil {
		return nil, &InferenceError{Err: errors.Wrap(err, "predict")}
	}
	probs, err := p.classifier.PredictProba(features)
	if err != nil {
		return nil, &InferenceError{Err: errors.Wrap(err, "predict_proba")}
	}
	if index < 0 || index >= len(probs) {
		return nil, &InferenceError{Err: fmt.Errorf("predicted index %d outside %d probabilities", index, len(probs))}
	}
	if len(probs) != len(classNames) {
		return nil, &InferenceError{Err: fmt.Errorf("%d probabilities for %d class names", len(probs), len(classNames))}
	}

	return &Prediction{
		Index:         index,
		Class:         classNames[index],
		Confidence:    probs[index] * 100,
		Probabilities: probs,
	}, nil
}

// Page renders the state of the page before any action is triggered.
func (p *Presenter) Page(controls *Controls, tag language.Tag) Render {
	names, namesErr := p.classTable()
	return p.page(controls, newPrinter(tag, p.catalog), tag, names, namesErr)
}

func (p *Presenter) page(controls *Controls, printer *message.Printer, tag language.Tag, names []string, namesErr error) Render {
	render := Render{
		Locale:        tag.String(),
		Title:         printer.Sprintf("Iris species predictor"),
		Icon:          "🌸",
		Subtitle:      printer.Sprintf("Enter the flower's measurements to predict its species using a logistic regression model."),
		SidebarHeader: printer.Sprintf("Input parameters"),
		Footer:        printer.Sprintf("This app uses a model trained on the Iris dataset."),
		RecordHeading: printer.Sprintf("Entered measurements:"),
		Columns:       ml.FeatureNames(),
		Record:        controls.Record(),
		ActionLabel:   printer.Sprintf("Predict species"),
		Notices:       p.notices(printer, names, namesErr),
	}
	for _, s := range sliders {
		value, _ := controls.Value(s.Field)
		render.Sliders = append(render.Sliders, SliderView{
			Field: s.Field,
			Label: text(printer, s.Label),
			Min:   s.Min,
			Max:   s.Max,
			Step:  s.Step,
			Value: value,
		})
	}
	return render
}

// PredictAndRender handles the trigger action: it renders the page for the
// current controls plus either the prediction or an error message.
func (p *Presenter) PredictAndRender(controls *Controls, tag language.Tag) Render {
	printer := newPrinter(tag, p.catalog)
	names, namesErr := p.classTable()
	render := p.page(controls, printer, tag, names, namesErr)

	prediction, err := p.predict(render.Record, names)
	switch {
	case errors.Is(err, ErrModelNotLoaded):
		render.Messages = []Message{{Kind: Error, Text: printer.Sprintf("Model not loaded. Check the logs.")}}
		return render
	case err != nil:
		render.Messages = []Message{{Kind: Error, Text: printer.Sprintf("Error during prediction: %v", err)}}
		return render
	}

	render.Prediction = prediction
	render.Messages = []Message{
		{Kind: Success, Text: printer.Sprintf("Predicted species: %s", prediction.Class)},
		{Kind: Info, Text: printer.Sprintf("Confidence: %.2f%%", prediction.Confidence)},
	}
	render.ChartHeading = printer.Sprintf("Probabilities by class:")
	render.ClassColumn = printer.Sprintf("Class")
	render.ValueColumn = printer.Sprintf("Probability")
	render.Chart = chart(names, prediction.Probabilities)
	return render
}

// chart pairs class names with probabilities in class-index order.
func chart(classNames []string, probs []float64) []Bar {
	bars := make([]Bar, len(probs))
	for i, prob := range probs {
		bars[i] = Bar{Class: classNames[i], Value: prob * 100}
	}
	return bars
}

func (p *Presenter) notices(printer *message.Printer, names []string, namesErr error) []Message {
	var notices []Message
	for _, issue := range p.issues {
		notices = append(notices, Message{Kind: Error, Text: issueText(printer, issue)})
	}
	if namesErr != nil {
		notices = append(notices, Message{Kind: Error, Text: issueText(printer, LoadIssue{Artifact: ClassNamesArtifact, Err: namesErr})})
	}
	if err := artifact.CheckAlignment(p.classifier, names); err != nil {
		notices = append(notices, Message{
			Kind: Warning,
			Text: printer.Sprintf("The model predicts %d classes but %d class names are loaded.", p.classifier.NumClasses(), len(names)),
		})
	}
	return notices
}

func issueText(printer *message.Printer, issue LoadIssue) string {
	var notFound *artifact.NotFoundError
	isNotFound := errors.As(issue.Err, &notFound)

	switch issue.Artifact {
	case ModelArtifact:
		if isNotFound {
			return printer.Sprintf("Error: model file not found at %s", notFound.Path)
		}
		return printer.Sprintf("Error loading model: %v", issue.Err)
	default:
		if isNotFound {
			return printer.Sprintf("Error: class names file not found at %s", notFound.Path)
		}
		return printer.Sprintf("Error loading class names: %v", issue.Err)
	}
}
