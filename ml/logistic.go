package ml

import (
	"encoding/json"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	MultinomialMode = "multinomial"
	OneVsRestMode   = "ovr"
)

// LogisticRegression is a linear classifier over a fixed feature vector.
// With two classes a single coefficient row scores the positive class.
type LogisticRegression struct {
	coef      *mat.Dense
	intercept *mat.VecDense
	classes   int
	mode      string
}

type logisticParams struct {
	Coef       [][]float64 `json:"coef"`
	Intercept  []float64   `json:"intercept"`
	Classes    int         `json:"classes"`
	MultiClass string      `json:"multi_class"`
}

func NewLogisticRegression(coef [][]float64, intercept []float64, classes int, mode string) (*LogisticRegression, error) {
	if len(coef) == 0 || len(coef[0]) == 0 {
		return nil, errors.New("coefficients are empty")
	}
	if len(intercept) != len(coef) {
		return nil, fmt.Errorf("intercept size %d does not match %d coefficient rows", len(intercept), len(coef))
	}
	if classes == 0 {
		classes = len(coef)
		if classes == 1 {
			classes = 2
		}
	}
	switch {
	case len(coef) == 1 && classes != 2:
		return nil, fmt.Errorf("single coefficient row requires 2 classes, got %d", classes)
	case len(coef) > 1 && len(coef) != classes:
		return nil, fmt.Errorf("%d coefficient rows for %d classes", len(coef), classes)
	}
	if mode == "" {
		mode = MultinomialMode
	}
	if mode != MultinomialMode && mode != OneVsRestMode {
		return nil, fmt.Errorf("unsupported multi_class mode %q", mode)
	}

	cols := len(coef[0])
	data := make([]float64, 0, len(coef)*cols)
	for i, row := range coef {
		if len(row) != cols {
			return nil, fmt.Errorf("coefficient row %d has %d values, expected %d", i, len(row), cols)
		}
		data = append(data, row...)
	}

	return &LogisticRegression{
		coef:      mat.NewDense(len(coef), cols, data),
		intercept: mat.NewVecDense(len(intercept), append([]float64(nil), intercept...)),
		classes:   classes,
		mode:      mode,
	}, nil
}

func (lr *LogisticRegression) NumClasses() int {
	return lr.classes
}

func (lr *LogisticRegression) NumFeatures() int {
	_, cols := lr.coef.Dims()
	return cols
}

func (lr *LogisticRegression) Predict(features []float64) (int, error) {
	probs, err := lr.PredictProba(features)
	if err != nil {
		return 0, err
	}
	return ArgMax(probs), nil
}

func (lr *LogisticRegression) PredictProba(features []float64) ([]float64, error) {
	scores, err := lr.decision(features)
	if err != nil {
		return nil, err
	}

	if len(scores) == 1 {
		p := sigmoid(scores[0])
		return []float64{1 - p, p}, nil
	}

	if lr.mode == OneVsRestMode {
		for i, s := range scores {
			scores[i] = sigmoid(s)
		}
		if err := Normalize(scores); err != nil {
			return nil, err
		}
		return scores, nil
	}

	Softmax(scores)
	return scores, nil
}

// decision returns coef·x + intercept, one score per coefficient row.
func (lr *LogisticRegression) decision(features []float64) ([]float64, error) {
	if err := checkFeatureCount(features, lr.NumFeatures()); err != nil {
		return nil, err
	}
	x := mat.NewVecDense(len(features), append([]float64(nil), features...))

	var scores mat.VecDense
	scores.MulVec(lr.coef, x)
	scores.AddVec(&scores, lr.intercept)
	return mat.Col(nil, 0, &scores), nil
}

func decodeLogisticRegression(raw json.RawMessage) (Classifier, error) {
	var params logisticParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, err
	}
	return NewLogisticRegression(params.Coef, params.Intercept, params.Classes, params.MultiClass)
}
