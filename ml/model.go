package ml

// Classifier is a ready-made model. Implementations are read-only after
// construction and safe for concurrent use.
type Classifier interface {
	// Predict returns the index of the predicted class.
	Predict(features []float64) (int, error)
	// PredictProba returns one probability per class, aligned to class indices.
	PredictProba(features []float64) ([]float64, error)
	NumClasses() int
}
