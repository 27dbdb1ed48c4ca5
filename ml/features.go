package ml

import "fmt"

// FeatureRecord is a single iris measurement, in centimetres.
type FeatureRecord struct {
	SepalLength float64 `json:"sepal_length"`
	SepalWidth  float64 `json:"sepal_width"`
	PetalLength float64 `json:"petal_length"`
	PetalWidth  float64 `json:"petal_width"`
}

// FeatureNames lists the columns in the order the models were trained on.
func FeatureNames() []string {
	return []string{
		"sepal length (cm)",
		"sepal width (cm)",
		"petal length (cm)",
		"petal width (cm)",
	}
}

func FeatureVector(record FeatureRecord) []float64 {
	return []float64{
		record.SepalLength,
		record.SepalWidth,
		record.PetalLength,
		record.PetalWidth,
	}
}

func RecordFromVector(values []float64) (FeatureRecord, error) {
	if len(values) != len(FeatureNames()) {
		return FeatureRecord{}, fmt.Errorf("expected %d features, got %d", len(FeatureNames()), len(values))
	}
	return FeatureRecord{
		SepalLength: values[0],
		SepalWidth:  values[1],
		PetalLength: values[2],
		PetalWidth:  values[3],
	}, nil
}

func checkFeatureCount(features []float64, want int) error {
	if len(features) != want {
		return fmt.Errorf("feature count mismatch: model expects %d, got %d", want, len(features))
	}
	return nil
}
