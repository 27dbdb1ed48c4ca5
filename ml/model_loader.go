package ml

import (
	"encoding/json"
	"fmt"
)

// Decoder builds a classifier from the model section of an artifact.
type Decoder func(raw json.RawMessage) (Classifier, error)

var Decoders = map[string]Decoder{
	"logistic_regression": decodeLogisticRegression,
	"decision_tree":       decodeDecisionTree,
}

// Artifact is the on-disk envelope of a serialized classifier.
type Artifact struct {
	Type         string          `json:"type"`
	FeatureNames []string        `json:"feature_names,omitempty"`
	Model        json.RawMessage `json:"model"`
}

// DecodeArtifact parses an artifact and builds the classifier it describes.
func DecodeArtifact(data []byte) (Classifier, error) {
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, err
	}
	if len(artifact.Model) == 0 {
		return nil, fmt.Errorf("artifact has no model section")
	}
	if err := checkFeatureNames(artifact.FeatureNames); err != nil {
		return nil, err
	}

	decode, ok := Decoders[artifact.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported model type: %q", artifact.Type)
	}
	return decode(artifact.Model)
}

func checkFeatureNames(names []string) error {
	if len(names) == 0 {
		return nil
	}
	want := FeatureNames()
	if len(names) != len(want) {
		return fmt.Errorf("model trained on %d features, expected %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			return fmt.Errorf("feature %d is %q, expected %q", i, names[i], want[i])
		}
	}
	return nil
}
