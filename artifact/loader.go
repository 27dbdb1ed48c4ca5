// Package artifact reads the serialized classifier and class-name table from disk.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"irispredict/ml"
)

// FallbackClassNames is used when the class-name table cannot be read.
func FallbackClassNames() []string {
	return []string{"Classe 0", "Classe 1", "Classe 2"}
}

// LoadClassifier returns a nil classifier and a *NotFoundError or *LoadError on failure.
func LoadClassifier(path string) (ml.Classifier, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	model, err := ml.DecodeArtifact(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: errors.Wrap(err, "decode classifier")}
	}
	return model, nil
}

// LoadClassNames always returns a usable table: on failure it returns
// FallbackClassNames together with the error.
func LoadClassNames(path string) ([]string, error) {
	data, err := readFile(path)
	if err != nil {
		return FallbackClassNames(), err
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return FallbackClassNames(), &LoadError{Path: path, Err: errors.Wrap(err, "decode class names")}
	}
	if len(names) == 0 {
		return FallbackClassNames(), &LoadError{Path: path, Err: errors.New("class name list is empty")}
	}
	return names, nil
}

// CheckAlignment reports whether the class-name table covers every class the
// classifier can output.
func CheckAlignment(classifier ml.Classifier, names []string) error {
	if classifier == nil {
		return nil
	}
	if classifier.NumClasses() != len(names) {
		return fmt.Errorf("classifier has %d classes but %d class names are loaded", classifier.NumClasses(), len(names))
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	return nil, &LoadError{Path: path, Err: errors.Wrap(err, "read file")}
}
