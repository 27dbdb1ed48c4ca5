package ui

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var (
	English    = language.English
	Portuguese = language.BrazilianPortuguese

	supported = []language.Tag{English, Portuguese}
	matcher   = language.NewMatcher(supported)
)

// Message keys are the English texts.
var portugueseMessages = []struct{ key, text string }{
	{"Iris species predictor", "Preditor de Espécie de Íris"},
	{"Enter the flower's measurements to predict its species using a logistic regression model.", "Insira as características da flor para prever a espécie usando um modelo de Regressão Logística."},
	{"Input parameters", "Parâmetros de Entrada"},
	{"Entered measurements:", "Características Inseridas:"},
	{"Predict species", "Prever Espécie"},
	{"Predicted species: %s", "Espécie Prevista: %s"},
	{"Confidence: %.2f%%", "Confiança: %.2f%%"},
	{"Probabilities by class:", "Probabilidades por Classe:"},
	{"Class", "Classe"},
	{"Probability", "Probabilidade"},
	{"Error during prediction: %v", "Erro durante a predição: %v"},
	{"Model not loaded. Check the logs.", "Modelo não carregado. Verifique os logs."},
	{"Error: model file not found at %s", "Erro: Arquivo do modelo não encontrado em %s"},
	{"Error loading model: %v", "Erro ao carregar o modelo: %v"},
	{"Error: class names file not found at %s", "Erro: Arquivo de nomes das classes não encontrado em %s"},
	{"Error loading class names: %v", "Erro ao carregar nomes das classes: %v"},
	{"The model predicts %d classes but %d class names are loaded.", "O modelo prevê %d classes, mas %d nomes de classes foram carregados."},
	{"This app uses a model trained on the Iris dataset.", "Este app usa um modelo treinado no dataset Iris."},
}

// Labels are plain text, looked up through text.
var portugueseLabels = []struct{ key, text string }{
	{"Sepal length (cm)", "Comprimento da Sépala (cm)"},
	{"Sepal width (cm)", "Largura da Sépala (cm)"},
	{"Petal length (cm)", "Comprimento da Pétala (cm)"},
	{"Petal width (cm)", "Largura da Pétala (cm)"},
}

func newCatalog() (catalog.Catalog, error) {
	builder := catalog.NewBuilder(catalog.Fallback(English))
	for _, m := range portugueseMessages {
		if err := builder.SetString(English, m.key, m.key); err != nil {
			return nil, err
		}
		if err := builder.SetString(Portuguese, m.key, m.text); err != nil {
			return nil, err
		}
	}
	for _, m := range portugueseLabels {
		key := escapePercent(m.key)
		if err := builder.SetString(English, key, key); err != nil {
			return nil, err
		}
		if err := builder.SetString(Portuguese, key, escapePercent(m.text)); err != nil {
			return nil, err
		}
	}
	return builder, nil
}

// MatchLocale picks the supported language closest to an Accept-Language
// header or locale name, defaulting to English.
func MatchLocale(accept string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return English
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return English
	}
	return supported[idx]
}

func newPrinter(tag language.Tag, cat catalog.Catalog) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(cat))
}

// text translates a fixed string that takes no arguments. Catalog entries
// are stored with '%' escaped, so a literal percent sign in a key or in its
// translation is printed as is.
func text(printer *message.Printer, key string) string {
	return printer.Sprintf(escapePercent(key))
}

func escapePercent(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
