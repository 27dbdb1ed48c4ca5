package ui

import (
	"testing"

	"golang.org/x/text/message/catalog"
)

func TestMatchLocale(t *testing.T) {
	cases := map[string]string{
		"":               "en",
		"pt-BR,pt;q=0.9": "pt-BR",
		"pt":             "pt-BR",
		"en-US,en;q=0.8": "en",
		"ja":             "en",
	}
	for accept, want := range cases {
		if got := MatchLocale(accept).String(); got != want {
			t.Fatalf("MatchLocale(%q) = %s, want %s", accept, got, want)
		}
	}
}

func TestTextKeepsPercentSigns(t *testing.T) {
	builder := catalog.NewBuilder(catalog.Fallback(English))
	key := escapePercent("Humidity (%)")
	if err := builder.SetString(English, key, key); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := builder.SetString(Portuguese, key, escapePercent("Umidade (%)")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := text(newPrinter(English, builder), "Humidity (%)"); got != "Humidity (%)" {
		t.Fatalf("unexpected English text: %q", got)
	}
	if got := text(newPrinter(Portuguese, builder), "Humidity (%)"); got != "Umidade (%)" {
		t.Fatalf("unexpected Portuguese text: %q", got)
	}
	if got := text(newPrinter(English, builder), "100% sure %d"); got != "100% sure %d" {
		t.Fatalf("unexpected text for unknown key: %q", got)
	}
}

func TestSliderLabelsTranslated(t *testing.T) {
	cat, err := newCatalog()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	printer := newPrinter(Portuguese, cat)
	for _, s := range Sliders() {
		if got := text(printer, s.Label); got == s.Label {
			t.Fatalf("label %q has no Portuguese translation", s.Label)
		}
	}
}
