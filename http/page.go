package http

import (
	_ "embed"
	"html/template"
	"io"
	"strconv"

	"irispredict/ui"
)

//go:embed templates/page.html
var pageSource string

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"num": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	"pct": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
}).Parse(pageSource))

func renderPage(w io.Writer, render ui.Render) error {
	return pageTemplate.Execute(w, render)
}
