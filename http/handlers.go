package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"irispredict/ml"
	"irispredict/ui"
)

// Handler serves the predictor page and its JSON API. The presenter is built
// once at startup and shared read-only by every request.
type Handler struct {
	presenter     *ui.Presenter
	logger        *zap.Logger
	defaultLocale language.Tag
}

func NewHandler(presenter *ui.Presenter, logger *zap.Logger, defaultLocale string) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		presenter:     presenter,
		logger:        logger,
		defaultLocale: ui.MatchLocale(defaultLocale),
	}
}

func RegisterHandlers(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /{$}", h.handlePage)
	mux.HandleFunc("POST /predict", h.handlePredictForm)
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/sliders", h.handleSliders)
	mux.HandleFunc("POST /api/predict", h.handlePredict)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":       "ok",
		"model_loaded": h.presenter.ModelLoaded(),
	})
}

func (h *Handler) handleSliders(w http.ResponseWriter, r *http.Request) {
	render := h.presenter.Page(ui.NewControls(), h.locale(r))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"columns": render.Columns,
		"sliders": render.Sliders,
	})
}

// predictRequest fields are optional; missing ones keep the slider defaults.
type predictRequest struct {
	SepalLength *float64 `json:"sepal_length"`
	SepalWidth  *float64 `json:"sepal_width"`
	PetalLength *float64 `json:"petal_length"`
	PetalWidth  *float64 `json:"petal_width"`
}

func (req predictRequest) values() map[string]float64 {
	values := make(map[string]float64)
	fields := map[string]*float64{
		"sepal_length": req.SepalLength,
		"sepal_width":  req.SepalWidth,
		"petal_length": req.PetalLength,
		"petal_width":  req.PetalWidth,
	}
	for field, value := range fields {
		if value != nil {
			values[field] = *value
		}
	}
	return values
}

type predictResponse struct {
	Record     ml.FeatureRecord `json:"record"`
	Prediction *ui.Prediction   `json:"prediction,omitempty"`
	Messages   []ui.Message     `json:"messages"`
	Chart      []ui.Bar         `json:"chart,omitempty"`
	Error      string           `json:"error,omitempty"`
}

func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	controls := ui.ControlsFromValues(req.values())
	render := h.presenter.PredictAndRender(controls, h.locale(r))

	resp := predictResponse{
		Record:     render.Record,
		Prediction: render.Prediction,
		Messages:   render.Messages,
		Chart:      render.Chart,
	}
	status := http.StatusOK
	if render.Prediction == nil {
		status = http.StatusInternalServerError
		if !h.presenter.ModelLoaded() {
			status = http.StatusServiceUnavailable
		}
		if len(render.Messages) > 0 {
			resp.Error = render.Messages[0].Text
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	controls := controlsFromForm(r)
	h.writePage(w, r, h.presenter.Page(controls, h.locale(r)))
}

func (h *Handler) handlePredictForm(w http.ResponseWriter, r *http.Request) {
	controls := controlsFromForm(r)
	h.writePage(w, r, h.presenter.PredictAndRender(controls, h.locale(r)))
}

func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, render ui.Render) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderPage(w, render); err != nil {
		h.logger.Error("render page", zap.String("request_id", GetRequestID(r.Context())), zap.Error(err))
	}
}

// locale prefers ?lang=, then Accept-Language, then the configured default.
func (h *Handler) locale(r *http.Request) language.Tag {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return ui.MatchLocale(lang)
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return ui.MatchLocale(accept)
	}
	return h.defaultLocale
}

// controlsFromForm reads slider values from the query string or a posted
// form. Unparseable values are ignored.
func controlsFromForm(r *http.Request) *ui.Controls {
	if err := r.ParseForm(); err != nil {
		return ui.NewControls()
	}
	values := make(map[string]float64)
	for _, s := range ui.Sliders() {
		raw := r.Form.Get(s.Field)
		if raw == "" {
			continue
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			values[s.Field] = v
		}
	}
	return ui.ControlsFromValues(values)
}

func writeJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
