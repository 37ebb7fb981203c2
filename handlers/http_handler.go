// Package handlers provides HTTP request handlers for the recommendation API
// endpoints. It includes handlers for disease search, medication ranking,
// dose estimation, the full consultation pipeline, health checks and
// response formatting with proper input validation and error handling.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vetmedica/vetmedica-api/interfaces"
	"github.com/vetmedica/vetmedica-api/logging"
	"github.com/vetmedica/vetmedica-api/metrics"
	"github.com/vetmedica/vetmedica-api/recommender"
)

// Compile-time check to ensure HTTPHandlerImpl implements HTTPHandler
var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	dataStore interfaces.DataStore
	validator interfaces.InputValidator
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(dataStore interfaces.DataStore, validator interfaces.InputValidator) *HTTPHandlerImpl {
	return &HTTPHandlerImpl{
		dataStore: dataStore,
		validator: validator,
	}
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]interface{}{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// engine returns the current query snapshot or writes a 503 when the
// knowledge documents have not loaded yet.
func (h *HTTPHandlerImpl) engine(w http.ResponseWriter) *recommender.Engine {
	engine := h.dataStore.GetEngine()
	if engine == nil {
		h.RespondWithError(w, http.StatusServiceUnavailable, "El grafo de conocimiento aún no está cargado")
		return nil
	}
	return engine
}

// BuscarEnfermedades maps a free-text symptom description to disease
// candidates for a species. GET /buscar/{especie}?q=...
func (h *HTTPHandlerImpl) BuscarEnfermedades(w http.ResponseWriter, r *http.Request) {
	especie, err := h.validator.ValidateEspecie(chi.URLParam(r, "especie"))
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	texto := r.URL.Query().Get("q")
	if err := h.validator.ValidateInput(texto); err != nil {
		logging.Warn("Unusual user input", "q", texto)
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	engine := h.engine(w)
	if engine == nil {
		return
	}

	resultados := engine.Search(texto, especie)

	outcome := "match"
	if len(resultados) == 0 {
		outcome = "no_match"
	}
	metrics.DiseaseSearchTotal.WithLabelValues(especie, outcome).Inc()

	// An empty array is the legitimate "no disease matched" answer
	h.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"especie":    especie,
		"consulta":   texto,
		"resultados": resultados,
	})
}

// ListarEnfermedades lists the known diseases grouped by species.
// GET /enfermedades?especie=...
func (h *HTTPHandlerImpl) ListarEnfermedades(w http.ResponseWriter, r *http.Request) {
	var especie string
	if raw := r.URL.Query().Get("especie"); raw != "" {
		validated, err := h.validator.ValidateEspecie(raw)
		if err != nil {
			h.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		especie = validated
	}

	engine := h.engine(w)
	if engine == nil {
		return
	}

	h.RespondWithJSON(w, http.StatusOK, engine.ListarEnfermedades(especie))
}

// RankMedicamentos scores the medications associated with a diagnosed
// disease for a patient profile.
// GET /enfermedad/{clave}/medicamentos?especie=...&peso=...&raza=...
func (h *HTTPHandlerImpl) RankMedicamentos(w http.ResponseWriter, r *http.Request) {
	clave := chi.URLParam(r, "clave")
	if clave == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Falta la clave de enfermedad")
		return
	}

	especie, err := h.validator.ValidateEspecie(r.URL.Query().Get("especie"))
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	peso, err := h.validator.ValidatePeso(r.URL.Query().Get("peso"))
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	raza := strings.TrimSpace(r.URL.Query().Get("raza"))

	engine := h.engine(w)
	if engine == nil {
		return
	}

	medicamentos, err := engine.RankMedicamentos(clave, especie, peso, raza)
	if err != nil {
		if errors.Is(err, recommender.ErrEnfermedadDesconocida) {
			h.RespondWithError(w, http.StatusNotFound, "Enfermedad no encontrada: "+clave)
			return
		}
		logging.Error("Medication ranking failed", "clave", clave, "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Error al puntuar medicamentos")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"enfermedad":   clave,
		"especie":      especie,
		"medicamentos": medicamentos,
	})
}

// FindMedicamento returns a medication by its registry id.
// GET /medicamento/{id}
func (h *HTTPHandlerImpl) FindMedicamento(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Falta el identificador del medicamento")
		return
	}

	engine := h.engine(w)
	if engine == nil {
		return
	}

	med, ok := engine.Medicamento(id)
	if !ok {
		h.RespondWithError(w, http.StatusNotFound, "Medicamento no encontrado: "+id)
		return
	}

	h.RespondWithJSON(w, http.StatusOK, med)
}

// EnfermedadesDeMedicamento lists the diseases a medication treats.
// GET /medicamento/{id}/enfermedades
func (h *HTTPHandlerImpl) EnfermedadesDeMedicamento(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Falta el identificador del medicamento")
		return
	}

	engine := h.engine(w)
	if engine == nil {
		return
	}

	tratadas, err := engine.EnfermedadesDeMedicamento(id)
	if err != nil {
		h.RespondWithError(w, http.StatusNotFound, "Medicamento no encontrado: "+id)
		return
	}

	if tratadas == nil {
		tratadas = []recommender.EnfermedadTratada{}
	}
	h.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"medicamento":  id,
		"enfermedades": tratadas,
	})
}

// BuscarMedicamentos searches medications by name (case-insensitive
// partial match). GET /medicamentos/{nombre}
func (h *HTTPHandlerImpl) BuscarMedicamentos(w http.ResponseWriter, r *http.Request) {
	nombre := chi.URLParam(r, "nombre")
	if err := h.validator.ValidateInput(nombre); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	engine := h.engine(w)
	if engine == nil {
		return
	}

	resultados := engine.BuscarMedicamentos(nombre)
	if len(resultados) == 0 {
		h.RespondWithError(w, http.StatusNotFound, "Ningún medicamento coincide con: "+nombre)
		return
	}

	h.RespondWithJSON(w, http.StatusOK, resultados)
}

// EstimarDosis estimates a dose for a medication and an optional weight.
// GET /dosis/{id}?peso=...
func (h *HTTPHandlerImpl) EstimarDosis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Falta el identificador del medicamento")
		return
	}

	peso, err := h.validator.ValidatePeso(r.URL.Query().Get("peso"))
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	engine := h.engine(w)
	if engine == nil {
		return
	}

	dosis, err := engine.EstimarDosisMedicamento(id, peso)
	if err != nil {
		h.RespondWithError(w, http.StatusNotFound, "Medicamento no encontrado: "+id)
		return
	}

	h.RespondWithJSON(w, http.StatusOK, dosis)
}

// consultaRequest is the body of POST /consulta
type consultaRequest struct {
	Texto string `json:"texto"`
}

// ProcesarConsulta runs the full pipeline over a free-text clinical case.
// POST /consulta
func (h *HTTPHandlerImpl) ProcesarConsulta(w http.ResponseWriter, r *http.Request) {
	var req consultaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Cuerpo JSON no válido")
		return
	}

	if err := h.validator.ValidateInput(req.Texto); err != nil {
		logging.Warn("Unusual user input", "texto", req.Texto)
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	engine := h.engine(w)
	if engine == nil {
		return
	}

	resultado, err := engine.ProcesarConsulta(req.Texto)
	if err != nil {
		logging.Error("Consultation pipeline failed", "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Error al procesar la consulta")
		return
	}

	metrics.ConsultaTotal.Inc()

	h.RespondWithJSON(w, http.StatusOK, resultado)
}

// Estadisticas returns counters describing the loaded knowledge graph.
// GET /estadisticas
func (h *HTTPHandlerImpl) Estadisticas(w http.ResponseWriter, r *http.Request) {
	engine := h.engine(w)
	if engine == nil {
		return
	}

	h.RespondWithJSON(w, http.StatusOK, engine.Estadisticas())
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status        string                 `json:"status"`
	LastUpdate    string                 `json:"last_update"`
	DataAgeHours  float64                `json:"data_age_hours"`
	UptimeSeconds float64                `json:"uptime_seconds"`
	Data          map[string]interface{} `json:"data"`
	System        map[string]interface{} `json:"system"`
}

// HealthCheck returns server health information
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	// Get memory statistics
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.dataStore.GetServerStartTime())

	engine := h.dataStore.GetEngine()
	lastUpdate := h.dataStore.GetLastUpdated()
	isUpdating := h.dataStore.IsUpdating()
	dataAge := time.Since(lastUpdate)

	// Determine health status based on data availability and age
	var healthStatus string
	var httpStatus int
	switch {
	case engine == nil:
		healthStatus = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	case dataAge > 24*time.Hour:
		healthStatus = "degraded"
		httpStatus = http.StatusOK
	default:
		healthStatus = "healthy"
		httpStatus = http.StatusOK
	}

	dataInfo := map[string]interface{}{
		"api_version": "1.0",
		"is_updating": isUpdating,
		"next_update": h.calculateNextUpdate().Format(time.RFC3339),
	}
	if engine != nil {
		stats := engine.Estadisticas()
		dataInfo["medicamentos"] = stats.TotalMedicamentos
		dataInfo["enfermedades"] = stats.TotalEnfermedades
		dataInfo["relaciones"] = stats.TotalRelaciones
	}

	response := HealthResponse{
		Status:        healthStatus,
		LastUpdate:    lastUpdate.Format(time.RFC3339),
		DataAgeHours:  dataAge.Hours(),
		UptimeSeconds: uptime.Seconds(),
		Data:          dataInfo,
		System: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc_mb":       int(m.Alloc / 1024 / 1024),
				"total_alloc_mb": int(m.TotalAlloc / 1024 / 1024),
				"sys_mb":         int(m.Sys / 1024 / 1024),
				"num_gc":         m.NumGC,
			},
		},
	}

	h.RespondWithJSON(w, httpStatus, response)
}

// calculateNextUpdate calculates the next scheduled reload time
func (h *HTTPHandlerImpl) calculateNextUpdate() time.Time {
	now := time.Now()

	// Get today's 6:00 AM and 6:00 PM times
	sixAM := time.Date(now.Year(), now.Month(), now.Day(), 6, 0, 0, 0, now.Location())
	sixPM := time.Date(now.Year(), now.Month(), now.Day(), 18, 0, 0, 0, now.Location())

	// If current time is before 6:00 AM, next reload is 6:00 AM today
	if now.Before(sixAM) {
		return sixAM
	}

	// If current time is between 6:00 AM and 6:00 PM, next reload is 6:00 PM today
	if now.Before(sixPM) {
		return sixPM
	}

	// If current time is after 6:00 PM, next reload is 6:00 AM tomorrow
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 6, 0, 0, 0, tomorrow.Location())
}
