// Package interfaces defines core abstractions for the vetmedica API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"net/http"
	"time"

	"github.com/vetmedica/vetmedica-api/graph"
	"github.com/vetmedica/vetmedica-api/recommender"
)

// DataStore defines the contract for snapshot storage. It provides
// thread-safe access to the query engine with atomic swaps on reload.
type DataStore interface {
	GetEngine() *recommender.Engine
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time
	SetServerStartTime(time.Time)

	UpdateEngine(engine *recommender.Engine)
	BeginUpdate() bool
	EndUpdate()
}

// DocumentLoader defines the contract for reading the persisted knowledge
// documents (graph, doses, breeds, synonyms) from disk.
type DocumentLoader interface {
	Load() (*graph.Documentos, error)
}

// Scheduler defines the contract for the periodic reload and health
// monitoring jobs.
type Scheduler interface {
	Start() error
	Stop()
}

// InputValidator defines the contract for user-input validation.
type InputValidator interface {
	// ValidateInput rejects query strings with characters outside the
	// accepted Spanish vocabulary or with known injection patterns.
	ValidateInput(input string) error

	// ValidateEspecie normalizes a species parameter to its canonical form.
	ValidateEspecie(input string) (string, error)

	// ValidatePeso parses an optional weight parameter; empty input yields nil.
	ValidatePeso(input string) (*float64, error)
}

// HTTPHandler defines the contract for the HTTP endpoints of the query surface.
type HTTPHandler interface {
	BuscarEnfermedades(w http.ResponseWriter, r *http.Request)
	ListarEnfermedades(w http.ResponseWriter, r *http.Request)
	RankMedicamentos(w http.ResponseWriter, r *http.Request)
	FindMedicamento(w http.ResponseWriter, r *http.Request)
	EnfermedadesDeMedicamento(w http.ResponseWriter, r *http.Request)
	BuscarMedicamentos(w http.ResponseWriter, r *http.Request)
	EstimarDosis(w http.ResponseWriter, r *http.Request)
	ProcesarConsulta(w http.ResponseWriter, r *http.Request)
	Estadisticas(w http.ResponseWriter, r *http.Request)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}
