package recommender

import (
	"sort"
	"strings"

	"github.com/vetmedica/vetmedica-api/graph"
	"github.com/vetmedica/vetmedica-api/graph/entities"
	"github.com/vetmedica/vetmedica-api/matcher"
)

// MaxMedicamentos is how many ranked medications a caller receives.
const MaxMedicamentos = 10

// Engine is the immutable query snapshot: the loaded graph, the synonym index
// and the auxiliary tables, built once per load. Any number of queries may run
// against it concurrently without synchronization because nothing mutates it;
// a reload builds a fresh Engine and swaps it in atomically.
type Engine struct {
	grafo   *entities.Grafo
	match   *matcher.Matcher
	dosis   entities.TablaDosis
	razas   entities.TablaRazas
	sinonim entities.TablaSinonimos
}

// NewEngine builds the query snapshot from the loaded documents.
func NewEngine(docs *graph.Documentos) *Engine {
	return &Engine{
		grafo:   docs.Grafo,
		match:   matcher.New(docs.Grafo.Enfermedades, docs.Sinonimos),
		dosis:   docs.Dosis,
		razas:   docs.Razas,
		sinonim: docs.Sinonimos,
	}
}

// EnfermedadView is a disease candidate returned by search.
type EnfermedadView struct {
	Clave              string   `json:"clave"`
	Nombre             string   `json:"nombre"`
	Categoria          string   `json:"categoria"`
	Especie            string   `json:"especie"`
	Indicaciones       string   `json:"indicaciones"`
	Contraindicaciones string   `json:"contraindicaciones"`
	Notas              string   `json:"notas"`
	Medicamentos       int      `json:"medicamentos_asociados"`
	Score              float64  `json:"score"`
}

// Search maps a free-text symptom description to the best-matching diseases
// of a species. An empty slice is the legitimate "no disease matched" outcome.
func (e *Engine) Search(texto, especie string) []EnfermedadView {
	resultados := e.match.Search(texto, especie)

	views := make([]EnfermedadView, 0, len(resultados))
	for _, res := range resultados {
		enf := e.grafo.Enfermedades[res.Clave]
		views = append(views, EnfermedadView{
			Clave:              res.Clave,
			Nombre:             enf.Nombre,
			Categoria:          enf.Categoria,
			Especie:            enf.Especie,
			Indicaciones:       enf.Indicaciones,
			Contraindicaciones: enf.Contraindicaciones,
			Notas:              enf.Notas,
			Medicamentos:       len(enf.MedicamentosAsociados),
			Score:              res.Score,
		})
	}
	return views
}

// MedicamentoView is one ranked medication with its dose estimate.
type MedicamentoView struct {
	ID                string          `json:"id"`
	Nombre            string          `json:"nombre"`
	NumeroRegistro    string          `json:"numero_registro"`
	PrincipiosActivos []string        `json:"principios_activos"`
	Especie           string          `json:"especie"`
	Presentacion      string          `json:"presentacion"`
	Titular           string          `json:"titular"`
	Prescripcion      string          `json:"prescripcion"`
	Categoria         string          `json:"categoria"`
	Puntuacion        float64         `json:"puntuacion"`
	Dosis             *ResultadoDosis `json:"dosis,omitempty"`
}

// RankMedicamentos scores and orders the medications associated with a
// diagnosed disease for the patient profile, keeping the top 10. The dose
// estimate is attached when a weight is known. An empty slice means "no
// medication found"; an unknown disease key is an error.
func (e *Engine) RankMedicamentos(clave, especie string, peso *float64, raza string) ([]MedicamentoView, error) {
	puntuados, err := Rank(e.grafo, clave, especie, peso, raza, e.razas, e.dosis)
	if err != nil {
		return nil, err
	}
	if len(puntuados) > MaxMedicamentos {
		puntuados = puntuados[:MaxMedicamentos]
	}

	views := make([]MedicamentoView, 0, len(puntuados))
	for _, p := range puntuados {
		view := MedicamentoView{
			ID:                p.Medicamento.ID,
			Nombre:            p.Medicamento.Nombre,
			NumeroRegistro:    p.Medicamento.NumeroRegistro,
			PrincipiosActivos: p.Medicamento.PrincipiosActivos,
			Especie:           p.Medicamento.Especie,
			Presentacion:      p.Medicamento.Presentacion,
			Titular:           p.Medicamento.Titular,
			Prescripcion:      p.Medicamento.Prescripcion,
			Categoria:         p.Categoria,
			Puntuacion:        p.Puntuacion,
		}
		if peso != nil {
			dosis := EstimarDosis(p.Medicamento, peso, e.dosis)
			view.Dosis = &dosis
		}
		views = append(views, view)
	}
	return views, nil
}

// EstimarDosisMedicamento estimates a dose for a medication id.
func (e *Engine) EstimarDosisMedicamento(medID string, peso *float64) (ResultadoDosis, error) {
	med, ok := e.grafo.Medicamentos[medID]
	if !ok {
		return ResultadoDosis{}, ErrMedicamentoDesconocido
	}
	return EstimarDosis(med, peso, e.dosis), nil
}

// Medicamento returns a medication by id.
func (e *Engine) Medicamento(medID string) (entities.Medicamento, bool) {
	med, ok := e.grafo.Medicamentos[medID]
	return med, ok
}

// BuscarMedicamentos returns every medication whose name contains the search
// term, case-insensitively, ordered by id.
func (e *Engine) BuscarMedicamentos(nombre string) []entities.Medicamento {
	nombreLower := strings.ToLower(nombre)

	var resultados []entities.Medicamento
	for _, id := range sortedIDs(e.grafo.Medicamentos) {
		med := e.grafo.Medicamentos[id]
		if strings.Contains(strings.ToLower(med.Nombre), nombreLower) {
			resultados = append(resultados, med)
		}
	}
	return resultados
}

// EnfermedadTratada is one reverse-lookup result.
type EnfermedadTratada struct {
	Clave                  string   `json:"clave"`
	Nombre                 string   `json:"nombre"`
	Especie                string   `json:"especie"`
	PrincipiosCoincidentes []string `json:"principios_coincidentes"`
}

// EnfermedadesDeMedicamento lists the diseases a medication treats, straight
// from the relation list.
func (e *Engine) EnfermedadesDeMedicamento(medID string) ([]EnfermedadTratada, error) {
	if _, ok := e.grafo.Medicamentos[medID]; !ok {
		return nil, ErrMedicamentoDesconocido
	}

	var tratadas []EnfermedadTratada
	for _, rel := range e.grafo.Relaciones {
		if rel.HaciaMedicamento != medID {
			continue
		}
		enf := e.grafo.Enfermedades[rel.DesdeEnfermedad]
		tratadas = append(tratadas, EnfermedadTratada{
			Clave:                  rel.DesdeEnfermedad,
			Nombre:                 enf.Nombre,
			Especie:                enf.Especie,
			PrincipiosCoincidentes: rel.PrincipiosCoincidentes,
		})
	}
	return tratadas, nil
}

// ListarEnfermedades groups disease names by species, each list sorted. With a
// species filter only that species comes back.
func (e *Engine) ListarEnfermedades(especie string) map[string][]string {
	resultado := make(map[string][]string)
	for _, enf := range e.grafo.Enfermedades {
		if especie != "" && enf.Especie != especie {
			continue
		}
		resultado[enf.Especie] = append(resultado[enf.Especie], enf.Nombre)
	}
	for esp := range resultado {
		sort.Strings(resultado[esp])
	}
	return resultado
}

// Estadisticas summarizes the loaded graph.
type Estadisticas struct {
	TotalMedicamentos  int     `json:"total_medicamentos"`
	MedicamentosPerro  int     `json:"medicamentos_perro"`
	MedicamentosGato   int     `json:"medicamentos_gato"`
	TotalEnfermedades  int     `json:"total_enfermedades"`
	EnfermedadesPerro  int     `json:"enfermedades_perro"`
	EnfermedadesGato   int     `json:"enfermedades_gato"`
	TotalRelaciones    int     `json:"total_relaciones"`
	Cobertura          float64 `json:"cobertura"`
	TerminosIndexados  int     `json:"terminos_indexados"`
}

// Estadisticas returns the graph counters.
func (e *Engine) Estadisticas() Estadisticas {
	stats := Estadisticas{
		TotalMedicamentos: len(e.grafo.Medicamentos),
		TotalEnfermedades: len(e.grafo.Enfermedades),
		TotalRelaciones:   len(e.grafo.Relaciones),
		Cobertura:         e.grafo.Metadata.Cobertura,
		TerminosIndexados: e.match.Indice().Terminos(),
	}
	for _, med := range e.grafo.Medicamentos {
		switch med.Especie {
		case entities.EspeciePerro:
			stats.MedicamentosPerro++
		case entities.EspecieGato:
			stats.MedicamentosGato++
		}
	}
	for _, enf := range e.grafo.Enfermedades {
		switch enf.Especie {
		case entities.EspeciePerro:
			stats.EnfermedadesPerro++
		case entities.EspecieGato:
			stats.EnfermedadesGato++
		}
	}
	return stats
}

// ResultadoConsulta is the structured output of the full chat pipeline.
type ResultadoConsulta struct {
	Parametros   matcher.Parametros `json:"parametros"`
	Enfermedades []EnfermedadView   `json:"enfermedades"`
	Medicamentos []MedicamentoView  `json:"medicamentos"`
}

// ProcesarConsulta runs the complete pipeline over a free-text case: extract
// the patient profile, search diseases, rank medications per disease and
// attach dose estimates. Collaborators (UI, LLM wrapper) render the result.
func (e *Engine) ProcesarConsulta(texto string) (ResultadoConsulta, error) {
	params := matcher.ExtraerParametros(texto, e.razas, e.sinonim)

	resultado := ResultadoConsulta{Parametros: params}
	resultado.Enfermedades = e.Search(texto, params.Especie)

	vistos := make(map[string]bool)
	for _, enf := range resultado.Enfermedades {
		meds, err := e.RankMedicamentos(enf.Clave, params.Especie, params.Peso, params.Raza)
		if err != nil {
			return ResultadoConsulta{}, err
		}
		for _, med := range meds {
			if vistos[med.ID] {
				continue
			}
			vistos[med.ID] = true
			resultado.Medicamentos = append(resultado.Medicamentos, med)
		}
	}
	return resultado, nil
}

func sortedIDs(meds map[string]entities.Medicamento) []string {
	ids := make([]string, 0, len(meds))
	for id := range meds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
