package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vetmedica/vetmedica-api/graph/entities"
	"github.com/vetmedica/vetmedica-api/logging"
)

// Default document names under the data directory.
const (
	GrafoFile     = "grafo_conocimiento.json"
	DosisFile     = "dosis_medicamentos.json"
	RazasFile     = "razas_predisposiciones.json"
	SinonimosFile = "sinonimos_sintomas.json"

	CatalogoMedicamentosFile = "catalogo_medicamentos.json"
	CatalogoEnfermedadesFile = "catalogo_enfermedades.json"
)

// LoadError marks a required persisted document as missing or malformed.
// Load failures are fatal at startup: an empty graph would silently answer
// every query with zero results and mask the real failure.
type LoadError struct {
	Documento string
	Err       error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("carga de %s: %v", e.Documento, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Documentos bundles every persisted document a query process needs.
type Documentos struct {
	Grafo     *entities.Grafo
	Dosis     entities.TablaDosis
	Razas     entities.TablaRazas
	Sinonimos entities.TablaSinonimos
}

// Loader reads the persisted knowledge-graph documents from a data directory.
type Loader struct {
	dataDir string
}

// NewLoader creates a loader rooted at dataDir.
func NewLoader(dataDir string) *Loader {
	return &Loader{dataDir: dataDir}
}

// Load reads and validates every document. When the graph document is missing
// but the raw catalogs are present, the graph is built and persisted first
// (the offline batch path).
func (l *Loader) Load() (*Documentos, error) {
	grafo, err := l.loadGrafo()
	if err != nil {
		return nil, err
	}

	docs := &Documentos{Grafo: grafo}

	if err := readJSON(filepath.Join(l.dataDir, DosisFile), &docs.Dosis); err != nil {
		return nil, &LoadError{Documento: DosisFile, Err: err}
	}
	if err := validateDosis(docs.Dosis); err != nil {
		return nil, &LoadError{Documento: DosisFile, Err: err}
	}

	if err := readJSON(filepath.Join(l.dataDir, RazasFile), &docs.Razas); err != nil {
		return nil, &LoadError{Documento: RazasFile, Err: err}
	}

	if err := readJSON(filepath.Join(l.dataDir, SinonimosFile), &docs.Sinonimos); err != nil {
		return nil, &LoadError{Documento: SinonimosFile, Err: err}
	}
	if len(docs.Sinonimos.Grupos) == 0 {
		return nil, &LoadError{Documento: SinonimosFile, Err: errors.New("sin grupos de sinonimos")}
	}

	return docs, nil
}

// loadGrafo reads the graph document, rebuilding it from the catalogs when absent.
func (l *Loader) loadGrafo() (*entities.Grafo, error) {
	path := filepath.Join(l.dataDir, GrafoFile)

	var grafo entities.Grafo
	err := readJSON(path, &grafo)
	switch {
	case err == nil:
		// Loaded from disk.
	case errors.Is(err, os.ErrNotExist):
		rebuilt, buildErr := l.rebuild()
		if buildErr != nil {
			return nil, buildErr
		}
		grafo = *rebuilt
	default:
		return nil, &LoadError{Documento: GrafoFile, Err: err}
	}

	if err := validateGrafo(&grafo); err != nil {
		return nil, &LoadError{Documento: GrafoFile, Err: err}
	}
	return &grafo, nil
}

// rebuild runs the graph builder over the raw catalogs and persists the result.
func (l *Loader) rebuild() (*entities.Grafo, error) {
	logging.Info("Graph document missing, rebuilding from catalogs", "data_dir", l.dataDir)

	var meds entities.CatalogoMedicamentos
	if err := readJSON(filepath.Join(l.dataDir, CatalogoMedicamentosFile), &meds); err != nil {
		return nil, &LoadError{Documento: GrafoFile, Err: fmt.Errorf("sin grafo ni catalogo de medicamentos: %w", err)}
	}
	var enfs entities.CatalogoEnfermedades
	if err := readJSON(filepath.Join(l.dataDir, CatalogoEnfermedadesFile), &enfs); err != nil {
		return nil, &LoadError{Documento: GrafoFile, Err: fmt.Errorf("sin grafo ni catalogo de enfermedades: %w", err)}
	}

	grafo, _, err := Build(meds.Medicamentos, enfs.Enfermedades)
	if err != nil {
		return nil, &LoadError{Documento: GrafoFile, Err: err}
	}

	if err := SaveGrafo(filepath.Join(l.dataDir, GrafoFile), grafo); err != nil {
		return nil, &LoadError{Documento: GrafoFile, Err: err}
	}
	return grafo, nil
}

// SaveGrafo persists the graph with a write-temp-then-rename so concurrent
// readers never observe a partially written file.
func SaveGrafo(path string, grafo *entities.Grafo) error {
	data, err := json.MarshalIndent(grafo, "", "  ")
	if err != nil {
		return fmt.Errorf("serializando grafo: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".grafo-*.json")
	if err != nil {
		return fmt.Errorf("creando fichero temporal: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("escribiendo grafo: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cerrando fichero temporal: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("reemplazando grafo: %w", err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json invalido: %w", err)
	}
	return nil
}

// validateGrafo rejects malformed graphs instead of defaulting silently.
func validateGrafo(grafo *entities.Grafo) error {
	if len(grafo.Medicamentos) == 0 {
		return errors.New("sin medicamentos")
	}
	if len(grafo.Enfermedades) == 0 {
		return errors.New("sin enfermedades")
	}

	for id, med := range grafo.Medicamentos {
		if strings.TrimSpace(med.Nombre) == "" {
			return fmt.Errorf("medicamento %s sin nombre", id)
		}
		if med.Especie == "" {
			return fmt.Errorf("medicamento %s sin especie", id)
		}
		if len(med.PrincipiosActivos) == 0 {
			return fmt.Errorf("medicamento %s sin principios activos", id)
		}
		for _, p := range med.PrincipiosActivos {
			if strings.TrimSpace(p) == "" {
				return fmt.Errorf("medicamento %s con principio activo vacio", id)
			}
		}
	}

	for clave, enf := range grafo.Enfermedades {
		if strings.TrimSpace(enf.Nombre) == "" {
			return fmt.Errorf("enfermedad %s sin nombre", clave)
		}
		if enf.Especie == "" {
			return fmt.Errorf("enfermedad %s sin especie", clave)
		}
		for _, medID := range enf.MedicamentosAsociados {
			if _, ok := grafo.Medicamentos[medID]; !ok {
				return fmt.Errorf("enfermedad %s asociada a medicamento desconocido %s", clave, medID)
			}
		}
	}

	for _, rel := range grafo.Relaciones {
		enf, ok := grafo.Enfermedades[rel.DesdeEnfermedad]
		if !ok {
			return fmt.Errorf("relacion desde enfermedad desconocida %s", rel.DesdeEnfermedad)
		}
		med, ok := grafo.Medicamentos[rel.HaciaMedicamento]
		if !ok {
			return fmt.Errorf("relacion hacia medicamento desconocido %s", rel.HaciaMedicamento)
		}
		if enf.Especie != med.Especie {
			return fmt.Errorf("relacion %s -> %s cruza especies", rel.DesdeEnfermedad, rel.HaciaMedicamento)
		}
		if len(rel.PrincipiosCoincidentes) == 0 {
			return fmt.Errorf("relacion %s -> %s sin principios coincidentes", rel.DesdeEnfermedad, rel.HaciaMedicamento)
		}
	}

	return nil
}

func validateDosis(tabla entities.TablaDosis) error {
	for i, pc := range tabla.Categorias {
		if strings.TrimSpace(pc.Palabra) == "" || strings.TrimSpace(pc.Categoria) == "" {
			return fmt.Errorf("entrada de categoria %d incompleta", i)
		}
	}
	for categoria, regla := range tabla.Reglas {
		if regla.MgPorKg != nil && *regla.MgPorKg <= 0 {
			return fmt.Errorf("categoria %s con mg_por_kg no positivo", categoria)
		}
		if regla.PesoMinimoKg != nil && regla.PesoMaximoKg != nil &&
			*regla.PesoMinimoKg > *regla.PesoMaximoKg {
			return fmt.Errorf("categoria %s con limites de peso invertidos", categoria)
		}
	}
	return nil
}
