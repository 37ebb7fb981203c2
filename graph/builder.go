package graph

import (
	"fmt"
	"sort"

	"github.com/vetmedica/vetmedica-api/graph/entities"
	"github.com/vetmedica/vetmedica-api/logging"
)

// BuildStats summarizes a graph build.
type BuildStats struct {
	TotalMedicamentos int     `json:"total_medicamentos"`
	TotalEnfermedades int     `json:"total_enfermedades"`
	TotalRelaciones   int     `json:"total_relaciones"`
	// Cobertura is the fraction of medications appearing in at least one relation.
	Cobertura float64 `json:"cobertura"`
}

// Build cross-references the medication and disease catalogs into the
// knowledge graph. For every disease, every medication of the same species is
// tested pairwise with IngredientsMatch; the first matching ingredient links
// the medication to the disease and emits a relation.
//
// Iteration is deterministic: medications are visited in id ascending order
// and diseases in key ascending order, so rebuilding from identical catalogs
// yields an identical relation set.
func Build(medicamentos []entities.Medicamento, enfermedades []entities.Enfermedad) (*entities.Grafo, BuildStats, error) {
	grafo := &entities.Grafo{
		Medicamentos: make(map[string]entities.Medicamento, len(medicamentos)),
		Enfermedades: make(map[string]entities.Enfermedad, len(enfermedades)),
	}

	for _, med := range medicamentos {
		if med.ID == "" {
			return nil, BuildStats{}, fmt.Errorf("medicamento sin id: %q", med.Nombre)
		}
		if _, dup := grafo.Medicamentos[med.ID]; dup {
			return nil, BuildStats{}, fmt.Errorf("id de medicamento duplicado: %s", med.ID)
		}
		grafo.Medicamentos[med.ID] = med
	}

	medIDs := make([]string, 0, len(grafo.Medicamentos))
	for id := range grafo.Medicamentos {
		medIDs = append(medIDs, id)
	}
	sort.Strings(medIDs)

	claves := make([]string, 0, len(enfermedades))
	porClave := make(map[string]entities.Enfermedad, len(enfermedades))
	for _, enf := range enfermedades {
		clave := entities.Clave(enf.Nombre, enf.Especie)
		if _, dup := porClave[clave]; dup {
			return nil, BuildStats{}, fmt.Errorf("enfermedad duplicada: %s", clave)
		}
		enf.ID = clave
		enf.MedicamentosAsociados = nil
		porClave[clave] = enf
		claves = append(claves, clave)
	}
	sort.Strings(claves)

	medsEnRelacion := make(map[string]bool)

	for _, clave := range claves {
		enf := porClave[clave]

		var asociados []string
		for _, medID := range medIDs {
			med := grafo.Medicamentos[medID]
			if med.Especie != enf.Especie {
				continue
			}

			coincidentes := matchIngredients(enf.PrincipiosRecomendados, med.PrincipiosActivos)
			if len(coincidentes) == 0 {
				continue
			}

			asociados = append(asociados, medID)
			medsEnRelacion[medID] = true
			grafo.Relaciones = append(grafo.Relaciones, entities.Relacion{
				DesdeEnfermedad:        clave,
				HaciaMedicamento:       medID,
				PrincipiosCoincidentes: coincidentes,
			})
		}

		enf.MedicamentosAsociados = asociados
		grafo.Enfermedades[clave] = enf
	}

	stats := BuildStats{
		TotalMedicamentos: len(grafo.Medicamentos),
		TotalEnfermedades: len(grafo.Enfermedades),
		TotalRelaciones:   len(grafo.Relaciones),
	}
	if stats.TotalMedicamentos > 0 {
		stats.Cobertura = float64(len(medsEnRelacion)) / float64(stats.TotalMedicamentos)
	}
	grafo.Metadata = entities.Metadata{
		TotalMedicamentos: stats.TotalMedicamentos,
		TotalEnfermedades: stats.TotalEnfermedades,
		TotalRelaciones:   stats.TotalRelaciones,
		Cobertura:         stats.Cobertura,
	}

	logging.Info("Knowledge graph built",
		"medicamentos", stats.TotalMedicamentos,
		"enfermedades", stats.TotalEnfermedades,
		"relaciones", stats.TotalRelaciones,
		"cobertura", fmt.Sprintf("%.1f%%", stats.Cobertura*100))

	return grafo, stats, nil
}

// matchIngredients returns the medication-side ingredients that matched a
// recommended ingredient. The inner scan short-circuits on the first hit per
// recommended ingredient, so the list records at least one entry when the
// medication qualifies but not necessarily every possible pairing.
func matchIngredients(recomendados, activos []string) []string {
	var coincidentes []string
	for _, rec := range recomendados {
		for _, act := range activos {
			if IngredientsMatch(rec, act) {
				coincidentes = append(coincidentes, act)
				break
			}
		}
	}
	return coincidentes
}
