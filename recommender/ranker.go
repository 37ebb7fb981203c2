package recommender

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vetmedica/vetmedica-api/graph/entities"
)

// Scoring terms of the ranker.
const (
	puntosBase           = 100.0 // medication is associated with the diagnosed disease
	puntosEspecie        = 50.0  // medication species equals the target species
	puntosPeso           = 30.0  // supplied weight fits the dose-category bounds
	puntosRazaSegura     = 20.0  // no active ingredient on the breed avoid-list
	puntosPredisposicion = 15.0  // multiplied by the breed-specific factor
)

// MedicamentoPuntuado is one ranked candidate.
type MedicamentoPuntuado struct {
	Medicamento entities.Medicamento `json:"medicamento"`
	Puntuacion  float64              `json:"puntuacion"`
	Categoria   string               `json:"categoria"`
}

// Rank scores the medications already associated with a disease for a patient
// profile and returns them ordered by score descending, ties broken by the
// association order of the graph. Weight and breed are optional; the species
// is required. Candidates never include medications outside the disease's
// association list, and a dangling med id in the graph is an error, not a
// zero-scored entry.
func Rank(grafo *entities.Grafo, clave, especie string, peso *float64, raza string,
	razas entities.TablaRazas, dosis entities.TablaDosis) ([]MedicamentoPuntuado, error) {

	enf, ok := grafo.Enfermedades[clave]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEnfermedadDesconocida, clave)
	}

	// An unrecognized breed simply contributes no bonus.
	datosRaza, hayRaza := razas[raza]

	puntuados := make([]MedicamentoPuntuado, 0, len(enf.MedicamentosAsociados))

	for _, medID := range enf.MedicamentosAsociados {
		med, ok := grafo.Medicamentos[medID]
		if !ok {
			return nil, fmt.Errorf("%w: %s (asociado a %s)", ErrMedicamentoDesconocido, medID, clave)
		}

		categoria := CategoriaMedicamento(med, dosis)
		puntuacion := puntosBase

		if med.Especie == especie {
			puntuacion += puntosEspecie
		}

		if peso != nil && pesoCompatible(*peso, categoria, dosis) {
			puntuacion += puntosPeso
		}

		if hayRaza {
			if !conflictoRaza(med, datosRaza) {
				puntuacion += puntosRazaSegura
			}
			for _, pred := range datosRaza.EnfermedadesPredisposicion {
				if strings.Contains(strings.ToLower(enf.Nombre), strings.ToLower(pred.Enfermedad)) {
					puntuacion += pred.Factor * puntosPredisposicion
				}
			}
		}

		puntuados = append(puntuados, MedicamentoPuntuado{
			Medicamento: med,
			Puntuacion:  puntuacion,
			Categoria:   categoria,
		})
	}

	sort.SliceStable(puntuados, func(i, j int) bool {
		return puntuados[i].Puntuacion > puntuados[j].Puntuacion
	})

	return puntuados, nil
}

// pesoCompatible applies the weight-bonus rule: inside the category bounds,
// boundary inclusive; a category without configured bounds is unrestricted.
func pesoCompatible(peso float64, categoria string, dosis entities.TablaDosis) bool {
	regla, ok := dosis.Reglas[categoria]
	if !ok {
		return true
	}
	if regla.PesoMinimoKg != nil && peso < *regla.PesoMinimoKg {
		return false
	}
	if regla.PesoMaximoKg != nil && peso > *regla.PesoMaximoKg {
		return false
	}
	return true
}

// conflictoRaza reports whether any active ingredient substring-matches an
// entry of the breed avoid-list.
func conflictoRaza(med entities.Medicamento, raza entities.Raza) bool {
	for _, principio := range med.PrincipiosActivos {
		principioLower := strings.ToLower(principio)
		for _, precaucion := range raza.MedicamentosPrecaucion {
			if strings.Contains(principioLower, strings.ToLower(precaucion)) {
				return true
			}
		}
	}
	return false
}
