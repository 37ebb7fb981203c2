package recommender

import (
	"fmt"
	"strings"

	"github.com/vetmedica/vetmedica-api/graph/entities"
)

// DosisNoCalculada is the placeholder returned whenever a dose cannot be
// estimated. The estimate is a heuristic, never a clinical dosing authority.
const DosisNoCalculada = "Consultar prospecto o veterinario"

// CategoriaGenerica is assigned when no keyword of the category table matches.
const CategoriaGenerica = "Generico"

// ResultadoDosis is a structured dose estimate.
type ResultadoDosis struct {
	Calculada    bool    `json:"calculada"`
	Categoria    string  `json:"categoria,omitempty"`
	MgPorKg      float64 `json:"mg_por_kg,omitempty"`
	DosisTotalMg float64 `json:"dosis_total_mg,omitempty"`
	Frecuencia   string  `json:"frecuencia,omitempty"`
	Via          string  `json:"via,omitempty"`
	Mensaje      string  `json:"mensaje,omitempty"`
}

// CategoriaMedicamento resolves the dosing category of a medication: the
// authored category when present, otherwise the first keyword of the ordered
// table found in the medication name or any active ingredient. Table order
// matters: a specific substance entry must precede its generic class.
func CategoriaMedicamento(med entities.Medicamento, tabla entities.TablaDosis) string {
	if med.Categoria != "" {
		return med.Categoria
	}

	nombre := strings.ToLower(med.Nombre)
	for _, pc := range tabla.Categorias {
		palabra := strings.ToLower(pc.Palabra)
		if strings.Contains(nombre, palabra) {
			return pc.Categoria
		}
		for _, principio := range med.PrincipiosActivos {
			if strings.Contains(strings.ToLower(principio), palabra) {
				return pc.Categoria
			}
		}
	}
	return CategoriaGenerica
}

// EstimarDosis computes a best-effort dose estimate. Without a positive
// weight, or without a rate for the resolved category, the non-computed
// placeholder comes back instead of a number.
func EstimarDosis(med entities.Medicamento, peso *float64, tabla entities.TablaDosis) ResultadoDosis {
	if peso == nil || *peso <= 0 {
		return ResultadoDosis{Mensaje: DosisNoCalculada}
	}

	categoria := CategoriaMedicamento(med, tabla)
	regla, ok := tabla.Reglas[categoria]
	if !ok || regla.MgPorKg == nil {
		return ResultadoDosis{Categoria: categoria, Mensaje: DosisNoCalculada}
	}

	return ResultadoDosis{
		Calculada:    true,
		Categoria:    categoria,
		MgPorKg:      *regla.MgPorKg,
		DosisTotalMg: *regla.MgPorKg * *peso,
		Frecuencia:   regla.Frecuencia,
		Via:          regla.Via,
		Mensaje:      fmt.Sprintf("%.1f mg totales (%.1f mg/kg)", *regla.MgPorKg**peso, *regla.MgPorKg),
	}
}
