package entities

import "strings"

// Species values used across the graph.
const (
	EspeciePerro = "Perro"
	EspecieGato  = "Gato"
	EspecieAmbas = "Ambas"
)

// EspecieCompatible reports whether a disease targeting especieEnfermedad can
// be returned for a query about especieConsulta. The "Ambas" sentinel matches
// every species.
func EspecieCompatible(especieEnfermedad, especieConsulta string) bool {
	enf := strings.ToLower(especieEnfermedad)
	if strings.Contains(enf, "ambas") || strings.Contains(enf, "ambos") {
		return true
	}
	return strings.Contains(enf, strings.ToLower(especieConsulta))
}
