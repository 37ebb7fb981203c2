package matcher

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/vetmedica/vetmedica-api/graph/entities"
)

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Parametros holds what could be extracted from a free-text consultation.
type Parametros struct {
	Especie  string   `json:"especie"`
	Peso     *float64 `json:"peso,omitempty"`
	Edad     string   `json:"edad,omitempty"`
	Raza     string   `json:"raza,omitempty"`
	Sintomas []string `json:"sintomas"`
	Texto    string   `json:"texto"`
}

var (
	pesoRegex = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:kg|kilos?|kilogramos?)`)
	// edadRegex runs over folded text, so "años" arrives as "anos".
	edadRegex = regexp.MustCompile(`(\d+)\s*(anos|meses|semanas)`)
)

// ExtraerParametros pulls species, weight, age, breed and symptom terms out of
// a natural-language consultation. Species defaults to Perro unless a feline
// marker appears; breed detection is diacritic-insensitive against the loaded
// breed table; symptoms are the canonical terms of every synonym group with a
// member present in the text.
func ExtraerParametros(texto string, razas entities.TablaRazas, sinonimos entities.TablaSinonimos) Parametros {
	params := Parametros{
		Especie: entities.EspeciePerro,
		Texto:   texto,
	}

	textoLower := strings.ToLower(texto)

	if strings.Contains(textoLower, "gato") || strings.Contains(textoLower, "gata") ||
		strings.Contains(textoLower, "felino") || strings.Contains(textoLower, "felina") {
		params.Especie = entities.EspecieGato
	}

	if match := pesoRegex.FindStringSubmatch(textoLower); match != nil {
		if peso, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", "."), 64); err == nil && peso > 0 {
			params.Peso = &peso
		}
	}

	if match := edadRegex.FindStringSubmatch(Normalizar(textoLower)); match != nil {
		params.Edad = match[1] + " " + match[2]
	}

	// Sorted iteration keeps the extraction deterministic when several
	// entries could match.
	textoNormalizado := Normalizar(textoLower)
	for _, raza := range sortedKeys(razas) {
		if strings.Contains(textoNormalizado, Normalizar(raza)) {
			params.Raza = raza
			break
		}
	}

	for _, base := range sortedKeys(sinonimos.Grupos) {
		for _, sinonimo := range sinonimos.Grupos[base] {
			if strings.Contains(textoLower, sinonimo) {
				params.Sintomas = append(params.Sintomas, base)
				break
			}
		}
	}

	return params
}
