package matcher

import (
	"sort"
	"strings"

	"github.com/vetmedica/vetmedica-api/graph/entities"
)

// Scoring weights of the search. The scheme accumulates additively across
// every expanded term without a cap, so frequent tokens can dominate; the
// weights and threshold are tunables, kept here in one place.
const (
	scoreNombre  = 1.0 // expanded term contained in (or containing) the disease name
	scoreIndice  = 0.9 // expanded term is an exact index key for the disease
	scoreParcial = 0.7 // expanded term partially matches an index key for the disease

	// UmbralScore is the minimum accumulated score a disease needs to be returned.
	UmbralScore = 0.5
	// MaxResultados caps the candidate list handed back to callers.
	MaxResultados = 3

	// umbralSimilitud triggers synonym-group expansion on fuzzy token matches.
	umbralSimilitud = 0.75
	// minPalabraExpand excludes the shortest tokens from expansion.
	minPalabraExpand = 3
	// minPalabraFuzzy excludes short tokens from the fuzzy scan, where they
	// would collide with half the vocabulary.
	minPalabraFuzzy = 4
)

// Matcher scores diseases against free-text symptom descriptions.
type Matcher struct {
	enfermedades map[string]entities.Enfermedad
	sinonimos    entities.TablaSinonimos
	indice       *Index
}

// Resultado is one scored disease candidate.
type Resultado struct {
	Clave string
	Score float64
}

// New builds a matcher over the loaded graph and synonym document.
func New(enfermedades map[string]entities.Enfermedad, sinonimos entities.TablaSinonimos) *Matcher {
	return &Matcher{
		enfermedades: enfermedades,
		sinonimos:    sinonimos,
		indice:       BuildIndex(enfermedades, sinonimos),
	}
}

// Indice exposes the built index, mainly for diagnostics.
func (m *Matcher) Indice() *Index { return m.indice }

// Expand grows a raw query into its expanded term set: the whole trimmed
// text, every token longer than 2 runes, full synonym groups reached by
// substring containment, and full groups reached by fuzzy similarity against
// the canonical term or any member. Fuzzy matching absorbs typos and
// inflected forms that never hit the dictionary exactly.
func (m *Matcher) Expand(texto string) map[string]struct{} {
	terminos := make(map[string]struct{})

	texto = strings.ToLower(strings.TrimSpace(texto))
	if texto == "" {
		return terminos
	}
	terminos[texto] = struct{}{}

	palabras := strings.Fields(texto)
	for _, palabra := range palabras {
		if len([]rune(palabra)) > minPalabraExpand-1 {
			terminos[palabra] = struct{}{}
		}
	}

	for base, grupo := range m.sinonimos.Grupos {
		for _, sinonimo := range grupo {
			if strings.Contains(texto, sinonimo) || strings.Contains(sinonimo, texto) {
				m.addGrupo(terminos, base)
				break
			}
		}
	}

	for _, palabra := range palabras {
		if len([]rune(palabra)) < minPalabraFuzzy {
			continue
		}
		for base, grupo := range m.sinonimos.Grupos {
			if Ratio(palabra, base) > umbralSimilitud {
				m.addGrupo(terminos, base)
				continue
			}
			for _, sinonimo := range grupo {
				if Ratio(palabra, sinonimo) > umbralSimilitud {
					m.addGrupo(terminos, base)
					break
				}
			}
		}
	}

	return terminos
}

func (m *Matcher) addGrupo(terminos map[string]struct{}, base string) {
	terminos[base] = struct{}{}
	for _, sinonimo := range m.sinonimos.Grupos[base] {
		terminos[sinonimo] = struct{}{}
	}
}

// Search expands the query and scores every disease of a compatible species.
// Only candidates scoring at least UmbralScore survive; the top MaxResultados
// are returned ordered by score descending, ties broken by disease key. An
// empty result is a legitimate no-match outcome, not an error.
func (m *Matcher) Search(texto, especie string) []Resultado {
	terminos := m.Expand(texto)
	if len(terminos) == 0 {
		return nil
	}

	candidatos := make(map[string]float64)

	// Direct hits against disease names.
	for clave, enf := range m.enfermedades {
		nombre := strings.ToLower(enf.Nombre)
		for termino := range terminos {
			if strings.Contains(nombre, termino) || strings.Contains(termino, nombre) {
				candidatos[clave] += scoreNombre
			}
		}
	}

	// Exact index hits.
	for termino := range terminos {
		for clave := range m.indice.Lookup(termino) {
			candidatos[clave] += scoreIndice
		}
	}

	// Partial index hits. A term that is verbatim an index key also contains
	// it, so it accumulates both the exact and the partial score.
	for termino := range terminos {
		m.indice.each(func(terminoIndex string, claves map[string]struct{}) {
			if strings.Contains(terminoIndex, termino) || strings.Contains(termino, terminoIndex) {
				for clave := range claves {
					candidatos[clave] += scoreParcial
				}
			}
		})
	}

	resultados := make([]Resultado, 0, len(candidatos))
	for clave, score := range candidatos {
		if score < UmbralScore {
			continue
		}
		enf, ok := m.enfermedades[clave]
		if !ok || !entities.EspecieCompatible(enf.Especie, especie) {
			continue
		}
		resultados = append(resultados, Resultado{Clave: clave, Score: score})
	}

	sort.Slice(resultados, func(i, j int) bool {
		if resultados[i].Score != resultados[j].Score {
			return resultados[i].Score > resultados[j].Score
		}
		return resultados[i].Clave < resultados[j].Clave
	})

	if len(resultados) > MaxResultados {
		resultados = resultados[:MaxResultados]
	}
	return resultados
}
