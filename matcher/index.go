package matcher

import (
	"strings"

	"github.com/vetmedica/vetmedica-api/graph/entities"
)

// Index is the inverted term index: normalized term -> set of disease keys.
// It is a pure function of the disease set and the synonym document, built
// once after load and read-only afterwards.
type Index struct {
	terminos map[string]map[string]struct{}
}

// minTokenLen excludes short disease-name tokens ("de", "la", "con") from the index.
const minTokenLen = 4

// BuildIndex constructs the index from the loaded diseases and the synonym
// document. Indexing rules, each producing term -> disease-key entries:
//
//  1. the full lower-cased disease name,
//  2. every whitespace token of the name longer than 3 runes,
//  3. hand-authored keywords for every rule whose substring the name contains,
//  4. every member of a synonym group whose canonical term the name contains.
func BuildIndex(enfermedades map[string]entities.Enfermedad, sinonimos entities.TablaSinonimos) *Index {
	idx := &Index{terminos: make(map[string]map[string]struct{})}

	for clave, enf := range enfermedades {
		nombre := strings.ToLower(enf.Nombre)
		if nombre == "" {
			continue
		}

		idx.add(nombre, clave)
		for _, palabra := range strings.Fields(nombre) {
			if len([]rune(palabra)) >= minTokenLen {
				idx.add(palabra, clave)
			}
		}

		for _, regla := range sinonimos.PalabrasClave {
			if strings.Contains(nombre, strings.ToLower(regla.Contiene)) {
				for _, palabra := range regla.Palabras {
					idx.add(palabra, clave)
				}
			}
		}

		for base, grupo := range sinonimos.Grupos {
			if strings.Contains(nombre, strings.ToLower(base)) {
				idx.add(base, clave)
				for _, sinonimo := range grupo {
					idx.add(sinonimo, clave)
				}
			}
		}
	}

	return idx
}

func (idx *Index) add(termino, clave string) {
	termino = strings.ToLower(strings.TrimSpace(termino))
	if termino == "" {
		return
	}
	set, ok := idx.terminos[termino]
	if !ok {
		set = make(map[string]struct{})
		idx.terminos[termino] = set
	}
	set[clave] = struct{}{}
}

// Lookup returns the disease-key set indexed under an exact term, or nil.
func (idx *Index) Lookup(termino string) map[string]struct{} {
	return idx.terminos[termino]
}

// Terminos returns the number of distinct indexed terms.
func (idx *Index) Terminos() int {
	return len(idx.terminos)
}

// each walks every indexed term with its key set.
func (idx *Index) each(fn func(termino string, claves map[string]struct{})) {
	for termino, claves := range idx.terminos {
		fn(termino, claves)
	}
}
