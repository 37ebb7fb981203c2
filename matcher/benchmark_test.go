package matcher

import (
	"fmt"
	"testing"

	"github.com/vetmedica/vetmedica-api/graph/entities"
)

// benchmarkMatcher pads the shared fixtures with a few hundred diseases so
// the search path is measured against a realistically sized index.
func benchmarkMatcher() *Matcher {
	enfermedades := testEnfermedades()
	for i := 0; i < 300; i++ {
		nombre := fmt.Sprintf("Sindrome clinico %03d", i)
		enfermedades[entities.Clave(nombre, "Perro")] = entities.Enfermedad{
			Nombre:  nombre,
			Especie: "Perro",
		}
	}
	return New(enfermedades, testSinonimos())
}

func BenchmarkSearch(b *testing.B) {
	m := benchmarkMatcher()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m.Search("el perro sacude la cabeza y tiene diarea", "Perro")
	}
}

func BenchmarkExpand(b *testing.B) {
	m := benchmarkMatcher()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m.Expand("vomita mucho y se rasca las orejas")
	}
}

func BenchmarkNormalizar(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Normalizar("Infección del oído con picazón crónica")
	}
}
