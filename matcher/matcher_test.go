package matcher

import (
	"reflect"
	"testing"
)

func newTestMatcher() *Matcher {
	return New(testEnfermedades(), testSinonimos())
}

func TestExpandIncludesTextAndTokens(t *testing.T) {
	m := newTestMatcher()

	terminos := m.Expand("vomita mucho")

	for _, want := range []string{"vomita mucho", "vomita", "mucho"} {
		if _, ok := terminos[want]; !ok {
			t.Errorf("expanded set missing %q", want)
		}
	}
}

func TestExpandSkipsShortTokens(t *testing.T) {
	m := newTestMatcher()

	terminos := m.Expand("le da la tos")
	if _, ok := terminos["le"]; ok {
		t.Error("2-rune token should not expand")
	}
	if _, ok := terminos["tos"]; !ok {
		t.Error("3-rune token should expand")
	}
}

func TestExpandSynonymContainment(t *testing.T) {
	m := newTestMatcher()

	// "se rasca" is a member of the "picor" group, contained in the text
	terminos := m.Expand("el perro se rasca sin parar")

	for _, want := range []string{"picor", "picazon", "se rasca", "prurito"} {
		if _, ok := terminos[want]; !ok {
			t.Errorf("synonym group not expanded, missing %q", want)
		}
	}
}

func TestExpandFuzzyTypo(t *testing.T) {
	m := newTestMatcher()

	// "diarea" is one edit from the canonical "diarrea": 1 - 1/7 > 0.75
	terminos := m.Expand("tiene diarea")

	for _, want := range []string{"diarrea", "heces blandas", "deposiciones liquidas"} {
		if _, ok := terminos[want]; !ok {
			t.Errorf("fuzzy expansion missing %q", want)
		}
	}
}

func TestExpandEmptyText(t *testing.T) {
	m := newTestMatcher()
	if terminos := m.Expand("   "); len(terminos) != 0 {
		t.Errorf("blank text expanded to %v", terminos)
	}
}

func TestSearchExactNameRanksFirst(t *testing.T) {
	m := newTestMatcher()

	resultados := m.Search("otitis externa", "Perro")
	if len(resultados) == 0 {
		t.Fatal("no results for exact disease name")
	}
	if resultados[0].Clave != "Otitis externa_Perro" {
		t.Errorf("top result = %s, want Otitis externa_Perro", resultados[0].Clave)
	}
	if resultados[0].Score < 1.0 {
		t.Errorf("exact-name score = %v, want >= 1.0", resultados[0].Score)
	}
}

func TestSearchIndexKeyScoresExactAndPartial(t *testing.T) {
	m := newTestMatcher()

	// "estomago" is indexed verbatim through the "gastro" keyword rule and
	// never appears in a disease name, so its score is exactly the exact
	// index hit plus the partial containment hit
	resultados := m.Search("estomago", "Perro")
	if len(resultados) == 0 {
		t.Fatal("no results for indexed keyword")
	}
	if resultados[0].Clave != "Gastroenteritis_Perro" {
		t.Fatalf("top result = %s, want Gastroenteritis_Perro", resultados[0].Clave)
	}
	if want := scoreIndice + scoreParcial; resultados[0].Score != want {
		t.Errorf("index-key score = %v, want %v", resultados[0].Score, want)
	}
}

func TestSearchSpeciesFilter(t *testing.T) {
	m := newTestMatcher()

	// Dermatitis atopica is a cat disease; a dog query must not return it
	for _, res := range m.Search("dermatitis", "Perro") {
		if res.Clave == "Dermatitis atopica_Gato" {
			t.Error("cat disease returned for dog query")
		}
	}

	resultados := m.Search("dermatitis", "Gato")
	if len(resultados) == 0 || resultados[0].Clave != "Dermatitis atopica_Gato" {
		t.Errorf("cat query results = %v", resultados)
	}
}

func TestSearchSynonymReachesDisease(t *testing.T) {
	m := newTestMatcher()

	// No token of the query appears in the disease name; only the synonym
	// group bridges "sacude la cabeza" to otitis
	resultados := m.Search("sacude la cabeza sin parar", "Perro")
	if len(resultados) == 0 {
		t.Fatal("synonym query found nothing")
	}
	if resultados[0].Clave != "Otitis externa_Perro" {
		t.Errorf("top result = %s, want Otitis externa_Perro", resultados[0].Clave)
	}
}

func TestSearchNoMatchIsEmptyNotError(t *testing.T) {
	m := newTestMatcher()

	resultados := m.Search("zzzz qqqq xxxx", "Perro")
	if len(resultados) != 0 {
		t.Errorf("nonsense query returned %v", resultados)
	}
}

func TestSearchCapsResults(t *testing.T) {
	m := newTestMatcher()

	if got := m.Search("otitis dermatitis gastroenteritis", "Perro"); len(got) > MaxResultados {
		t.Errorf("got %d results, cap is %d", len(got), MaxResultados)
	}
}

func TestSearchDeterministic(t *testing.T) {
	m := newTestMatcher()

	first := m.Search("se rasca y vomita", "Perro")
	for i := 0; i < 10; i++ {
		if again := m.Search("se rasca y vomita", "Perro"); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v != %v", i, again, first)
		}
	}
}

func TestSearchOrderedByScoreThenKey(t *testing.T) {
	m := newTestMatcher()

	resultados := m.Search("otitis gastroenteritis", "Perro")
	for i := 1; i < len(resultados); i++ {
		prev, cur := resultados[i-1], resultados[i]
		if cur.Score > prev.Score {
			t.Errorf("results not ordered by score: %v", resultados)
		}
		if cur.Score == prev.Score && cur.Clave < prev.Clave {
			t.Errorf("tied results not ordered by key: %v", resultados)
		}
	}
}
