package matcher

import (
	"reflect"
	"testing"

	"github.com/vetmedica/vetmedica-api/graph/entities"
)

func testRazas() entities.TablaRazas {
	return entities.TablaRazas{
		"Labrador":        {},
		"Pastor Alemán":   {},
		"Bulldog Francés": {},
	}
}

func TestExtraerParametrosEspecie(t *testing.T) {
	tests := []struct {
		texto string
		want  string
	}{
		{"mi perro tiene fiebre", "Perro"},
		{"mi gata vomita", "Gato"},
		{"el felino no come", "Gato"},
		{"tiene diarrea desde ayer", "Perro"}, // default
	}

	for _, tt := range tests {
		params := ExtraerParametros(tt.texto, nil, entities.TablaSinonimos{})
		if params.Especie != tt.want {
			t.Errorf("ExtraerParametros(%q).Especie = %s, want %s", tt.texto, params.Especie, tt.want)
		}
	}
}

func TestExtraerParametrosPeso(t *testing.T) {
	tests := []struct {
		texto string
		want  float64
		none  bool
	}{
		{"pesa 12 kg", 12, false},
		{"pesa 4.5 kg", 4.5, false},
		{"pesa 4,5 kilos", 4.5, false},
		{"unos 30 kilogramos", 30, false},
		{"no sabemos cuanto pesa", 0, true},
	}

	for _, tt := range tests {
		params := ExtraerParametros(tt.texto, nil, entities.TablaSinonimos{})
		if tt.none {
			if params.Peso != nil {
				t.Errorf("ExtraerParametros(%q).Peso = %v, want nil", tt.texto, *params.Peso)
			}
			continue
		}
		if params.Peso == nil || *params.Peso != tt.want {
			t.Errorf("ExtraerParametros(%q).Peso = %v, want %v", tt.texto, params.Peso, tt.want)
		}
	}
}

func TestExtraerParametrosEdad(t *testing.T) {
	params := ExtraerParametros("perro de 3 años con cojera", nil, entities.TablaSinonimos{})
	if params.Edad != "3 anos" {
		t.Errorf("Edad = %q, want %q", params.Edad, "3 anos")
	}

	// Both spellings land on the same folded form
	params = ExtraerParametros("perra de 5 anos", nil, entities.TablaSinonimos{})
	if params.Edad != "5 anos" {
		t.Errorf("Edad = %q, want %q", params.Edad, "5 anos")
	}

	params = ExtraerParametros("cachorro de 8 semanas", nil, entities.TablaSinonimos{})
	if params.Edad != "8 semanas" {
		t.Errorf("Edad = %q, want %q", params.Edad, "8 semanas")
	}
}

func TestExtraerParametrosRaza(t *testing.T) {
	// Breed detection ignores diacritics in either direction
	params := ExtraerParametros("mi pastor aleman de 30 kg", testRazas(), entities.TablaSinonimos{})
	if params.Raza != "Pastor Alemán" {
		t.Errorf("Raza = %q, want %q", params.Raza, "Pastor Alemán")
	}

	params = ExtraerParametros("un labrador muy activo", testRazas(), entities.TablaSinonimos{})
	if params.Raza != "Labrador" {
		t.Errorf("Raza = %q, want %q", params.Raza, "Labrador")
	}

	params = ExtraerParametros("un mestizo sin papeles", testRazas(), entities.TablaSinonimos{})
	if params.Raza != "" {
		t.Errorf("Raza = %q, want empty", params.Raza)
	}
}

func TestExtraerParametrosSintomas(t *testing.T) {
	sinonimos := testSinonimos()

	params := ExtraerParametros("se rasca mucho y tiene heces blandas", nil, sinonimos)

	want := []string{"diarrea", "picor"}
	if !reflect.DeepEqual(params.Sintomas, want) {
		t.Errorf("Sintomas = %v, want %v", params.Sintomas, want)
	}
}

func TestExtraerParametrosFullConsulta(t *testing.T) {
	texto := "Mi labrador de 5 años y 28 kg se rasca mucho"
	params := ExtraerParametros(texto, testRazas(), testSinonimos())

	if params.Especie != "Perro" {
		t.Errorf("Especie = %s", params.Especie)
	}
	if params.Peso == nil || *params.Peso != 28 {
		t.Errorf("Peso = %v, want 28", params.Peso)
	}
	if params.Raza != "Labrador" {
		t.Errorf("Raza = %q", params.Raza)
	}
	if params.Edad != "5 anos" {
		t.Errorf("Edad = %q", params.Edad)
	}
	if !reflect.DeepEqual(params.Sintomas, []string{"picor"}) {
		t.Errorf("Sintomas = %v", params.Sintomas)
	}
	if params.Texto != texto {
		t.Errorf("Texto not preserved: %q", params.Texto)
	}
}
