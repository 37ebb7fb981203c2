package entities

// ReglaDosis holds the per-kilogram dosing parameters of one category.
// Nil weight bounds mean the category is unrestricted.
type ReglaDosis struct {
	MgPorKg      *float64 `json:"mg_por_kg,omitempty"`
	Frecuencia   string   `json:"frecuencia"`
	Via          string   `json:"via"`
	PesoMinimoKg *float64 `json:"peso_minimo_kg,omitempty"`
	PesoMaximoKg *float64 `json:"peso_maximo_kg,omitempty"`
}

// PalabraCategoria maps a keyword found in a medication name or ingredient to
// a dosing category. The table is ordered: the first matching keyword wins, so
// specific substances must appear before generic classes.
type PalabraCategoria struct {
	Palabra   string `json:"palabra"`
	Categoria string `json:"categoria"`
}

// TablaDosis is the persisted dose-rule document.
type TablaDosis struct {
	Categorias []PalabraCategoria    `json:"categorias"`
	Reglas     map[string]ReglaDosis `json:"reglas"`
}
