package entities

// Relacion is an edge linking a disease to a medication that shares at least
// one active ingredient with the disease's recommended list. Both ends always
// carry the same species.
type Relacion struct {
	DesdeEnfermedad        string   `json:"desde_enfermedad"`
	HaciaMedicamento       string   `json:"hacia_medicamento"`
	PrincipiosCoincidentes []string `json:"principios_coincidentes"`
}

// Metadata holds the aggregate counters written alongside the graph.
type Metadata struct {
	TotalMedicamentos int     `json:"total_medicamentos"`
	TotalEnfermedades int     `json:"total_enfermedades"`
	TotalRelaciones   int     `json:"total_relaciones"`
	Cobertura         float64 `json:"cobertura"`
}

// Grafo is the persisted knowledge-graph document.
type Grafo struct {
	Metadata     Metadata               `json:"metadata"`
	Medicamentos map[string]Medicamento `json:"medicamentos"`
	Enfermedades map[string]Enfermedad  `json:"enfermedades"`
	Relaciones   []Relacion             `json:"relaciones"`
}

// CatalogoMedicamentos is the raw medication catalog used to (re)build the graph.
type CatalogoMedicamentos struct {
	Medicamentos []Medicamento `json:"medicamentos"`
}

// CatalogoEnfermedades is the raw disease catalog used to (re)build the graph.
type CatalogoEnfermedades struct {
	Enfermedades []Enfermedad `json:"enfermedades"`
}
