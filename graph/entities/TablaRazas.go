package entities

// Predisposicion marks a disease a breed is prone to, with a weight factor
// (typically 1-3) that boosts ranking.
type Predisposicion struct {
	Enfermedad string  `json:"enfermedad"`
	Factor     float64 `json:"factor"`
}

// Raza describes breed-specific knowledge: predispositions and active
// ingredients the breed should avoid.
type Raza struct {
	EnfermedadesPredisposicion []Predisposicion `json:"enfermedades_predisposicion"`
	MedicamentosPrecaucion     []string         `json:"medicamentos_precaucion"`
}

// TablaRazas is the persisted breed document, keyed by breed name.
type TablaRazas map[string]Raza
