package entities

// ReglaPalabraClave indexes hand-authored keywords to every disease whose name
// contains the given substring.
type ReglaPalabraClave struct {
	Contiene string   `json:"contiene"`
	Palabras []string `json:"palabras"`
}

// TablaSinonimos is the persisted synonym/keyword document. Grupos maps a
// canonical symptom term to its surface-form synonyms; PalabrasClave holds the
// disease-name keyword rules.
type TablaSinonimos struct {
	Grupos        map[string][]string `json:"grupos"`
	PalabrasClave []ReglaPalabraClave `json:"palabras_clave"`
}
