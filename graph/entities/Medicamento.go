package entities

// Medicamento is a single entry of the Cimavet veterinary medication registry.
// Records are immutable once the knowledge graph has been built.
type Medicamento struct {
	ID                  string   `json:"id"`
	Nombre              string   `json:"nombre"`
	NumeroRegistro      string   `json:"numero_registro"`
	PrincipiosActivos   []string `json:"principios_activos"`
	Especie             string   `json:"especie"`
	Presentacion        string   `json:"presentacion"`
	Titular             string   `json:"titular"`
	Prescripcion        string   `json:"prescripcion"`
	Estado              string   `json:"estado"`
	FechaComercializado string   `json:"fecha_comercializado"`
	// Categoria is the authored dosing category, if any. When empty the
	// category is inferred from the name and active ingredients.
	Categoria string `json:"categoria,omitempty"`
}
