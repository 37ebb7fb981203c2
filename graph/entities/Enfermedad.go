package entities

// Enfermedad is a disease node of the knowledge graph. Its key is
// "<nombre>_<especie>", unique across the graph.
type Enfermedad struct {
	ID                 string   `json:"id"`
	Nombre             string   `json:"nombre"`
	Categoria          string   `json:"categoria"`
	Especie            string   `json:"especie"`
	Indicaciones       string   `json:"indicaciones"`
	Contraindicaciones string   `json:"contraindicaciones"`
	Notas              string   `json:"notas"`
	// PrincipiosRecomendados drives the graph build: a medication is linked
	// when one of its active ingredients matches one of these.
	PrincipiosRecomendados []string `json:"principios_recomendados"`
	// MedicamentosAsociados is derived during the build, never authored.
	MedicamentosAsociados []string `json:"medicamentos_asociados"`
}

// Clave builds the disease key from a name and species.
func Clave(nombre, especie string) string {
	return nombre + "_" + especie
}
