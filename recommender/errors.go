// Package recommender ranks the medications associated with a diagnosed
// disease for a specific patient profile and estimates per-weight doses.
package recommender

import "errors"

// Unknown-entity errors: rank or dose calls with keys absent from the loaded
// graph surface these to the caller instead of returning a zero score.
var (
	ErrEnfermedadDesconocida  = errors.New("enfermedad desconocida")
	ErrMedicamentoDesconocido = errors.New("medicamento desconocido")
)
