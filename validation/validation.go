// Package validation sanitizes user supplied query input before it
// reaches the recommendation engine.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vetmedica/vetmedica-api/interfaces"
)

// Compile-time interface compliance check
var _ interfaces.InputValidator = (*InputValidatorImpl)(nil)

const (
	// MaxInputLength is the maximum length of a free-text query
	MaxInputLength = 500
	// MinInputLength is the minimum length of a free-text query
	MinInputLength = 2
)

var (
	// validInputPattern accepts letters including Spanish diacritics,
	// digits, whitespace and common clinical punctuation.
	validInputPattern = regexp.MustCompile(`^[\p{L}\p{N}\s.,;:()¿?¡!'"/%+-]+$`)

	// dangerousPatterns are rejected outright regardless of the rest
	// of the input.
	dangerousPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<script`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)on\w+\s*=`),
		regexp.MustCompile(`(?i)(union|select|insert|delete|drop|update)\s`),
		regexp.MustCompile(`\.\./`),
		regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f]`),
	}
)

// InputValidatorImpl implements the InputValidator interface
type InputValidatorImpl struct{}

// NewInputValidator creates a new input validator
func NewInputValidator() *InputValidatorImpl {
	return &InputValidatorImpl{}
}

// ValidateInput checks a free-text query for length and content.
func (v *InputValidatorImpl) ValidateInput(input string) error {
	trimmed := strings.TrimSpace(input)

	if len(trimmed) < MinInputLength {
		return fmt.Errorf("la consulta es demasiado corta (mínimo %d caracteres)", MinInputLength)
	}

	if len(trimmed) > MaxInputLength {
		return fmt.Errorf("la consulta es demasiado larga (máximo %d caracteres)", MaxInputLength)
	}

	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(trimmed) {
			return fmt.Errorf("la consulta contiene caracteres no permitidos")
		}
	}

	if !validInputPattern.MatchString(trimmed) {
		return fmt.Errorf("la consulta contiene caracteres no permitidos")
	}

	return nil
}

// ValidateEspecie normalizes and validates a species path parameter.
// Accepted values are perro, gato and ambas (in either gender form).
func (v *InputValidatorImpl) ValidateEspecie(especie string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(especie))

	switch normalized {
	case "perro", "perros", "canino":
		return "Perro", nil
	case "gato", "gatos", "felino":
		return "Gato", nil
	case "ambas", "ambos":
		return "Ambas", nil
	}

	return "", fmt.Errorf("especie no reconocida: %q (use perro, gato o ambas)", especie)
}

// ValidatePeso parses an optional weight query parameter in kilograms.
// An empty value yields nil, meaning weight is unknown.
func (v *InputValidatorImpl) ValidatePeso(peso string) (*float64, error) {
	trimmed := strings.TrimSpace(peso)
	if trimmed == "" {
		return nil, nil
	}

	// Accept a Spanish decimal comma.
	trimmed = strings.ReplaceAll(trimmed, ",", ".")

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, fmt.Errorf("peso no válido: %q", peso)
	}

	if value <= 0 || value > 200 {
		return nil, fmt.Errorf("peso fuera de rango: %.1f kg (debe estar entre 0 y 200)", value)
	}

	return &value, nil
}
