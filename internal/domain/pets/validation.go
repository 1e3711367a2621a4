package pets

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Nombres de campo tal como los usa el formulario y el JSON del API.
const (
	FieldName    = "name"
	FieldSpecies = "type"
	FieldGender  = "gender"
	FieldAge     = "age"
)

const (
	msgNameRequired    = "El nombre es obligatorio."
	msgSpeciesRequired = "El tipo es obligatorio."
	msgGenderRequired  = "El género es obligatorio."
	msgAgeRequired     = "La edad es obligatoria."
	msgAgeInvalid      = "La edad debe ser un número mayor o igual a 0."
)

// Draft es el formulario de alta/edición tal como lo tipea el usuario.
// Age queda como texto para poder reportar "no es un número".
type Draft struct {
	Name        string `json:"name"`
	Species     string `json:"type"`
	Gender      string `json:"gender"`
	Age         string `json:"age"`
	Photo       string `json:"photo"`
	Description string `json:"description"`
}

// FieldErrors mapea campo => mensaje. Campo ausente = válido.
type FieldErrors map[string]string

func (fe FieldErrors) Valid() bool { return len(fe) == 0 }

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid pet: " + strings.Join(parts, "; ")
}

// Validate evalúa cada campo de forma independiente (sin cortocircuito).
// Se re-ejecuta en cada cambio de campo y de nuevo antes de enviar.
func Validate(d Draft) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(d.Name) == "" {
		errs[FieldName] = msgNameRequired
	}

	species, speciesOK := ParseSpecies(d.Species)
	if !speciesOK {
		errs[FieldSpecies] = msgSpeciesRequired
	}

	if _, ok := ParseGender(d.Gender); !ok {
		errs[FieldGender] = msgGenderRequired
	}

	if msg := validateAge(d.Age, species, speciesOK); msg != "" {
		errs[FieldAge] = msg
	}

	return errs
}

func validateAge(raw string, species Species, speciesKnown bool) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return msgAgeRequired
	}
	age, err := ParseAge(raw)
	if err != nil || age < 0 {
		return msgAgeInvalid
	}
	if !speciesKnown {
		return ""
	}
	if limit, ok := MaxAge(species); ok && age > limit {
		return fmt.Sprintf("La edad máxima para un %s es %g años.", strings.ToLower(string(species)), limit)
	}
	return ""
}

// ParseAge convierte el texto de edad. NaN e Inf no son edades.
func ParseAge(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("age %q is not a finite number", raw)
	}
	return v, nil
}

// SanitizeAge deja solo dígitos y '.', igual que el filtro del input de edad.
func SanitizeAge(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Pet valida el borrador y lo convierte en registro (sin ID).
// La clasificación se calcula acá para feedback inmediato; el store
// remoto devuelve la autoritativa.
func (d Draft) Pet() (Pet, FieldErrors) {
	if errs := Validate(d); !errs.Valid() {
		return Pet{}, errs
	}

	species, _ := ParseSpecies(d.Species)
	gender, _ := ParseGender(d.Gender)
	age, _ := ParseAge(d.Age)

	return Pet{
		Name:           strings.TrimSpace(d.Name),
		Species:        species,
		Gender:         gender,
		Age:            age,
		Photo:          strings.TrimSpace(d.Photo),
		Description:    strings.TrimSpace(d.Description),
		Classification: Classify(age),
	}, nil
}

// DraftFrom arma el formulario de edición a partir de un registro existente.
func DraftFrom(p Pet) Draft {
	return Draft{
		Name:        p.Name,
		Species:     string(p.Species),
		Gender:      string(p.Gender),
		Age:         strconv.FormatFloat(p.Age, 'f', -1, 64),
		Photo:       p.Photo,
		Description: p.Description,
	}
}
