package pets

import "strings"

// Species define las especies soportadas. Los valores son los que viajan
// por el API remoto.
// @Enum Perro, Gato
type Species string

const (
	SpeciesDog Species = "Perro"
	SpeciesCat Species = "Gato"
)

// Gender define el género de la mascota.
// @Enum Macho, Hembra
type Gender string

const (
	GenderMale   Gender = "Macho"
	GenderFemale Gender = "Hembra"
)

// Classification es el tramo de edad derivado (ver Classify).
// @Enum Cachorro, Adulto, Senior
type Classification string

const (
	ClassificationYoung  Classification = "Cachorro"
	ClassificationAdult  Classification = "Adulto"
	ClassificationSenior Classification = "Senior"
)

// DefaultPhoto se muestra cuando el registro no trae foto.
const DefaultPhoto = "/default-pet.jpg"

// maxAge es la edad máxima admitida por especie, en años.
var maxAge = map[Species]float64{
	SpeciesDog: 20,
	SpeciesCat: 25,
}

// MaxAge devuelve el tope de edad para la especie (false si no es conocida).
func MaxAge(s Species) (float64, bool) {
	v, ok := maxAge[s]
	return v, ok
}

func (s Species) Valid() bool {
	_, ok := maxAge[s]
	return ok
}

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// ParseSpecies acepta el valor tal cual viaja ("Perro") sin importar mayúsculas.
func ParseSpecies(s string) (Species, bool) {
	s = strings.TrimSpace(s)
	for sp := range maxAge {
		if strings.EqualFold(string(sp), s) {
			return sp, true
		}
	}
	return "", false
}

func ParseGender(s string) (Gender, bool) {
	s = strings.TrimSpace(s)
	switch {
	case strings.EqualFold(s, string(GenderMale)):
		return GenderMale, true
	case strings.EqualFold(s, string(GenderFemale)):
		return GenderFemale, true
	}
	return "", false
}

// Pet es el registro de adopción, única entidad del catálogo.
type Pet struct {
	ID string // asignado por el store remoto, inmutable

	Name    string
	Species Species
	Gender  Gender
	Age     float64 // años, admite fracciones (0.5 = seis meses)

	Photo       string // URL externa o data URI; vacío => DefaultPhoto
	Description string

	// Classification la persiste el store en cada escritura.
	// Puede venir vacía en registros viejos: usar EffectiveClassification.
	Classification Classification
}

// EffectiveClassification devuelve la clasificación persistida o, si falta,
// la deriva de la edad.
func (p Pet) EffectiveClassification() Classification {
	if p.Classification != "" {
		return p.Classification
	}
	return Classify(p.Age)
}

func (p Pet) PhotoOrDefault() string {
	if strings.TrimSpace(p.Photo) == "" {
		return DefaultPhoto
	}
	return p.Photo
}

// Classify deriva el tramo de edad: <1 cachorro, <7 adulto, resto senior.
func Classify(age float64) Classification {
	switch {
	case age < 1:
		return ClassificationYoung
	case age < 7:
		return ClassificationAdult
	default:
		return ClassificationSenior
	}
}
