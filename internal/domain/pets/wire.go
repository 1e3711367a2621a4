package pets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record es la forma JSON plana del registro en el API remoto.
// El store remoto no es estricto con los tipos: ids numéricos y edades
// como texto ("5") llegan en datos reales, así que se aceptan ambos.
type Record struct {
	ID             LooseString `json:"id,omitempty"`
	Name           string      `json:"name"`
	Type           string      `json:"type"`
	Gender         string      `json:"gender"`
	Age            LooseNumber `json:"age"`
	Photo          string      `json:"photo"`
	Description    string      `json:"description"`
	Classification string      `json:"classification,omitempty"`
}

func RecordFrom(p Pet) Record {
	return Record{
		ID:             LooseString(p.ID),
		Name:           p.Name,
		Type:           string(p.Species),
		Gender:         string(p.Gender),
		Age:            LooseNumber(p.Age),
		Photo:          p.Photo,
		Description:    p.Description,
		Classification: string(p.Classification),
	}
}

// Pet no valida: lo que el store devuelve es la verdad.
func (r Record) Pet() Pet {
	return Pet{
		ID:             string(r.ID),
		Name:           r.Name,
		Species:        Species(r.Type),
		Gender:         Gender(r.Gender),
		Age:            float64(r.Age),
		Photo:          r.Photo,
		Description:    r.Description,
		Classification: Classification(r.Classification),
	}
}

// LooseString decodifica "12" o 12 como "12".
type LooseString string

func (s *LooseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = LooseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be string or number: %w", err)
	}
	*s = LooseString(n.String())
	return nil
}

// LooseNumber decodifica 5, 0.5, "5" o "" (=0).
type LooseNumber float64

func (n *LooseNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		v = strings.TrimSpace(v)
		if v == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("age %q is not a number", v)
		}
		*n = LooseNumber(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = LooseNumber(f)
	return nil
}
