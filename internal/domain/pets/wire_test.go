package pets

import (
	"encoding/json"
	"testing"
)

func TestRecord_DecodesLooseTypes(t *testing.T) {
	var r Record
	raw := `{"id": 12, "name": "Rex", "type": "Perro", "gender": "Macho", "age": "3.5", "photo": "", "description": ""}`
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	p := r.Pet()
	if p.ID != "12" || p.Age != 3.5 || p.Species != SpeciesDog {
		t.Fatalf("unexpected pet %+v", p)
	}
}

func TestRecord_RejectsNonNumericAge(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`{"age": "viejo"}`), &r); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRecord_EncodesIDAsString(t *testing.T) {
	b, err := json.Marshal(RecordFrom(Pet{ID: "9", Name: "Luna", Age: 1}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	if m["id"] != "9" || m["age"] != float64(1) {
		t.Fatalf("unexpected json %s", b)
	}
}
