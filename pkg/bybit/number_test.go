// pkg/bybit/number_test.go
package bybit

import (
	"encoding/json"
	"testing"
)

func TestFloatFromStringAndNumber(t *testing.T) {
	var v struct {
		A Float `json:"a"`
		B Float `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a":"63948.50","b":63948.5}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.A != 63948.5 || v.B != 63948.5 {
		t.Errorf("got %v / %v", v.A, v.B)
	}
}

func TestFloatRejectsGarbage(t *testing.T) {
	var v Float
	if err := json.Unmarshal([]byte(`"abc"`), &v); err == nil {
		t.Error("expected error for non-numeric string")
	}
	if err := json.Unmarshal([]byte(`""`), &v); err == nil {
		t.Error("expected error for empty string in required field")
	}
}

func TestUintFromString(t *testing.T) {
	var v Uint
	if err := json.Unmarshal([]byte(`"1740643200000"`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v != 1740643200000 {
		t.Errorf("got %v", v)
	}
	if err := json.Unmarshal([]byte(`"-1"`), &v); err == nil {
		t.Error("expected error for negative value")
	}
}

func TestOptFloatAbsence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want OptFloat
	}{
		{"string number", `"3.439"`, SomeFloat(3.439)},
		{"bare number", `-0.015895`, SomeFloat(-0.015895)},
		{"empty string", `""`, OptFloat{}},
		{"null", `null`, OptFloat{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var v OptFloat
			if err := json.Unmarshal([]byte(tc.in), &v); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if v != tc.want {
				t.Errorf("got %+v, want %+v", v, tc.want)
			}
		})
	}
}

func TestOptFloatMissingField(t *testing.T) {
	var v struct {
		A OptFloat `json:"a"`
	}
	if err := json.Unmarshal([]byte(`{}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.A.Set {
		t.Error("missing field reported as set")
	}
}

func TestOptUintAbsence(t *testing.T) {
	var v OptUint
	if err := json.Unmarshal([]byte(`""`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.Set {
		t.Error("empty string reported as set")
	}
	if err := json.Unmarshal([]byte(`"195377749067"`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v != SomeUint(195377749067) {
		t.Errorf("got %+v", v)
	}
}

func TestOptFloatMarshal(t *testing.T) {
	data, err := json.Marshal(struct {
		A OptFloat `json:"a"`
		B OptFloat `json:"b"`
	}{A: SomeFloat(1.5)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"a":1.5,"b":null}` {
		t.Errorf("got %s", data)
	}
}
