// pkg/bybit/number.go
package bybit

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// The v5 stream encodes most numeric fields as JSON strings ("63948.50").
// The types below coerce either representation into Go numerics. Optional
// variants additionally treat "" and null as "field absent": the exchange
// uses the empty string as its no-value sentinel, so it must never be a
// parse error.

// Float is a float64 decoded from a JSON number or a numeric string.
type Float float64

func (f *Float) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("bybit: number from string %q: %w", s, err)
		}
		*f = Float(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// Uint is a uint64 decoded from a JSON number or a numeric string.
type Uint uint64

func (u *Uint) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("bybit: integer from string %q: %w", s, err)
		}
		*u = Uint(v)
		return nil
	}
	var v uint64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*u = Uint(v)
	return nil
}

// Int is an int64 decoded from a JSON number or a numeric string.
type Int int64

func (i *Int) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("bybit: integer from string %q: %w", s, err)
		}
		*i = Int(v)
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*i = Int(v)
	return nil
}

// OptFloat is an optional Float. Absent fields, null and "" decode to the
// zero value (Set == false).
type OptFloat struct {
	Value float64
	Set   bool
}

// SomeFloat builds a present OptFloat. Handy in tests and literals.
func SomeFloat(v float64) OptFloat { return OptFloat{Value: v, Set: true} }

func (o *OptFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = OptFloat{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*o = OptFloat{}
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("bybit: number from string %q: %w", s, err)
		}
		*o = OptFloat{Value: v, Set: true}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = OptFloat{Value: v, Set: true}
	return nil
}

func (o OptFloat) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// OptUint is an optional Uint with the same absence rules as OptFloat.
type OptUint struct {
	Value uint64
	Set   bool
}

// SomeUint builds a present OptUint.
func SomeUint(v uint64) OptUint { return OptUint{Value: v, Set: true} }

func (o *OptUint) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = OptUint{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*o = OptUint{}
			return nil
		}
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("bybit: integer from string %q: %w", s, err)
		}
		*o = OptUint{Value: v, Set: true}
		return nil
	}
	var v uint64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = OptUint{Value: v, Set: true}
	return nil
}

func (o OptUint) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
