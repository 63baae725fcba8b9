package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Vartype string

const (
	// Undefined marks polynomials which were given as plain mappings and do not
	// carry a variable domain yet.
	Undefined Vartype = ""
	Binary    Vartype = "BINARY"
	Spin      Vartype = "SPIN"
)

// ParseVartype accepts the names BINARY and SPIN in any case as well as the
// value sets {0,1} and {-1,1}. The empty string yields Undefined.
func ParseVartype(s string) (Vartype, error) {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "":
		return Undefined, nil
	case "BINARY", "{0,1}", "{1,0}":
		return Binary, nil
	case "SPIN", "{-1,1}", "{1,-1}":
		return Spin, nil
	}
	return Undefined, fmt.Errorf("%w: %q", ErrUnsupportedVartype, s)
}

// Validate returns an error for any value other than Binary and Spin.
func (v Vartype) Validate() error {
	switch v {
	case Binary, Spin:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedVartype, string(v))
}

// Values returns the two values a variable of this vartype can take, the
// lower one first.
func (v Vartype) Values() [2]int8 {
	if v == Spin {
		return [2]int8{-1, 1}
	}
	return [2]int8{0, 1}
}

// Contains reports whether val is a valid value for the vartype.
func (v Vartype) Contains(val int8) bool {
	vals := v.Values()
	return val == vals[0] || val == vals[1]
}

// UnmarshalJSON parses the vartype with ParseVartype.
func (v *Vartype) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseVartype(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
