package event

import (
	"encoding/json"
	"math"

	"github.com/pkg/errors"
)

type ValueKind uint8

const (
	Invalid ValueKind = iota
	Number
	Vector
	String
)

// Value is the payload of an event: a number, a fixed length vector or a
// string.
type Value struct {
	Kind ValueKind
	Num  float64
	Vec  []float64
	Str  string
}

func Num(f float64) Value    { return Value{Kind: Number, Num: f} }
func Vec(v ...float64) Value { return Value{Kind: Vector, Vec: v} }
func Str(s string) Value     { return Value{Kind: String, Str: s} }

// UnmarshalJSON accepts a bare number, an array of numbers or a string.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); nil != err {
		return err
	}
	switch r := raw.(type) {
	case float64:
		*v = Num(r)
	case string:
		*v = Str(r)
	case []interface{}:
		vec := make([]float64, len(r))
		for i, e := range r {
			f, ok := e.(float64)
			if !ok {
				return errors.Errorf("vector component %d is not a number", i)
			}
			vec[i] = f
		}
		*v = Vec(vec...)
	default:
		return errors.Errorf("unsupported event value %s", string(data))
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case Number:
		return json.Marshal(v.Num)
	case Vector:
		return json.Marshal(v.Vec)
	case String:
		return json.Marshal(v.Str)
	}
	return []byte("null"), nil
}

func lerp(a, b, p float64) float64 {
	return a + (b-a)*p
}

// Interpolate blends start toward end by p. Numbers and vectors lerp, with a
// bare number broadcast against a vector. Strings sharing a prefix reveal or
// retract the differing tail; unrelated strings switch once p reaches 1.
func Interpolate(start, end Value, p float64) (Value, bool) {
	switch {
	case start.Kind == Number && end.Kind == Number:
		return Num(lerp(start.Num, end.Num, p)), true
	case start.Kind == Vector && end.Kind == Vector:
		out := make([]float64, len(start.Vec))
		for i, s := range start.Vec {
			e := s
			if i < len(end.Vec) {
				e = end.Vec[i]
			}
			out[i] = lerp(s, e, p)
		}
		return Vec(out...), true
	case start.Kind == Vector && end.Kind == Number:
		out := make([]float64, len(start.Vec))
		for i, s := range start.Vec {
			out[i] = lerp(s, end.Num, p)
		}
		return Vec(out...), true
	case start.Kind == Number && end.Kind == Vector:
		out := make([]float64, len(end.Vec))
		for i, e := range end.Vec {
			out[i] = lerp(start.Num, e, p)
		}
		return Vec(out...), true
	case start.Kind == String && end.Kind == String:
		return Str(interpolateText(start.Str, end.Str, p)), true
	}
	return Value{}, false
}

func interpolateText(start, end string, p float64) string {
	s, e := []rune(start), []rune(end)
	if hasPrefix(s, e) {
		// shrinking: end is the kept prefix
		n := int(math.Floor(float64(len(s)-len(e)) * (1 - p)))
		return string(s[:len(e)+n])
	}
	if hasPrefix(e, s) {
		n := int(math.Floor(float64(len(e)-len(s)) * p))
		return string(e[:len(s)+n])
	}
	if p >= 1 {
		return end
	}
	return start
}

func hasPrefix(s, prefix []rune) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, r := range prefix {
		if s[i] != r {
			return false
		}
	}
	return true
}
