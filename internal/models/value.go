package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ValueKind discriminates the scalar kinds a payload value can hold.
type ValueKind int

const (
	KindRaw ValueKind = iota // undeclared structured JSON, kept verbatim
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	case KindTime:
		return "datetime"
	default:
		return "raw"
	}
}

// Value is a tagged-union scalar used for event payload values and rule
// condition operands. Decoding JSON yields String/Int/Float/Bool kinds for
// scalars; objects, arrays and null are preserved as Raw. Time values are
// only produced by schema coercion.
type Value struct {
	kind ValueKind
	str  string
	i    int64
	f    float64
	b    bool
	t    time.Time
	raw  json.RawMessage
}

func StringValue(s string) Value    { return Value{kind: KindString, str: s} }
func IntValue(i int64) Value        { return Value{kind: KindInt, i: i} }
func FloatValue(f float64) Value    { return Value{kind: KindFloat, f: f} }
func BoolValue(b bool) Value        { return Value{kind: KindBool, b: b} }
func TimeValue(t time.Time) Value   { return Value{kind: KindTime, t: t} }
func RawValue(r json.RawMessage) Value {
	return Value{kind: KindRaw, raw: append(json.RawMessage(nil), r...)}
}

// Kind reports which variant the value holds.
func (v Value) Kind() ValueKind { return v.kind }

func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }
func (v Value) AsInt() (int64, bool)     { return v.i, v.kind == KindInt }
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }
func (v Value) AsBool() (bool, bool)     { return v.b, v.kind == KindBool }
func (v Value) AsTime() (time.Time, bool) {
	return v.t, v.kind == KindTime
}

// Numeric returns the value as a float64 for either numeric kind.
func (v Value) Numeric() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// UnmarshalJSON decodes a JSON value into the matching scalar kind.
// Whole numbers decode to KindInt, fractional or exponent forms to KindFloat.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty JSON value")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
		return nil
	case '{', '[', 'n':
		*v = RawValue(trimmed)
		return nil
	}

	// Number
	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err != nil {
		return err
	}
	if i, err := num.Int64(); err == nil && !bytes.ContainsAny(trimmed, ".eE") {
		*v = IntValue(i)
		return nil
	}
	f, err := num.Float64()
	if err != nil {
		return err
	}
	*v = FloatValue(f)
	return nil
}

// MarshalJSON encodes the value back into its native JSON form.
// Times are encoded as RFC 3339 strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindFloat:
		return json.Marshal(v.f)
	case KindBool:
		return json.Marshal(v.b)
	case KindTime:
		return json.Marshal(v.t.Format(time.RFC3339))
	default:
		if len(v.raw) == 0 {
			return []byte("null"), nil
		}
		return v.raw, nil
	}
}

// Equal reports value equality. Int and Float compare numerically, so an
// integer 5 equals a float 5.0.
func (v Value) Equal(other Value) bool {
	if lf, lok := v.Numeric(); lok {
		rf, rok := other.Numeric()
		return rok && lf == rf
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindBool:
		return v.b == other.b
	case KindTime:
		return v.t.Equal(other.t)
	case KindRaw:
		return bytes.Equal(v.raw, other.raw)
	}
	return false
}

// Compare orders two values when an ordering is defined: numeric pairs,
// string pairs, and time pairs. The second return is false for any other
// combination.
func (v Value) Compare(other Value) (int, bool) {
	if lf, lok := v.Numeric(); lok {
		rf, rok := other.Numeric()
		if !rok {
			return 0, false
		}
		switch {
		case lf < rf:
			return -1, true
		case lf > rf:
			return 1, true
		default:
			return 0, true
		}
	}
	if v.kind != other.kind {
		return 0, false
	}
	switch v.kind {
	case KindString:
		switch {
		case v.str < other.str:
			return -1, true
		case v.str > other.str:
			return 1, true
		default:
			return 0, true
		}
	case KindTime:
		switch {
		case v.t.Before(other.t):
			return -1, true
		case v.t.After(other.t):
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

// Payload is the normalized shape of an ingested event body.
type Payload map[string]Value
