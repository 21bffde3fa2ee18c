package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"beacon/internal/models"
)

// timestampFormats lists the ISO-8601 shapes accepted for datetime fields.
var timestampFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize validates a raw payload against a business's field schema and
// returns the payload with every declared value coerced to its declared
// type. Undeclared keys pass through verbatim; the schema is additive, not
// exclusive. The function is pure: it never mutates its inputs.
func Normalize(payload map[string]models.Value, fields []models.FieldDefinition) (models.Payload, error) {
	var missing []string
	for _, field := range fields {
		if !field.Required {
			continue
		}
		if _, ok := payload[field.Name]; !ok {
			missing = append(missing, field.Name)
		}
	}
	if len(missing) > 0 {
		return nil, missingFieldsError(missing)
	}

	declared := make(map[string]models.FieldDefinition, len(fields))
	for _, field := range fields {
		declared[field.Name] = field
	}

	normalized := make(models.Payload, len(payload))
	for key, value := range payload {
		field, ok := declared[key]
		if !ok {
			normalized[key] = value
			continue
		}
		coerced, ok := coerceValue(value, field.DataType)
		if !ok {
			return nil, &models.ValidationError{
				Field:   key,
				Reason:  models.ReasonTypeMismatch,
				Message: fmt.Sprintf("field '%s' expects %s", key, field.DataType),
			}
		}
		normalized[key] = coerced
	}
	return normalized, nil
}

func missingFieldsError(names []string) error {
	if len(names) == 1 {
		return &models.ValidationError{
			Field:   names[0],
			Reason:  models.ReasonMissingField,
			Message: fmt.Sprintf("missing required field '%s'", names[0]),
		}
	}
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "'" + name + "'"
	}
	return &models.ValidationError{
		Field:   names[0],
		Reason:  models.ReasonMissingField,
		Message: "missing required fields " + strings.Join(quoted, ", "),
	}
}

// coerceValue converts a raw value to the declared field type. The second
// return is false when the value cannot represent the type.
func coerceValue(v models.Value, t models.FieldDataType) (models.Value, bool) {
	switch t {
	case models.FieldTypeString:
		if v.Kind() == models.KindString {
			return v, true
		}
		return models.Value{}, false

	case models.FieldTypeInteger:
		switch v.Kind() {
		case models.KindInt:
			return v, true
		case models.KindFloat:
			// integral floats only, and only when int64 can hold them;
			// booleans never count as integers
			f, _ := v.AsFloat()
			if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
				return models.IntValue(int64(f)), true
			}
		case models.KindString:
			s, _ := v.AsString()
			if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
				return models.IntValue(i), true
			}
		}
		return models.Value{}, false

	case models.FieldTypeFloat:
		switch v.Kind() {
		case models.KindFloat:
			return v, true
		case models.KindInt:
			i, _ := v.AsInt()
			return models.FloatValue(float64(i)), true
		case models.KindString:
			s, _ := v.AsString()
			if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return models.FloatValue(f), true
			}
		}
		return models.Value{}, false

	case models.FieldTypeBoolean:
		switch v.Kind() {
		case models.KindBool:
			return v, true
		case models.KindString:
			s, _ := v.AsString()
			switch strings.ToLower(strings.TrimSpace(s)) {
			case "true", "1", "yes":
				return models.BoolValue(true), true
			case "false", "0", "no":
				return models.BoolValue(false), true
			}
		}
		return models.Value{}, false

	case models.FieldTypeDatetime:
		switch v.Kind() {
		case models.KindTime:
			return v, true
		case models.KindString:
			s, _ := v.AsString()
			if ts, err := parseTimestamp(s); err == nil {
				return models.TimeValue(ts), true
			}
		}
		return models.Value{}, false
	}
	return models.Value{}, false
}

// parseTimestamp attempts to parse a timestamp string into time.Time
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
