package records

import (
	"bytes"
	"encoding/json"
	"strings"

	pkgerrors "github.com/angelmondragon/leadflow-backend/pkg/errors"
	"github.com/angelmondragon/leadflow-backend/pkg/normalize"
	"github.com/angelmondragon/leadflow-backend/pkg/types"
)

type kind int

const (
	kindText kind = iota
	kindInt
	kindDecimal
	kindDate
	kindBool
	kindEnum
)

// field binds a JSON property to a column and says how to normalize it.
type field struct {
	JSON     string
	Column   string
	Kind     kind
	Required bool
	// Enum parses normalized enum input; only used with kindEnum.
	Enum func(string) (string, error)
	// Allowed lists the enum labels for error messages.
	Allowed []string
}

func text(jsonName, column string) field {
	return field{JSON: jsonName, Column: column, Kind: kindText}
}

func required(jsonName, column string) field {
	return field{JSON: jsonName, Column: column, Kind: kindText, Required: true}
}

func integer(jsonName, column string) field {
	return field{JSON: jsonName, Column: column, Kind: kindInt}
}

func money(jsonName, column string) field {
	return field{JSON: jsonName, Column: column, Kind: kindDecimal}
}

func date(jsonName, column string) field {
	return field{JSON: jsonName, Column: column, Kind: kindDate}
}

func boolean(jsonName, column string) field {
	return field{JSON: jsonName, Column: column, Kind: kindBool}
}

func enum[E ~string](jsonName, column string, parse func(string) (E, error), allowed []E) field {
	labels := make([]string, 0, len(allowed))
	for _, v := range allowed {
		labels = append(labels, string(v))
	}
	return field{
		JSON:   jsonName,
		Column: column,
		Kind:   kindEnum,
		Enum: func(raw string) (string, error) {
			v, err := parse(raw)
			return string(v), err
		},
		Allowed: labels,
	}
}

// decodeScalars reads a JSON object body and returns the schema fields that
// were present. Unknown properties are ignored.
func decodeScalars(body []byte, fields []field) (map[string]types.Scalar, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request body is required")
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil || raw == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request body must be a JSON object")
	}

	out := make(map[string]types.Scalar, len(fields))
	for _, f := range fields {
		msg, ok := raw[f.JSON]
		if !ok {
			continue
		}
		var s types.Scalar
		if err := json.Unmarshal(msg, &s); err != nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "%s must be a string, number, or boolean", f.JSON).
				WithDetails(map[string]string{"field": f.JSON})
		}
		out[f.JSON] = s
	}
	return out, nil
}

// columnValue converts a present scalar into its column value. Blank or
// unparseable numbers, dates and booleans become NULL; enums outside their
// set are rejected.
func columnValue(f field, s types.Scalar) (any, error) {
	raw := s.String()
	switch f.Kind {
	case kindInt:
		return nullable(normalize.ParseInt(raw)), nil
	case kindDecimal:
		return nullable(normalize.ParseDecimal(raw)), nil
	case kindDate:
		return nullable(normalize.ParseDate(raw)), nil
	case kindBool:
		return nullable(normalize.ParseBool(raw)), nil
	case kindEnum:
		if raw == "" {
			return nil, nil
		}
		v, err := f.Enum(raw)
		if err != nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "%s must be one of %s", f.JSON, strings.Join(f.Allowed, ", ")).
				WithDetails(map[string]any{"field": f.JSON, "allowed": f.Allowed})
		}
		return v, nil
	default:
		if f.Required {
			if raw == "" {
				return nil, requiredError(f)
			}
			return raw, nil
		}
		if s.Blank() {
			return nil, nil
		}
		return raw, nil
	}
}

// nullable keeps typed nil pointers from reaching the driver as non-nil
// interface values.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

func requiredError(f field) error {
	return pkgerrors.Newf(pkgerrors.CodeValidation, "%s is required", f.JSON).
		WithDetails(map[string]string{"field": f.JSON})
}

// bindCreate builds the column set for an insert. Required fields must be
// present and non-blank; absent optional fields are left to column defaults.
func bindCreate(scalars map[string]types.Scalar, fields []field) (map[string]any, error) {
	values := map[string]any{}
	for _, f := range fields {
		s, ok := scalars[f.JSON]
		if !ok || (f.Required && s.Blank()) {
			if f.Required {
				return nil, requiredError(f)
			}
			continue
		}
		v, err := columnValue(f, s)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		values[f.Column] = v
	}
	return values, nil
}

// bindPatch builds the update set from present fields. Explicit null or
// blank clears optional columns.
func bindPatch(scalars map[string]types.Scalar, fields []field) (map[string]any, error) {
	updates := map[string]any{}
	for _, f := range fields {
		s, ok := scalars[f.JSON]
		if !ok {
			continue
		}
		// A blank enum means "not provided", not "clear the column".
		if f.Kind == kindEnum && s.Blank() {
			continue
		}
		v, err := columnValue(f, s)
		if err != nil {
			return nil, err
		}
		updates[f.Column] = v
	}
	return updates, nil
}
