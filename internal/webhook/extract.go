package webhook

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Candidate paths per canonical field, probed in order. The first present,
// non-empty scalar wins.
var (
	namePaths       = []string{"lead.name", "lead.full_name", "contact.name", "contact.full_name", "name"}
	phonePaths      = []string{"lead.phone", "lead.phone_number", "contact.phone", "contact.phone_number", "phone"}
	agentEmailPaths = []string{"agent.email", "assigned_to.email", "owner.email", "agentEmail"}
	externalIDPaths = []string{"lead.id", "lead.lead_id", "id", "external_id"}
	sourcePaths     = []string{"source", "lead.source"}
)

// Extracted is the canonical lead shape pulled from an arbitrary payload.
// Unresolved fields are empty.
type Extracted struct {
	CustomerName string
	Phone        string
	AgentEmail   string
	ExternalID   string
	Source       string
}

// Extract probes the candidate path tables against payload. defaultSource
// fills Source when no path resolves.
func Extract(payload map[string]any, defaultSource string) Extracted {
	out := Extracted{
		CustomerName: firstValue(payload, namePaths),
		Phone:        firstValue(payload, phonePaths),
		AgentEmail:   firstValue(payload, agentEmailPaths),
		ExternalID:   firstValue(payload, externalIDPaths),
		Source:       firstValue(payload, sourcePaths),
	}
	if out.Source == "" {
		out.Source = defaultSource
	}
	return out
}

func firstValue(payload map[string]any, paths []string) string {
	for _, path := range paths {
		if v, ok := lookup(payload, path); ok {
			if text := scalarText(v); text != "" {
				return text
			}
		}
	}
	return ""
}

// lookup walks a dotted path through nested objects.
func lookup(payload map[string]any, path string) (any, bool) {
	var current any = payload
	for _, segment := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[segment]
		if !ok {
			return nil, false
		}
	}
	return current, current != nil
}

// scalarText renders strings, numbers and booleans as trimmed text. Numbers
// never use exponent notation. Objects and arrays yield "".
func scalarText(v any) string {
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value)
	case json.Number:
		if _, err := value.Int64(); err == nil {
			return value.String()
		}
		f, err := value.Float64()
		if err != nil {
			return value.String()
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}
