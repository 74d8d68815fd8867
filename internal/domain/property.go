package domain

import (
	"slices"

	"hgdb/internal/apperror"
)

// Property is a key with an ordered list of values
type Property struct {
	Key   string   `json:"key"`
	Value []string `json:"value"`
}

// NewProperty creates a property, copying values
func NewProperty(key string, values ...string) Property {
	return Property{Key: key, Value: append([]string{}, values...)}
}

// Clone returns a deep copy of the property
func (p Property) Clone() Property {
	return Property{Key: p.Key, Value: slices.Clone(p.Value)}
}

// Equal reports whether two properties have the same key and values
func (p Property) Equal(other Property) bool {
	return p.Key == other.Key && slices.Equal(p.Value, other.Value)
}

// cloneProperties deep-copies a property list, preserving nil vs empty
func cloneProperties(props []Property) []Property {
	if props == nil {
		return nil
	}
	out := make([]Property, len(props))
	for i, p := range props {
		out[i] = p.Clone()
	}
	return out
}

// validateProperties enforces non-empty, unique keys within one owner
func validateProperties(field string, props []Property) error {
	seen := make(map[string]struct{}, len(props))
	for i, p := range props {
		if p.Key == "" {
			return apperror.Validationf("%s[%d]: key is required", field, i)
		}
		if _, dup := seen[p.Key]; dup {
			return apperror.Validationf("%s: duplicate property key %q", field, p.Key)
		}
		seen[p.Key] = struct{}{}
	}
	return nil
}

func propertiesEqual(a, b []Property) bool {
	return slices.EqualFunc(a, b, Property.Equal)
}
