package resume

import "strings"

const (
	descriptionKey    = "description"
	jobTitleKey       = "jobTitle"
	jobTitleSpacedKey = "Job Title"
)

// Normalize flattens a value into a single text blob.
//
// Strings are returned unchanged and sequences are joined with single spaces.
// A mapping with a "description" key contributes only that value, one with a
// job title contributes only the title, any other mapping contributes all of
// its values in document order. Scalars use their textual form.
func Normalize(v Value) string {
	switch v.Kind() {
	case KindString:
		return v.text
	case KindSequence:
		parts := make([]string, 0, len(v.items))
		for _, item := range v.items {
			parts = append(parts, Normalize(item))
		}
		return strings.Join(parts, " ")
	case KindMapping:
		if description, ok := v.Get(descriptionKey); ok {
			return Normalize(description)
		}
		if v.Has(jobTitleKey) || v.Has(jobTitleSpacedKey) {
			return Normalize(jobTitle(v))
		}

		parts := make([]string, 0, len(v.keys))
		for _, key := range v.keys {
			parts = append(parts, Normalize(v.fields[key]))
		}
		return strings.Join(parts, " ")
	default:
		return v.String()
	}
}

// jobTitle prefers a non-empty "jobTitle" and falls back to "Job Title".
func jobTitle(m Value) Value {
	if title, ok := m.Get(jobTitleKey); ok && title.Truthy() {
		return title
	}
	if title, ok := m.Get(jobTitleSpacedKey); ok {
		return title
	}
	return Null()
}
