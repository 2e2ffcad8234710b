package resume

import "strings"

var (
	skillsKeys     = []string{"Skills", "skills", "SKILLS"}
	experienceKeys = []string{"Experience", "experience", "EXPERIENCE"}
	educationKeys  = []string{"Education", "education"}
)

// Skills returns the skills section of a record or an empty sequence.
// Exact spellings are tried first in the order Skills, skills, SKILLS, then any
// key equal to "skills" ignoring case.
func Skills(record Value) Value {
	if v, ok := lookup(record, skillsKeys, false); ok {
		return v
	}
	return Sequence()
}

// Experience returns the experience section of a record or an empty mapping.
func Experience(record Value) Value {
	if v, ok := lookup(record, experienceKeys, false); ok {
		return v
	}
	return Mapping()
}

// Education returns the first non-empty education section or an empty mapping.
func Education(record Value) Value {
	if v, ok := lookup(record, educationKeys, true); ok {
		return v
	}
	return Mapping()
}

// Name resolves the candidate name from the top-level "Name" field or from
// the contact information block. It reports false when no name is present.
func Name(record Value) (string, bool) {
	if v, ok := record.Get("Name"); ok && v.Truthy() {
		return Normalize(v), true
	}

	contacts := []struct{ block, key string }{
		{"contactInformation", "name"},
		{"Contact Information", "Name"},
	}
	for _, c := range contacts {
		block, ok := record.Get(c.block)
		if !ok {
			continue
		}
		if v, ok := block.Get(c.key); ok && v.Truthy() {
			return Normalize(v), true
		}
	}

	return "", false
}

// SkillTerms flattens a skills section into individual skill strings.
// Strings inside a sequence are kept whole, a bare string is split on commas,
// mappings contribute their values and other scalars their textual form.
func SkillTerms(v Value) []string {
	var terms []string
	collectSkillTerms(v, true, &terms)
	return terms
}

func collectSkillTerms(v Value, top bool, terms *[]string) {
	switch v.Kind() {
	case KindNull:
		return
	case KindString:
		if !top {
			*terms = append(*terms, v.text)
			return
		}
		for _, part := range strings.Split(v.text, ",") {
			if part = strings.TrimSpace(part); part != "" {
				*terms = append(*terms, part)
			}
		}
	case KindSequence:
		for _, item := range v.items {
			if item.Kind() == KindMapping {
				*terms = append(*terms, Normalize(item))
				continue
			}
			collectSkillTerms(item, false, terms)
		}
	case KindMapping:
		for _, key := range v.keys {
			collectSkillTerms(v.fields[key], true, terms)
		}
	default:
		*terms = append(*terms, v.String())
	}
}

// lookup probes keys in order and then falls back to a case-insensitive match
// against the record keys. With truthy set, empty values are skipped.
func lookup(record Value, keys []string, truthy bool) (Value, bool) {
	if record.Kind() != KindMapping || len(keys) == 0 {
		return Value{}, false
	}

	accept := func(v Value) bool { return !truthy || v.Truthy() }

	for _, key := range keys {
		if v, ok := record.Get(key); ok && accept(v) {
			return v, true
		}
	}

	want := strings.ToLower(keys[0])
	for _, key := range record.Keys() {
		if strings.ToLower(key) != want {
			continue
		}
		if v := record.fields[key]; accept(v) {
			return v, true
		}
	}

	return Value{}, false
}
