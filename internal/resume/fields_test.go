package resume

import (
	"reflect"
	"testing"
)

func TestSkillsPriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "capitalized first", input: `{"SKILLS": "c", "skills": "b", "Skills": "a"}`, expect: "a"},
		{name: "lowercase before upper", input: `{"SKILLS": "c", "skills": "b"}`, expect: "b"},
		{name: "upper", input: `{"SKILLS": "c"}`, expect: "c"},
		{name: "mixed case fallback", input: `{"sKiLLs": "d"}`, expect: "d"},
		{name: "present but empty wins", input: `{"Skills": [], "skills": ["Go"]}`, expect: ""},
		{name: "missing", input: `{"Name": "Ann"}`, expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(Skills(mustParse(t, tt.input))); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestExtractorDefaults(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{`{}`, `[]`, `"text"`, `null`, `42`} {
		record := mustParse(t, raw)

		if got := Skills(record); got.Kind() != KindSequence || got.Len() != 0 {
			t.Fatalf("%s: expected empty sequence for skills, got %s", raw, got.Kind())
		}
		if got := Experience(record); got.Kind() != KindMapping || got.Len() != 0 {
			t.Fatalf("%s: expected empty mapping for experience, got %s", raw, got.Kind())
		}
		if got := Education(record); got.Kind() != KindMapping || got.Len() != 0 {
			t.Fatalf("%s: expected empty mapping for education, got %s", raw, got.Kind())
		}
		if _, ok := Name(record); ok {
			t.Fatalf("%s: expected no name", raw)
		}
	}
}

func TestExperiencePriority(t *testing.T) {
	record := mustParse(t, `{"EXPERIENCE": "upper", "experience": "lower"}`)
	if got := Normalize(Experience(record)); got != "lower" {
		t.Fatalf("expected lower, got %q", got)
	}
}

func TestEducationSkipsEmptyValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "capitalized", input: `{"Education": "MSc", "education": "BSc"}`, expect: "MSc"},
		{name: "empty capitalized falls through", input: `{"Education": "", "education": "BSc"}`, expect: "BSc"},
		{name: "both empty", input: `{"Education": {}, "education": []}`, expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(Education(mustParse(t, tt.input))); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
		ok     bool
	}{
		{name: "top level", input: `{"Name": "Ann", "contactInformation": {"name": "Other"}}`, expect: "Ann", ok: true},
		{name: "contact information", input: `{"contactInformation": {"name": "Bob"}}`, expect: "Bob", ok: true},
		{name: "spaced contact information", input: `{"Contact Information": {"Name": "Cid"}}`, expect: "Cid", ok: true},
		{name: "empty name falls through", input: `{"Name": "", "Contact Information": {"Name": "Dee"}}`, expect: "Dee", ok: true},
		{name: "contact block not a mapping", input: `{"contactInformation": "n/a"}`, ok: false},
		{name: "wrong nested key", input: `{"contactInformation": {"Name": "Eve"}}`, ok: false},
		{name: "nothing", input: `{"Skills": ["Go"]}`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Name(mustParse(t, tt.input))
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestSkillTerms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{name: "list", input: `["Python", "Machine Learning"]`, expect: []string{"Python", "Machine Learning"}},
		{name: "list items kept whole", input: `["Python, SQL"]`, expect: []string{"Python, SQL"}},
		{name: "comma separated string", input: `"Python, SQL ,, AWS"`, expect: []string{"Python", "SQL", "AWS"}},
		{name: "categories", input: `{"languages": ["Go", "Python"], "cloud": "AWS, GCP"}`, expect: []string{"Go", "Python", "AWS", "GCP"}},
		{name: "objects", input: `[{"name": "SQL", "level": "expert"}, {"description": "Spark"}]`, expect: []string{"SQL expert", "Spark"}},
		{name: "scalars", input: `[1, null, true]`, expect: []string{"1", "true"}},
		{name: "empty", input: `[]`, expect: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SkillTerms(mustParse(t, tt.input)); !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %#v, got %#v", tt.expect, got)
			}
		})
	}
}
