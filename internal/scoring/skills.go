package scoring

import (
	"maps"
	"math"
	"strings"
)

var synonyms = map[string]string{
	"ml":         "machine learning",
	"ai":         "artificial intelligence",
	"nlp":        "natural language processing",
	"pytorch":    "torch",
	"tensorflow": "tf",
	"dl":         "deep learning",
	"spark":      "apache spark",
}

var mandatorySkills = []string{"python", "sql", "machine learning", "aws", "gcp", "azure"}

const (
	penaltyPerMissing = 0.1
	maxPenalty        = 0.5
)

// Synonyms returns a copy of the abbreviation table used by SkillMatch.
func Synonyms() map[string]string {
	return maps.Clone(synonyms)
}

// MandatorySkills returns a copy of the skills whose absence is penalized.
func MandatorySkills() []string {
	return append([]string(nil), mandatorySkills...)
}

// SkillMatch scores how many candidate skills show up in the job description.
//
// A skill matches when any word of it, after synonym substitution, is a
// substring of the lowercased description. The match count is divided by the
// number of mandatory skills, not by len(skills), so the base score may exceed
// the share of matched skills. Every mandatory skill missing from the
// lowercased skill list costs 0.1, at most 0.5. The result is never negative
// but is not capped at 1.
func SkillMatch(skills []string, jobDescription string) float64 {
	jd := strings.ToLower(jobDescription)

	matches := 0
	have := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		lower := strings.ToLower(skill)
		have[lower] = struct{}{}

		resolved := lower
		if canonical, ok := synonyms[lower]; ok {
			resolved = canonical
		}

		for _, word := range strings.Fields(resolved) {
			if strings.Contains(jd, word) {
				matches++
				break
			}
		}
	}

	base := float64(matches) / float64(max(1, len(mandatorySkills)))

	missing := 0
	for _, skill := range mandatorySkills {
		if _, ok := have[skill]; !ok {
			missing++
		}
	}
	penalty := math.Min(maxPenalty, penaltyPerMissing*float64(missing))

	return math.Max(0, base-penalty)
}
