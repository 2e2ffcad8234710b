package ranking

import (
	"errors"
	"fmt"
	"math"

	"github.com/spigell/resume-ranker/internal/scoring"
)

// Weights defines how the component scores contribute to the total.
type Weights struct {
	Skill      float64 `mapstructure:"skill"`      // default: 0.4
	Experience float64 `mapstructure:"experience"` // default: 0.4
	Education  float64 `mapstructure:"education"`  // default: 0.1
	Keyword    float64 `mapstructure:"keyword"`    // default: 0.1
}

// DefaultWeights returns the weights of the reference formula:
// total = 0.4*skill + 0.4*experience + 0.1*education + 0.1*keyword.
func DefaultWeights() Weights {
	return Weights{
		Skill:      0.4,
		Experience: 0.4,
		Education:  0.1,
		Keyword:    0.1,
	}
}

// Validate rejects negative, non-finite and all-zero weights.
func (w Weights) Validate() error {
	values := map[string]float64{
		"skill":      w.Skill,
		"experience": w.Experience,
		"education":  w.Education,
		"keyword":    w.Keyword,
	}

	var errs []error
	for _, name := range []string{"skill", "experience", "education", "keyword"} {
		v := values[name]
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			errs = append(errs, fmt.Errorf("%s weight must be a non-negative number, got %v", name, v))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if w.Skill+w.Experience+w.Education+w.Keyword == 0 {
		return errors.New("at least one weight must be positive")
	}

	return nil
}

// Total combines the component scores and clamps the result to [0, 1].
func (w Weights) Total(r ScoreRecord) float64 {
	return scoring.Clamp(
		w.Skill*r.SkillScore +
			w.Experience*r.ExperienceScore +
			w.Education*r.EducationScore +
			w.Keyword*r.KeywordScore,
	)
}
