// Package ranking scores résumé records against a job description and orders
// them by their weighted total.
package ranking

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ScoreRecord holds the component scores of a single candidate. The tags give
// the flat mapping used for export.
type ScoreRecord struct {
	Name            string  `json:"Name" mapstructure:"Name"`
	SkillScore      float64 `json:"Skill Score" mapstructure:"Skill Score"`
	ExperienceScore float64 `json:"Experience Score" mapstructure:"Experience Score"`
	EducationScore  float64 `json:"Education Score" mapstructure:"Education Score"`
	KeywordScore    float64 `json:"Keyword Match Score" mapstructure:"Keyword Match Score"`
	TotalScore      float64 `json:"Total Score" mapstructure:"Total Score"`

	// Index is the position of the record in the input given to Rank.
	Index int `json:"-" mapstructure:"-"`
}

// ToMap returns the flat mapping of the record: its name, the four component
// scores and the total.
func (r ScoreRecord) ToMap() (map[string]any, error) {
	out := make(map[string]any, 6)
	if err := mapstructure.Decode(r, &out); err != nil {
		return nil, fmt.Errorf("convert score record: %w", err)
	}
	return out, nil
}

// Components returns the component scores in display order.
func (r ScoreRecord) Components() []Component {
	return []Component{
		{Name: ComponentSkill, Score: r.SkillScore},
		{Name: ComponentExperience, Score: r.ExperienceScore},
		{Name: ComponentEducation, Score: r.EducationScore},
		{Name: ComponentKeyword, Score: r.KeywordScore},
	}
}

// Component names as shown in reports.
const (
	ComponentSkill      = "Skill"
	ComponentExperience = "Experience"
	ComponentEducation  = "Education"
	ComponentKeyword    = "Keyword Match"
)

type Component struct {
	Name  string
	Score float64
}
