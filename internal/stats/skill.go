package stats

import "github.com/verte-zerg/lowkey/internal/model"

// SkillLevel is the coarse assessment shown on the profile screen.
type SkillLevel int

// Skill levels, lowest first.
const (
	Beginner SkillLevel = iota
	Intermediate
	Advanced
	Expert
)

// String implements fmt.Stringer.
func (l SkillLevel) String() string {
	switch l {
	case Intermediate:
		return "Intermediate"
	case Advanced:
		return "Advanced"
	case Expert:
		return "Expert"
	default:
		return "Beginner"
	}
}

const skillWPMCeiling = 200.0

// SkillRating blends best WPM (normalized to 200 WPM), best accuracy and
// average accuracy into a 0-100 score.
func SkillRating(p model.Profile) float64 {
	normalizedWPM := p.BestWPM / skillWPMCeiling * 100
	rating := normalizedWPM*0.5 + p.BestAccuracy*0.3 + p.AverageAccuracy*0.2
	if rating > 100 {
		rating = 100
	}
	return rating
}

// AssessSkill maps a rating to a level. Ratings from SkillRating are capped at
// 100, so Expert is only reached by an uncapped rating.
func AssessSkill(rating float64) SkillLevel {
	switch {
	case rating > 100:
		return Expert
	case rating > 80:
		return Advanced
	case rating > 60:
		return Intermediate
	default:
		return Beginner
	}
}
