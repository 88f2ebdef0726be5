package assessment

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Assessment is a skill-assessment result submitted by its owner.
// UserID is set from the verified caller identity at creation and never
// changes afterwards.
type Assessment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Score     float64   `json:"score"`
	SkillGaps []string  `json:"skillGaps"`
	CreatedAt time.Time `json:"createdAt"` // UTC
}

// NewAssessment contains information needed to record an Assessment.
// Score is a pointer so an explicit 0 passes the required check.
type NewAssessment struct {
	Score     *float64 `json:"score" validate:"required,gte=0,lte=100"`
	SkillGaps []string `json:"skillGaps" validate:"required,dive,required"`
}

func (na *NewAssessment) Validate(validate *validator.Validate) error {
	return validate.Struct(na)
}
