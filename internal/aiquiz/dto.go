package aiquiz

type PreviewDTO struct {
	Theme          string  `json:"theme" validate:"required,oneof=mental_health judi_online"`
	Difficulty     string  `json:"difficulty" validate:"required,oneof=easy medium hard"`
	TotalQuestions int     `json:"total_questions" validate:"gte=0,lte=10"`
	ContextSummary *string `json:"context_summary,omitempty" validate:"omitempty,max=2000"`
}
