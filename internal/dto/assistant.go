package dto

import "time"

// SummarizeRequest carries an optional owner question for the assistant.
type SummarizeRequest struct {
	Question string `json:"question" binding:"omitempty,max=500"`
}

// SummaryResponse carries the AI-generated business summary.
type SummaryResponse struct {
	Summary     string    `json:"summary"`
	GeneratedAt time.Time `json:"generatedAt"`
}
