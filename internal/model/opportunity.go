package model

import "time"

// Pipeline stages, in order. StageClosedLost is the terminal lost stage and
// is excluded from pipeline value.
const (
	StageProspect    = "Prospecto"
	StageQualified   = "Calificado"
	StageProposal    = "Propuesta"
	StageNegotiation = "Negociacion"
	StageClosedWon   = "Cerrado/Ganado"
	StageClosedLost  = "Cerrado/Perdido"
)

// Stages lists the pipeline stages in order.
var Stages = []string{
	StageProspect,
	StageQualified,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

// ValidStage reports whether s is one of the fixed pipeline stages.
func ValidStage(s string) bool {
	for _, stage := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// ClampProbability bounds a closing probability to [0, 100].
func ClampProbability(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

type Opportunity struct {
	ID                 string    `json:"id"`
	ContactID          string    `json:"contactId,omitempty"` // weak reference, not validated
	Title              string    `json:"title"`
	Value              float64   `json:"value"`
	Probability        int       `json:"probability"`
	EstimatedCloseDate string    `json:"estimatedCloseDate,omitempty"`
	Description        string    `json:"description"`
	Stage              string    `json:"stage"`
	CreatedAt          time.Time `json:"createdAt,omitzero"`
	UpdatedAt          time.Time `json:"updatedAt,omitzero"`
	Archived           bool      `json:"archived"`
	ArchivedAt         time.Time `json:"archivedAt,omitzero"`
}
