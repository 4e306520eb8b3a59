package model

import (
	"encoding/json"
	"time"
)

const DefaultContactStatus = "Prospect"

type Contact struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Email              string            `json:"email"`
	Phone              string            `json:"phone"`
	Company            string            `json:"company"`
	Status             string            `json:"status"`
	Notes              string            `json:"notes"`
	InteractionHistory []json.RawMessage `json:"interactionHistory"`
	CreatedAt          time.Time         `json:"createdAt,omitzero"`
	UpdatedAt          time.Time         `json:"updatedAt,omitzero"`
	Archived           bool              `json:"archived"`
	ArchivedAt         time.Time         `json:"archivedAt,omitzero"`
}
