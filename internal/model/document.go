package model

import "encoding/json"

// Document is the whole persisted store: one JSON file with four top-level
// collections. Interactions are carried as opaque records and never
// interpreted by any endpoint.
type Document struct {
	Contacts      []Contact         `json:"contacts"`
	Opportunities []Opportunity     `json:"opportunities"`
	Tasks         []Task            `json:"tasks"`
	Interactions  []json.RawMessage `json:"interactions"`
}

// EmptyDocument returns the default document used when the backing file is
// missing or unreadable.
func EmptyDocument() *Document {
	return &Document{
		Contacts:      []Contact{},
		Opportunities: []Opportunity{},
		Tasks:         []Task{},
		Interactions:  []json.RawMessage{},
	}
}
