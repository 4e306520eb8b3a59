package repository

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexacrm/internal/model"
	"nexacrm/internal/store"
	"nexacrm/pkg/metrics"
)

// local-part "@" domain "." tld, no whitespace
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactCreate enumerates the client-settable fields of a new contact.
// Server-managed fields (id, timestamps, archive state) are not settable.
type ContactCreate struct {
	Name               string            `json:"name"`
	Email              string            `json:"email"`
	Phone              string            `json:"phone"`
	Company            string            `json:"company"`
	Status             string            `json:"status"`
	Notes              string            `json:"notes"`
	InteractionHistory []json.RawMessage `json:"interactionHistory"`
}

// ContactUpdate is a partial update; nil fields are left unchanged.
type ContactUpdate struct {
	Name               *string            `json:"name"`
	Email              *string            `json:"email"`
	Phone              *string            `json:"phone"`
	Company            *string            `json:"company"`
	Status             *string            `json:"status"`
	Notes              *string            `json:"notes"`
	InteractionHistory *[]json.RawMessage `json:"interactionHistory"`
}

type ContactRepository struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewContactRepository(s *store.Store, logger *zap.Logger) *ContactRepository {
	return &ContactRepository{store: s, logger: logger, now: time.Now}
}

// List returns contacts in insertion order, skipping archived ones unless
// includeArchived is set.
func (r *ContactRepository) List(includeArchived bool) ([]model.Contact, error) {
	var out []model.Contact
	err := r.store.View(func(doc *model.Document) error {
		out = make([]model.Contact, 0, len(doc.Contacts))
		for _, c := range doc.Contacts {
			if includeArchived || !c.Archived {
				out = append(out, c)
			}
		}
		return nil
	})
	return out, err
}

func (r *ContactRepository) Create(in ContactCreate) (model.Contact, error) {
	if in.Email != "" && !emailPattern.MatchString(in.Email) {
		return model.Contact{}, &ValidationError{Field: "email", Reason: "not a valid email address"}
	}

	now := r.now()
	contact := model.Contact{
		ID:                 uuid.NewString(),
		Name:               in.Name,
		Email:              in.Email,
		Phone:              in.Phone,
		Company:            in.Company,
		Status:             in.Status,
		Notes:              in.Notes,
		InteractionHistory: in.InteractionHistory,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if contact.Status == "" {
		contact.Status = model.DefaultContactStatus
	}
	if contact.InteractionHistory == nil {
		contact.InteractionHistory = []json.RawMessage{}
	}

	err := r.store.Update(func(doc *model.Document) error {
		if in.Email != "" && activeEmailTaken(doc, in.Email, "") {
			return &ConflictError{Field: "email", Value: in.Email}
		}
		doc.Contacts = append(doc.Contacts, contact)
		return nil
	})
	if err != nil {
		return model.Contact{}, err
	}

	metrics.IncrementEntityMutation("contact", "create")
	r.logger.Info("contact created",
		zap.String("contact_id", contact.ID),
		zap.String("email", contact.Email),
	)
	return contact, nil
}

func (r *ContactRepository) Update(id string, in ContactUpdate) (model.Contact, error) {
	var updated model.Contact
	err := r.store.Update(func(doc *model.Document) error {
		i := findContact(doc, id)
		if i < 0 {
			return &NotFoundError{Entity: "contact", ID: id}
		}
		c := &doc.Contacts[i]

		// email is revalidated and rechecked for uniqueness only when it
		// actually changes
		if in.Email != nil && !strings.EqualFold(*in.Email, c.Email) {
			if *in.Email != "" && !emailPattern.MatchString(*in.Email) {
				return &ValidationError{Field: "email", Reason: "not a valid email address"}
			}
			if *in.Email != "" && activeEmailTaken(doc, *in.Email, c.ID) {
				return &ConflictError{Field: "email", Value: *in.Email}
			}
		}

		if in.Name != nil {
			c.Name = *in.Name
		}
		if in.Email != nil {
			c.Email = *in.Email
		}
		if in.Phone != nil {
			c.Phone = *in.Phone
		}
		if in.Company != nil {
			c.Company = *in.Company
		}
		if in.Status != nil {
			c.Status = *in.Status
		}
		if in.Notes != nil {
			c.Notes = *in.Notes
		}
		if in.InteractionHistory != nil {
			c.InteractionHistory = *in.InteractionHistory
		}
		c.UpdatedAt = r.now()
		updated = *c
		return nil
	})
	if err != nil {
		return model.Contact{}, err
	}

	metrics.IncrementEntityMutation("contact", "update")
	return updated, nil
}

// Archive soft-deletes a contact. Archiving twice just restamps archivedAt.
func (r *ContactRepository) Archive(id string) (model.Contact, error) {
	var archived model.Contact
	err := r.store.Update(func(doc *model.Document) error {
		i := findContact(doc, id)
		if i < 0 {
			return &NotFoundError{Entity: "contact", ID: id}
		}
		c := &doc.Contacts[i]
		now := r.now()
		c.Archived = true
		c.ArchivedAt = now
		c.UpdatedAt = now
		archived = *c
		return nil
	})
	if err != nil {
		return model.Contact{}, err
	}

	metrics.IncrementEntityMutation("contact", "archive")
	r.logger.Info("contact archived", zap.String("contact_id", archived.ID))
	return archived, nil
}

func findContact(doc *model.Document, id string) int {
	for i := range doc.Contacts {
		if doc.Contacts[i].ID == id {
			return i
		}
	}
	return -1
}

// activeEmailTaken reports whether a non-archived contact other than selfID
// already uses email. The compare is case-insensitive; archived contacts do
// not count.
func activeEmailTaken(doc *model.Document, email, selfID string) bool {
	for i := range doc.Contacts {
		c := &doc.Contacts[i]
		if c.Archived || c.ID == selfID {
			continue
		}
		if strings.EqualFold(c.Email, email) {
			return true
		}
	}
	return false
}
