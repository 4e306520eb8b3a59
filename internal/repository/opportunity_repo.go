package repository

import (
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexacrm/internal/model"
	"nexacrm/internal/store"
	"nexacrm/pkg/metrics"
)

// OpportunityCreate enumerates the client-settable fields of a new
// opportunity. Numeric fields accept JSON numbers or numeric strings and
// default to 0 when absent or non-numeric.
type OpportunityCreate struct {
	ContactID          string           `json:"contactId"`
	Title              string           `json:"title"`
	Value              model.FlexNumber `json:"value"`
	Probability        model.FlexNumber `json:"probability"`
	EstimatedCloseDate string           `json:"estimatedCloseDate"`
	Description        string           `json:"description"`
	Stage              string           `json:"stage"`
}

// OpportunityUpdate is a partial update; nil fields are left unchanged. A
// non-numeric value or probability keeps the previously stored number.
type OpportunityUpdate struct {
	ContactID          *string           `json:"contactId"`
	Title              *string           `json:"title"`
	Value              *model.FlexNumber `json:"value"`
	Probability        *model.FlexNumber `json:"probability"`
	EstimatedCloseDate *string           `json:"estimatedCloseDate"`
	Description        *string           `json:"description"`
	Stage              *string           `json:"stage"`
}

type OpportunityRepository struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewOpportunityRepository(s *store.Store, logger *zap.Logger) *OpportunityRepository {
	return &OpportunityRepository{store: s, logger: logger, now: time.Now}
}

func (r *OpportunityRepository) List(includeArchived bool) ([]model.Opportunity, error) {
	var out []model.Opportunity
	err := r.store.View(func(doc *model.Document) error {
		out = make([]model.Opportunity, 0, len(doc.Opportunities))
		for _, o := range doc.Opportunities {
			if includeArchived || !o.Archived {
				out = append(out, o)
			}
		}
		return nil
	})
	return out, err
}

func (r *OpportunityRepository) Create(in OpportunityCreate) (model.Opportunity, error) {
	stage := in.Stage
	if stage == "" {
		stage = model.StageProspect
	}
	if !model.ValidStage(stage) {
		return model.Opportunity{}, &ValidationError{Field: "stage", Reason: "unknown pipeline stage"}
	}

	value := 0.0
	if in.Value.Valid {
		value = in.Value.Value
	}
	if value < 0 {
		return model.Opportunity{}, &ValidationError{Field: "value", Reason: "must not be negative"}
	}

	probability := 0
	if in.Probability.Valid {
		probability = model.ClampProbability(int(math.Round(in.Probability.Value)))
	}

	now := r.now()
	opportunity := model.Opportunity{
		ID:                 uuid.NewString(),
		ContactID:          in.ContactID,
		Title:              in.Title,
		Value:              value,
		Probability:        probability,
		EstimatedCloseDate: in.EstimatedCloseDate,
		Description:        in.Description,
		Stage:              stage,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err := r.store.Update(func(doc *model.Document) error {
		doc.Opportunities = append(doc.Opportunities, opportunity)
		return nil
	})
	if err != nil {
		return model.Opportunity{}, err
	}

	metrics.IncrementEntityMutation("opportunity", "create")
	r.logger.Info("opportunity created",
		zap.String("opportunity_id", opportunity.ID),
		zap.String("stage", opportunity.Stage),
		zap.Float64("value", opportunity.Value),
	)
	return opportunity, nil
}

func (r *OpportunityRepository) Update(id string, in OpportunityUpdate) (model.Opportunity, error) {
	if in.Stage != nil && !model.ValidStage(*in.Stage) {
		return model.Opportunity{}, &ValidationError{Field: "stage", Reason: "unknown pipeline stage"}
	}
	if in.Value != nil && in.Value.Valid && in.Value.Value < 0 {
		return model.Opportunity{}, &ValidationError{Field: "value", Reason: "must not be negative"}
	}

	var updated model.Opportunity
	err := r.store.Update(func(doc *model.Document) error {
		i := findOpportunity(doc, id)
		if i < 0 {
			return &NotFoundError{Entity: "opportunity", ID: id}
		}
		o := &doc.Opportunities[i]

		if in.ContactID != nil {
			o.ContactID = *in.ContactID
		}
		if in.Title != nil {
			o.Title = *in.Title
		}
		// non-numeric input keeps the previous number
		if in.Value != nil && in.Value.Valid {
			o.Value = in.Value.Value
		}
		if in.Probability != nil && in.Probability.Valid {
			o.Probability = model.ClampProbability(int(math.Round(in.Probability.Value)))
		}
		if in.EstimatedCloseDate != nil {
			o.EstimatedCloseDate = *in.EstimatedCloseDate
		}
		if in.Description != nil {
			o.Description = *in.Description
		}
		if in.Stage != nil {
			o.Stage = *in.Stage
		}
		o.UpdatedAt = r.now()
		updated = *o
		return nil
	})
	if err != nil {
		return model.Opportunity{}, err
	}

	metrics.IncrementEntityMutation("opportunity", "update")
	return updated, nil
}

func (r *OpportunityRepository) Archive(id string) (model.Opportunity, error) {
	var archived model.Opportunity
	err := r.store.Update(func(doc *model.Document) error {
		i := findOpportunity(doc, id)
		if i < 0 {
			return &NotFoundError{Entity: "opportunity", ID: id}
		}
		o := &doc.Opportunities[i]
		now := r.now()
		o.Archived = true
		o.ArchivedAt = now
		o.UpdatedAt = now
		archived = *o
		return nil
	})
	if err != nil {
		return model.Opportunity{}, err
	}

	metrics.IncrementEntityMutation("opportunity", "archive")
	r.logger.Info("opportunity archived", zap.String("opportunity_id", archived.ID))
	return archived, nil
}

func findOpportunity(doc *model.Document, id string) int {
	for i := range doc.Opportunities {
		if doc.Opportunities[i].ID == id {
			return i
		}
	}
	return -1
}
