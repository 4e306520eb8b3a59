package repository

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexacrm/internal/model"
	"nexacrm/internal/store"
	"nexacrm/pkg/metrics"
)

// TaskCreate enumerates the client-settable fields of a new task.
type TaskCreate struct {
	Title      string `json:"title"`
	DueDate    string `json:"dueDate"`
	Status     string `json:"status"`
	AssignedTo string `json:"assignedTo"`
	LinkedType string `json:"linkedType"`
	LinkedID   string `json:"linkedId"`
	Notes      string `json:"notes"`
}

// TaskUpdate is a partial update; nil fields are left unchanged.
type TaskUpdate struct {
	Title      *string `json:"title"`
	DueDate    *string `json:"dueDate"`
	Status     *string `json:"status"`
	AssignedTo *string `json:"assignedTo"`
	LinkedType *string `json:"linkedType"`
	LinkedID   *string `json:"linkedId"`
	Notes      *string `json:"notes"`
}

type TaskRepository struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewTaskRepository(s *store.Store, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{store: s, logger: logger, now: time.Now}
}

func (r *TaskRepository) List(includeArchived bool) ([]model.Task, error) {
	var out []model.Task
	err := r.store.View(func(doc *model.Document) error {
		out = make([]model.Task, 0, len(doc.Tasks))
		for _, t := range doc.Tasks {
			if includeArchived || !t.Archived {
				out = append(out, t)
			}
		}
		return nil
	})
	return out, err
}

func (r *TaskRepository) Create(in TaskCreate) (model.Task, error) {
	if !model.ValidLinkType(in.LinkedType) {
		return model.Task{}, &ValidationError{Field: "linkedType", Reason: "must be contact, opportunity or empty"}
	}

	now := r.now()
	task := model.Task{
		ID:         uuid.NewString(),
		Title:      in.Title,
		DueDate:    in.DueDate,
		Status:     in.Status,
		AssignedTo: in.AssignedTo,
		LinkedType: in.LinkedType,
		LinkedID:   in.LinkedID,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if task.Status == "" {
		task.Status = model.TaskStatusPending
	}
	if task.AssignedTo == "" {
		task.AssignedTo = model.DefaultTaskAssignee
	}

	err := r.store.Update(func(doc *model.Document) error {
		doc.Tasks = append(doc.Tasks, task)
		return nil
	})
	if err != nil {
		return model.Task{}, err
	}

	metrics.IncrementEntityMutation("task", "create")
	r.logger.Info("task created",
		zap.String("task_id", task.ID),
		zap.String("status", task.Status),
	)
	return task, nil
}

func (r *TaskRepository) Update(id string, in TaskUpdate) (model.Task, error) {
	if in.LinkedType != nil && !model.ValidLinkType(*in.LinkedType) {
		return model.Task{}, &ValidationError{Field: "linkedType", Reason: "must be contact, opportunity or empty"}
	}

	var updated model.Task
	err := r.store.Update(func(doc *model.Document) error {
		i := findTask(doc, id)
		if i < 0 {
			return &NotFoundError{Entity: "task", ID: id}
		}
		t := &doc.Tasks[i]

		if in.Title != nil {
			t.Title = *in.Title
		}
		if in.DueDate != nil {
			t.DueDate = *in.DueDate
		}
		if in.Status != nil {
			t.Status = *in.Status
		}
		if in.AssignedTo != nil {
			t.AssignedTo = *in.AssignedTo
		}
		if in.LinkedType != nil {
			t.LinkedType = *in.LinkedType
		}
		if in.LinkedID != nil {
			t.LinkedID = *in.LinkedID
		}
		if in.Notes != nil {
			t.Notes = *in.Notes
		}
		t.UpdatedAt = r.now()
		updated = *t
		return nil
	})
	if err != nil {
		return model.Task{}, err
	}

	metrics.IncrementEntityMutation("task", "update")
	return updated, nil
}

func (r *TaskRepository) Archive(id string) (model.Task, error) {
	var archived model.Task
	err := r.store.Update(func(doc *model.Document) error {
		i := findTask(doc, id)
		if i < 0 {
			return &NotFoundError{Entity: "task", ID: id}
		}
		t := &doc.Tasks[i]
		now := r.now()
		t.Archived = true
		t.ArchivedAt = now
		t.UpdatedAt = now
		archived = *t
		return nil
	})
	if err != nil {
		return model.Task{}, err
	}

	metrics.IncrementEntityMutation("task", "archive")
	r.logger.Info("task archived", zap.String("task_id", archived.ID))
	return archived, nil
}

func findTask(doc *model.Document, id string) int {
	for i := range doc.Tasks {
		if doc.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}
