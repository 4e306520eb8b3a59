package dashboard

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"nexacrm/internal/model"
	"nexacrm/internal/store"
)

const (
	newContactWindow = 30 * 24 * time.Hour
	bucketWidth      = 7 * 24 * time.Hour
	bucketCount      = 8
)

// Snapshot is the dashboard rollup, recomputed from scratch on every call
// over the non-archived subset of the store.
type Snapshot struct {
	NewContacts        int            `json:"newContacts"`
	TotalPipelineValue float64        `json:"totalPipelineValue"`
	ByStage            map[string]int `json:"byStage"`
	ContactsSeries     Series         `json:"contactsSeries"`
	TasksStatus        map[string]int `json:"tasksStatus"`
}

// Series is a labeled time series, oldest bucket first.
type Series struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

type Service struct {
	store  *store.Store
	logger *zap.Logger
}

func NewService(s *store.Store, logger *zap.Logger) *Service {
	return &Service{store: s, logger: logger}
}

// Compute builds the snapshot as of now. Contacts with no createdAt are
// excluded from newContacts and the series rather than assumed recent.
func (s *Service) Compute(now time.Time) (Snapshot, error) {
	snap := Snapshot{
		ByStage: make(map[string]int, len(model.Stages)),
		ContactsSeries: Series{
			Labels: make([]string, 0, bucketCount),
			Data:   make([]int, 0, bucketCount),
		},
		TasksStatus: map[string]int{},
	}
	for _, stage := range model.Stages {
		snap.ByStage[stage] = 0
	}

	cutoff := now.Add(-newContactWindow)

	err := s.store.View(func(doc *model.Document) error {
		for i := range doc.Contacts {
			c := &doc.Contacts[i]
			if c.Archived || c.CreatedAt.IsZero() {
				continue
			}
			if !c.CreatedAt.Before(cutoff) {
				snap.NewContacts++
			}
		}

		for i := range doc.Opportunities {
			o := &doc.Opportunities[i]
			if o.Archived {
				continue
			}
			if o.Stage != model.StageClosedLost {
				snap.TotalPipelineValue += o.Value
			}
			if _, ok := snap.ByStage[o.Stage]; ok {
				snap.ByStage[o.Stage]++
			}
		}

		// eight trailing 7-day buckets ending at now, oldest first,
		// half-open [start, end)
		for i := bucketCount; i >= 1; i-- {
			start := now.Add(-time.Duration(i) * bucketWidth)
			end := start.Add(bucketWidth)

			count := 0
			for j := range doc.Contacts {
				c := &doc.Contacts[j]
				if c.Archived || c.CreatedAt.IsZero() {
					continue
				}
				if !c.CreatedAt.Before(start) && c.CreatedAt.Before(end) {
					count++
				}
			}
			snap.ContactsSeries.Labels = append(snap.ContactsSeries.Labels,
				fmt.Sprintf("%d/%d", int(start.Month()), start.Day()))
			snap.ContactsSeries.Data = append(snap.ContactsSeries.Data, count)
		}

		for i := range doc.Tasks {
			t := &doc.Tasks[i]
			if t.Archived {
				continue
			}
			status := t.Status
			if status == "" {
				status = model.TaskStatusPending
			}
			snap.TasksStatus[status]++
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
