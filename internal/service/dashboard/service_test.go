package dashboard

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nexacrm/internal/model"
	"nexacrm/internal/store"
)

func newService(t *testing.T, seed func(*model.Document)) *Service {
	t.Helper()
	s, err := store.Open(store.Options{
		Path:   filepath.Join(t.TempDir(), "db.json"),
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)
	if seed != nil {
		require.NoError(t, s.Update(func(doc *model.Document) error {
			seed(doc)
			return nil
		}))
	}
	return NewService(s, zap.NewNop())
}

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func contactCreatedAt(ts time.Time) model.Contact {
	return model.Contact{ID: "c-" + ts.Format(time.RFC3339), CreatedAt: ts}
}

func TestComputeEmptyStore(t *testing.T) {
	svc := newService(t, nil)

	snap, err := svc.Compute(now)
	require.NoError(t, err)

	assert.Zero(t, snap.NewContacts)
	assert.Zero(t, snap.TotalPipelineValue)
	assert.Len(t, snap.ByStage, 6, "every stage is present even at zero")
	for _, stage := range model.Stages {
		assert.Equal(t, 0, snap.ByStage[stage])
	}
	assert.Len(t, snap.ContactsSeries.Labels, 8)
	assert.Len(t, snap.ContactsSeries.Data, 8)
	assert.Empty(t, snap.TasksStatus)
}

func TestNewContactsWindow(t *testing.T) {
	svc := newService(t, func(doc *model.Document) {
		doc.Contacts = append(doc.Contacts, contactCreatedAt(now)) // exactly now
		for i := 0; i < 7; i++ {
			doc.Contacts = append(doc.Contacts, contactCreatedAt(now.AddDate(0, 0, -40-i)))
		}
	})

	snap, err := svc.Compute(now)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.NewContacts)
}

func TestNewContactsExcludesMissingCreatedAt(t *testing.T) {
	svc := newService(t, func(doc *model.Document) {
		doc.Contacts = append(doc.Contacts,
			model.Contact{ID: "legacy"}, // no createdAt: never assumed recent
			contactCreatedAt(now.AddDate(0, 0, -1)),
		)
	})

	snap, err := svc.Compute(now)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.NewContacts)

	total := 0
	for _, n := range snap.ContactsSeries.Data {
		total += n
	}
	assert.Equal(t, 1, total, "legacy contact is excluded from the series too")
}

func TestNewContactsExcludesArchived(t *testing.T) {
	archived := contactCreatedAt(now.AddDate(0, 0, -1))
	archived.Archived = true

	svc := newService(t, func(doc *model.Document) {
		doc.Contacts = append(doc.Contacts, archived, contactCreatedAt(now.AddDate(0, 0, -2)))
	})

	snap, err := svc.Compute(now)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.NewContacts)
}

func TestTotalPipelineValueExcludesLost(t *testing.T) {
	svc := newService(t, func(doc *model.Document) {
		doc.Opportunities = append(doc.Opportunities,
			model.Opportunity{ID: "o1", Value: 100, Stage: model.StageProspect},
			model.Opportunity{ID: "o2", Value: 50, Stage: model.StageClosedLost},
		)
	})

	snap, err := svc.Compute(now)
	require.NoError(t, err)
	assert.Equal(t, 100.0, snap.TotalPipelineValue)
}

func TestTotalPipelineValueIncludesWon(t *testing.T) {
	svc := newService(t, func(doc *model.Document) {
		doc.Opportunities = append(doc.Opportunities,
			model.Opportunity{ID: "o1", Value: 70, Stage: model.StageClosedWon},
			model.Opportunity{ID: "o2", Value: 30, Stage: model.StageNegotiation, Archived: true},
		)
	})

	snap, err := svc.Compute(now)
	require.NoError(t, err)
	assert.Equal(t, 70.0, snap.TotalPipelineValue, "won counts, archived does not")
}

func TestByStageCounts(t *testing.T) {
	svc := newService(t, func(doc *model.Document) {
		doc.Opportunities = append(doc.Opportunities,
			model.Opportunity{ID: "o1", Stage: model.StageProspect},
			model.Opportunity{ID: "o2", Stage: model.StageProspect},
			model.Opportunity{ID: "o3", Stage: model.StageClosedLost},
			model.Opportunity{ID: "o4", Stage: model.StageProposal, Archived: true},
		)
	})

	snap, err := svc.Compute(now)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.ByStage[model.StageProspect])
	assert.Equal(t, 1, snap.ByStage[model.StageClosedLost])
	assert.Equal(t, 0, snap.ByStage[model.StageProposal])
	assert.Equal(t, 0, snap.ByStage[model.StageQualified])
}

func TestContactsSeriesBuckets(t *testing.T) {
	svc := newService(t, func(doc *model.Document) {
		doc.Contacts = append(doc.Contacts,
			contactCreatedAt(now.Add(-time.Hour)),          // newest bucket
			contactCreatedAt(now.AddDate(0, 0, -10)),       // two buckets back
			contactCreatedAt(now.AddDate(0, 0, -55)),       // oldest bucket
			contactCreatedAt(now.AddDate(0, 0, -57)),       // outside the 56-day window
		)
	})

	snap, err := svc.Compute(now)
	require.NoError(t, err)

	require.Len(t, snap.ContactsSeries.Data, 8)
	require.Len(t, snap.ContactsSeries.Labels, 8)

	total := 0
	for _, n := range snap.ContactsSeries.Data {
		total += n
	}
	assert.Equal(t, 3, total, "counts sum to active contacts created within 56 days")

	// oldest first
	assert.Equal(t, 1, snap.ContactsSeries.Data[0])
	assert.Equal(t, 1, snap.ContactsSeries.Data[7])

	// labels are month/day of each bucket start
	oldestStart := now.Add(-8 * 7 * 24 * time.Hour)
	newestStart := now.Add(-7 * 24 * time.Hour)
	assert.Equal(t, labelFor(oldestStart), snap.ContactsSeries.Labels[0])
	assert.Equal(t, labelFor(newestStart), snap.ContactsSeries.Labels[7])
}

func labelFor(ts time.Time) string {
	return ts.Format("1/2")
}

func TestContactsSeriesBoundaryIsHalfOpen(t *testing.T) {
	// a contact created exactly on a bucket start lands in that bucket only
	boundary := now.Add(-7 * 24 * time.Hour)
	svc := newService(t, func(doc *model.Document) {
		doc.Contacts = append(doc.Contacts, contactCreatedAt(boundary))
	})

	snap, err := svc.Compute(now)
	require.NoError(t, err)

	total := 0
	for _, n := range snap.ContactsSeries.Data {
		total += n
	}
	assert.Equal(t, 1, total, "boundary contact is counted exactly once")
	assert.Equal(t, 1, snap.ContactsSeries.Data[7])
}

func TestTasksStatusDynamicKeys(t *testing.T) {
	svc := newService(t, func(doc *model.Document) {
		doc.Tasks = append(doc.Tasks,
			model.Task{ID: "t1", Status: "pending"},
			model.Task{ID: "t2", Status: "pending"},
			model.Task{ID: "t3", Status: "waiting on legal"},
			model.Task{ID: "t4"},                            // empty status counts as pending
			model.Task{ID: "t5", Status: "done", Archived: true},
		)
	})

	snap, err := svc.Compute(now)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"pending":          3,
		"waiting on legal": 1,
	}, snap.TasksStatus)
}
