package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nexacrm/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(store.Options{
		Path:   filepath.Join(t.TempDir(), "db.json"),
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)
	return s
}

// fixedClock returns a clock function pinned to ts.
func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func strPtr(s string) *string { return &s }
