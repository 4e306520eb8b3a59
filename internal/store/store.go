package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"nexacrm/internal/model"
	"nexacrm/pkg/metrics"
)

// Store owns the CRM document in memory and writes it through to a JSON file
// on every mutation. All access is serialized by a single mutex, so two
// concurrent writes cannot lose each other's updates.
type Store struct {
	path   string
	logger *zap.Logger

	mu  sync.Mutex
	doc *model.Document
}

type Options struct {
	// Path of the backing JSON file.
	Path string
	// Strict surfaces load errors instead of degrading to an empty document.
	// A missing file is never an error; a fresh install starts empty.
	Strict bool
	Logger *zap.Logger
}

// Open loads the backing file into memory. With Strict disabled an unreadable
// or corrupt file degrades to the empty default document; the broken file is
// overwritten on the next save.
func Open(opts Options) (*Store, error) {
	s := &Store{
		path:   opts.Path,
		logger: opts.Logger,
		doc:    model.EmptyDocument(),
	}

	data, err := os.ReadFile(opts.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.logger.Info("store file missing, starting empty", zap.String("path", opts.Path))
		if err := s.persistLocked(); err != nil {
			return nil, fmt.Errorf("initialize store: %w", err)
		}
		return s, nil
	case err != nil:
		if opts.Strict {
			return nil, fmt.Errorf("read store: %w", err)
		}
		s.logger.Warn("store file unreadable, starting empty",
			zap.String("path", opts.Path),
			zap.Error(err),
		)
		return s, nil
	}

	doc := model.EmptyDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		if opts.Strict {
			return nil, fmt.Errorf("parse store: %w", err)
		}
		s.logger.Warn("store file corrupt, starting empty",
			zap.String("path", opts.Path),
			zap.Error(err),
		)
		return s, nil
	}
	normalize(doc)
	s.doc = doc
	return s, nil
}

// View runs fn with read access to the document. fn must not retain the
// document or anything reachable from it.
func (s *Store) View(fn func(*model.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.doc)
}

// Update runs fn with write access to the document and persists it before
// returning. If fn errors nothing is written.
func (s *Store) Update(fn func(*model.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.doc); err != nil {
		return err
	}
	return s.persistLocked()
}

// persistLocked writes the document to a temp file in the same directory and
// renames it over the target, so a crash mid-write cannot corrupt the store.
func (s *Store) persistLocked() error {
	start := time.Now()

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		metrics.RecordStoreSave("error", time.Since(start))
		return fmt.Errorf("encode store: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		metrics.RecordStoreSave("error", time.Since(start))
		return fmt.Errorf("create temp store file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		metrics.RecordStoreSave("error", time.Since(start))
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		metrics.RecordStoreSave("error", time.Since(start))
		return fmt.Errorf("close store file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		metrics.RecordStoreSave("error", time.Since(start))
		return fmt.Errorf("replace store file: %w", err)
	}

	metrics.RecordStoreSave("ok", time.Since(start))
	return nil
}

// normalize replaces nil collections from hand-edited or legacy files so the
// document always serializes with all four arrays present.
func normalize(doc *model.Document) {
	if doc.Contacts == nil {
		doc.Contacts = []model.Contact{}
	}
	if doc.Opportunities == nil {
		doc.Opportunities = []model.Opportunity{}
	}
	if doc.Tasks == nil {
		doc.Tasks = []model.Task{}
	}
	if doc.Interactions == nil {
		doc.Interactions = []json.RawMessage{}
	}
}
