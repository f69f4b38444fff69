package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"prospector-engine/internal/entities"
	"prospector-engine/internal/logger"
	"prospector-engine/internal/metrics"
)

// JSONFile persists history as a pretty-printed JSON array. A file lock
// enforces the single-writer discipline the load-then-append cycle needs.
type JSONFile struct {
	path string
	lock *flock.Flock
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

func (s *JSONFile) Load(_ context.Context) ([]entities.Posting, error) {

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("no history file at %s yet", s.path)
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read history file")
	}

	var postings []entities.Posting
	if err := json.Unmarshal(data, &postings); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStore).
			Errorf("history file %s is malformed, starting from empty: %v", s.path, err)
		return nil, nil
	}

	return postings, nil
}

func (s *JSONFile) Append(ctx context.Context, newPostings []entities.Posting) ([]entities.Posting, error) {

	// the lock file lives next to the history file, so the directory must
	// exist before the lock can be acquired
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create history directory")
	}

	if err := s.lock.Lock(); err != nil {
		return nil, errors.Wrap(err, "failed to acquire history lock")
	}
	defer func() {
		_ = s.lock.Unlock()
	}()

	history, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	existingKeys := make(map[string]struct{}, len(history))
	for _, p := range history {
		existingKeys[p.IdentityKey()] = struct{}{}
	}

	added := 0
	for _, p := range newPostings {
		key := p.IdentityKey()
		if _, ok := existingKeys[key]; ok {
			continue
		}
		history = append(history, p)
		existingKeys[key] = struct{}{}
		added++
	}

	if added == 0 {
		log.Info("no new postings to add")
		return history, nil
	}

	if err := s.save(history); err != nil {
		return nil, err
	}
	metrics.StoredPostingsCounter.Add(float64(added))
	log.Infof("added %d new postings (total: %d)", added, len(history))

	return history, nil
}

// save writes atomically so a crash mid-write can't corrupt the history.
func (s *JSONFile) save(postings []entities.Posting) error {

	data, err := json.MarshalIndent(postings, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode history")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write history file")
	}
	return errors.Wrap(os.Rename(tmp, s.path), "failed to replace history file")
}
