package store

import (
	"context"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"prospector-engine/internal/entities"
	"prospector-engine/internal/logger"
	"prospector-engine/internal/metrics"
)

type postingRecord struct {
	ID          uint   `gorm:"primaryKey"`
	IdentityKey string `gorm:"uniqueIndex"`
	Title       string
	Company     string
	URL         string
	Source      string
	PostedAt    *time.Time
	Location    string
	Description string
	Score       int
	CreatedAt   time.Time
}

func recordFrom(p entities.Posting) postingRecord {
	return postingRecord{
		IdentityKey: p.IdentityKey(),
		Title:       p.Title,
		Company:     p.Company,
		URL:         p.URL,
		Source:      p.Source,
		PostedAt:    p.PostedAt,
		Location:    p.Location,
		Description: p.Description,
		Score:       p.Score,
	}
}

func (r postingRecord) toPosting() entities.Posting {
	return entities.Posting{
		Title:       r.Title,
		Company:     r.Company,
		URL:         r.URL,
		Source:      r.Source,
		PostedAt:    r.PostedAt,
		Location:    r.Location,
		Description: r.Description,
		Score:       r.Score,
	}
}

// SQLite persists history in a sqlite database with a unique index on the
// identity key, insertion-ordered like the JSON driver.
type SQLite struct {
	db *gorm.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Error),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&postingRecord{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate posting history")
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

func (s *SQLite) Load(ctx context.Context) ([]entities.Posting, error) {

	var records []postingRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStore).
			Errorf("failed to load posting history, starting from empty: %v", err)
		return nil, nil
	}

	postings := make([]entities.Posting, 0, len(records))
	for _, r := range records {
		postings = append(postings, r.toPosting())
	}
	return postings, nil
}

func (s *SQLite) Append(ctx context.Context, newPostings []entities.Posting) ([]entities.Posting, error) {

	history, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	existingKeys := make(map[string]struct{}, len(history))
	for _, p := range history {
		existingKeys[p.IdentityKey()] = struct{}{}
	}

	added := 0
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range newPostings {
			key := p.IdentityKey()
			if _, ok := existingKeys[key]; ok {
				continue
			}
			record := recordFrom(p)
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			existingKeys[key] = struct{}{}
			history = append(history, p)
			added++
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to append posting history")
	}

	if added == 0 {
		log.Info("no new postings to add")
		return history, nil
	}

	metrics.StoredPostingsCounter.Add(float64(added))
	log.Infof("added %d new postings (total: %d)", added, len(history))
	return history, nil
}
