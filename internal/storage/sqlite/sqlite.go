// Package sqlite implements the movie storage on a local SQLite file through
// GORM and a pure Go driver.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"topmovies/proj/internal/domain/models"
	"topmovies/proj/internal/storage"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type movieRecord struct {
	ID          int    `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"uniqueIndex;not null"`
	Year        int32  `gorm:"not null"`
	Description string `gorm:"size:80"`
	Rating      *float64
	Ranking     *int
	Review      *string `gorm:"size:30"`
	ImgURL      string  `gorm:"size:255"`
	CreatedAt   time.Time
}

func (movieRecord) TableName() string { return "movies" }

type Storage struct {
	db *gorm.DB
}

// New opens (creating if needed) the database file at path and migrates the
// schema.
func New(path string, debug bool) (*Storage, error) {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLog, TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	// a single connection serializes writers on the file
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&movieRecord{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Storage) Get(ctx context.Context, id int) (*models.Movie, error) {
	var rec movieRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return movieFromRecord(rec), nil
}

func (s *Storage) Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	rec := movieToRecord(movie)
	rec.ID = 0
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, storage.ErrConflict
		}
		return nil, err
	}
	return movieFromRecord(rec), nil
}

// List returns every movie ordered by descending rating, unrated movies last,
// ties in creation order.
func (s *Storage) List(ctx context.Context) ([]models.Movie, error) {
	var recs []movieRecord
	err := s.db.WithContext(ctx).
		Order("rating IS NULL").
		Order("rating DESC").
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	movies := make([]models.Movie, 0, len(recs))
	for _, rec := range recs {
		movies = append(movies, *movieFromRecord(rec))
	}
	return movies, nil
}

func (s *Storage) Update(ctx context.Context, id int, upd models.MovieUpdate) (*models.Movie, error) {
	fields := make(map[string]any, 3)
	if upd.Rating != nil {
		fields["rating"] = *upd.Rating
	}
	if upd.Review != nil {
		fields["review"] = *upd.Review
	}
	if upd.Ranking != nil {
		fields["ranking"] = *upd.Ranking
	}
	if len(fields) > 0 {
		res := s.db.WithContext(ctx).Model(&movieRecord{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, storage.ErrNotFound
		}
	}
	return s.Get(ctx, id)
}

func (s *Storage) Delete(ctx context.Context, id int) error {
	res := s.db.WithContext(ctx).Delete(&movieRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// UpdateRankings persists the ranking of every given movie in one transaction.
func (s *Storage) UpdateRankings(ctx context.Context, movies []models.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range movies {
			err := tx.Model(&movieRecord{}).Where("id = ?", m.ID).Update("ranking", m.Ranking).Error
			if err != nil {
				return fmt.Errorf("update ranking of movie %d: %w", m.ID, err)
			}
		}
		return nil
	})
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func movieToRecord(m *models.Movie) movieRecord {
	return movieRecord{
		ID:          m.ID,
		Title:       m.Title,
		Year:        m.Year,
		Description: m.Description,
		Rating:      m.Rating,
		Ranking:     m.Ranking,
		Review:      m.Review,
		ImgURL:      m.ImgURL,
		CreatedAt:   m.CreatedAt,
	}
}

func movieFromRecord(rec movieRecord) *models.Movie {
	return &models.Movie{
		ID:          rec.ID,
		Title:       rec.Title,
		Year:        rec.Year,
		Description: rec.Description,
		Rating:      rec.Rating,
		Ranking:     rec.Ranking,
		Review:      rec.Review,
		ImgURL:      rec.ImgURL,
		CreatedAt:   rec.CreatedAt,
	}
}
