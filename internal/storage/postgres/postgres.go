package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"topmovies/proj/internal/domain/models"
	"topmovies/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresDB struct {
	Conn *pgxpool.Pool
}

const ErrConflictCode = "23505"

const movieColumns = "id, title, year, description, rating, ranking, review, img_url, created_at"

const migrationSQL = `
CREATE TABLE IF NOT EXISTS movies (
	id BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL UNIQUE,
	year INTEGER NOT NULL,
	description VARCHAR(80) NOT NULL DEFAULT '',
	rating DOUBLE PRECISION,
	ranking INTEGER,
	review VARCHAR(30),
	img_url VARCHAR(255) NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS movies_rating_idx ON movies (rating DESC NULLS LAST, id);
`

func New(ctx context.Context, dsn string, maxConns int, maxConnIdleTime time.Duration) (*PostgresDB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = int32(maxConns)
	cfg.MaxConnIdleTime = maxConnIdleTime
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	db := &PostgresDB{Conn: pool}
	if err := db.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

func (db *PostgresDB) Migrate(ctx context.Context) error {
	if _, err := db.Conn.Exec(ctx, migrationSQL); err != nil {
		return fmt.Errorf("failed to run movies migration: %w", err)
	}
	return nil
}

func (db *PostgresDB) Close() error {
	db.Conn.Close()
	return nil
}

func (db *PostgresDB) Get(ctx context.Context, id int) (*models.Movie, error) {
	rows, err := db.Conn.Query(ctx, "SELECT "+movieColumns+" FROM movies WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (db *PostgresDB) Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	rows, _ := db.Conn.Query(
		ctx,
		`INSERT INTO movies (title, year, description, rating, ranking, review, img_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING `+movieColumns,
		movie.Title,
		movie.Year,
		movie.Description,
		movie.Rating,
		movie.Ranking,
		movie.Review,
		movie.ImgURL,
	)
	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		var pgxErr *pgconn.PgError
		if errors.As(err, &pgxErr) && pgxErr.Code == ErrConflictCode {
			return nil, storage.ErrConflict
		}
		return nil, err
	}
	return &created, nil
}

func (db *PostgresDB) List(ctx context.Context) ([]models.Movie, error) {
	rows, _ := db.Conn.Query(
		ctx,
		"SELECT "+movieColumns+" FROM movies ORDER BY rating DESC NULLS LAST, id ASC",
	)
	movies, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		return nil, err
	}
	return movies, nil
}

func (db *PostgresDB) Update(ctx context.Context, id int, upd models.MovieUpdate) (*models.Movie, error) {
	rows, _ := db.Conn.Query(
		ctx,
		`UPDATE movies SET rating = COALESCE($1, rating), review = COALESCE($2, review), ranking = COALESCE($3, ranking)
		WHERE id = $4 RETURNING `+movieColumns,
		upd.Rating,
		upd.Review,
		upd.Ranking,
		id,
	)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (db *PostgresDB) Delete(ctx context.Context, id int) error {
	status, err := db.Conn.Exec(ctx, "DELETE FROM movies WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (db *PostgresDB) UpdateRankings(ctx context.Context, movies []models.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	return pgx.BeginFunc(ctx, db.Conn, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, m := range movies {
			batch.Queue("UPDATE movies SET ranking = $1 WHERE id = $2", m.Ranking, m.ID)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}
