package sets

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"brickinv/internal/entity"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Add(ctx context.Context, set entity.LegoSet) error {
	const insertSQL = `
		INSERT INTO sets (set_no, name, assembled)
		VALUES ($1, $2, $3)
		ON CONFLICT (set_no) DO NOTHING
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, insertSQL, set.SetNo, set.Name, set.Assembled)
	return err
}

func (r *PostgresRepo) Get(ctx context.Context, setNo string) (entity.LegoSet, error) {
	const getSQL = `
		SELECT set_no, name, assembled
		FROM sets
		WHERE set_no = $1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var set entity.LegoSet
	err := r.db.QueryRow(timeoutCtx, getSQL, setNo).Scan(&set.SetNo, &set.Name, &set.Assembled)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.LegoSet{}, ErrSetNotFound
	}
	if err != nil {
		return entity.LegoSet{}, err
	}
	return set, nil
}
