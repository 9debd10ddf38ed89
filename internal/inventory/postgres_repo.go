package inventory

import (
	"context"
	"time"

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

// UpsertPart inserts or increments a triple in a single statement, backed by
// the unique index on (set_no, part_no, color_id). This keeps the
// read-modify-write atomic under concurrent adds of the same triple.
func (r *PostgresRepo) UpsertPart(ctx context.Context, setNo string, part entity.Part, qty int, state entity.PieceState) error {
	const upsertSQL = `
		INSERT INTO inventory (set_no, part_no, color_id, qty, state)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (set_no, part_no, color_id)
		DO UPDATE SET qty = inventory.qty + EXCLUDED.qty, state = EXCLUDED.state
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, upsertSQL, setNo, part.PartNo, part.ColorID, qty, string(state))
	return err
}

// List returns inventory rows, optionally filtered by state. Pass the empty
// state to list everything.
func (r *PostgresRepo) List(ctx context.Context, state entity.PieceState) ([]entity.InventoryItem, error) {
	const listSQL = `
		SELECT set_no, part_no, color_id, qty, state
		FROM inventory
		WHERE ($1 = '' OR state = $1)
		ORDER BY set_no, part_no, color_id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, listSQL, string(state))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.InventoryItem
	for rows.Next() {
		var item entity.InventoryItem
		if err := rows.Scan(&item.SetNo, &item.PartNo, &item.ColorID, &item.Qty, &item.State); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem sets quantity and state for every row matching the part and
// color. It returns false, leaving the store untouched, when no row matches.
func (r *PostgresRepo) UpdateItem(ctx context.Context, partNo string, colorID int, qty int, state entity.PieceState) (bool, error) {
	const updateSQL = `
		UPDATE inventory
		SET qty = $3, state = $4
		WHERE part_no = $1 AND color_id = $2
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	commandTag, err := r.db.Exec(timeoutCtx, updateSQL, partNo, colorID, qty, string(state))
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() > 0, nil
}
