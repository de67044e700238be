// Package items provides a PostgreSQL-backed repository for server-side
// item persistence, scoped to the owning user on every statement.
package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

// PostgresRepository implements item storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new item for its owner and fills in the generated ID and
// timestamps.
func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	query := `
		INSERT INTO items (user_id, title, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		item.UserID, item.Title, item.Description).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// ListByUser returns all items owned by userID, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Item, error) {
	query := `
		SELECT id, user_id, title, description, attachment_key, created_at, updated_at
		FROM items
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()

	var result []*models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Title, &item.Description,
			&item.AttachmentKey, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByIDAndUser returns the item only if it exists and belongs to userID;
// otherwise common.ErrorNotFound. A wrong owner is indistinguishable from a
// missing row.
func (r *PostgresRepository) GetByIDAndUser(ctx context.Context, id string, userID string) (*models.Item, error) {
	query := `
		SELECT id, user_id, title, description, attachment_key, created_at, updated_at
		FROM items
		WHERE id = $1 AND user_id = $2
	`

	item := &models.Item{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&item.ID, &item.UserID, &item.Title, &item.Description,
		&item.AttachmentKey, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// Update rewrites title and description of the item identified by
// (item.ID, item.UserID), refreshes updated_at, and returns the stored row.
// Missing or foreign rows return common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	query := `
		UPDATE items
		SET title = $1, description = $2, updated_at = now()
		WHERE id = $3 AND user_id = $4
		RETURNING attachment_key, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		item.Title, item.Description, item.ID, item.UserID).Scan(
		&item.AttachmentKey, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// Delete removes the item only if it belongs to userID; otherwise
// common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id string, userID string) error {
	query := `
		DELETE FROM items
		WHERE id = $1 AND user_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// SetAttachmentKey records the object-storage key on the item, scoped to its
// owner.
func (r *PostgresRepository) SetAttachmentKey(ctx context.Context, id string, userID string, key string) error {
	query := `
		UPDATE items
		SET attachment_key = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3
	`

	res, err := r.db.ExecContext(ctx, query, key, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
