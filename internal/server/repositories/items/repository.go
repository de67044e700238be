package items

import (
	"context"

	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

// Repository is the persistence surface for user-owned items. Every lookup
// and mutation is keyed by both item ID and owner ID; a miss for either
// reason surfaces as common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Item, error)
	GetByIDAndUser(ctx context.Context, id string, userID string) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) (*models.Item, error)
	Delete(ctx context.Context, id string, userID string) error
	SetAttachmentKey(ctx context.Context, id string, userID string, key string) error
}
