package repositories

import (
	"context"
	"time"

	"github.com/johnquangdev/account-intel/internal/domain/entities"
)

// DossierRepository defines the interface for dossier record data access
type DossierRepository interface {
	// Save stores a generated dossier record
	Save(ctx context.Context, record *entities.DossierRecord) error

	// FindLatestByAccount finds the most recent record for an account domain
	FindLatestByAccount(ctx context.Context, accountDomain string) (*entities.DossierRecord, error)

	// ListByAccount lists records for an account domain, newest first
	ListByAccount(ctx context.Context, accountDomain string, limit int) ([]*entities.DossierRecord, error)

	// DeleteOlderThan removes records generated before the cutoff
	DeleteOlderThan(ctx context.Context, before time.Time) error
}
