package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/johnquangdev/account-intel/internal/domain/entities"
)

// DossierRepository implements the dossier repository interface using GORM
type DossierRepository struct {
	db *gorm.DB
}

// NewDossierRepository creates a new dossier repository
func NewDossierRepository(db *gorm.DB) *DossierRepository {
	return &DossierRepository{
		db: db,
	}
}

// Save stores a generated dossier record
func (r *DossierRepository) Save(ctx context.Context, record *entities.DossierRecord) error {
	record.AccountDomain = strings.ToLower(record.AccountDomain)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to save dossier record: %w", err)
	}
	return nil
}

// FindLatestByAccount finds the most recent record for an account domain
func (r *DossierRepository) FindLatestByAccount(ctx context.Context, accountDomain string) (*entities.DossierRecord, error) {
	var record entities.DossierRecord
	if err := r.db.WithContext(ctx).
		Where("account_domain = ?", strings.ToLower(accountDomain)).
		Order("generated_at DESC").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrDossierRecordNotFound
		}
		return nil, fmt.Errorf("failed to find latest dossier: %w", err)
	}
	return &record, nil
}

// ListByAccount lists records for an account domain, newest first
func (r *DossierRepository) ListByAccount(ctx context.Context, accountDomain string, limit int) ([]*entities.DossierRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []*entities.DossierRecord
	if err := r.db.WithContext(ctx).
		Where("account_domain = ?", strings.ToLower(accountDomain)).
		Order("generated_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list dossiers: %w", err)
	}
	return records, nil
}

// DeleteOlderThan removes records generated before the cutoff
func (r *DossierRepository) DeleteOlderThan(ctx context.Context, before time.Time) error {
	if err := r.db.WithContext(ctx).
		Where("generated_at < ?", before).
		Delete(&entities.DossierRecord{}).Error; err != nil {
		return fmt.Errorf("failed to delete old dossiers: %w", err)
	}
	return nil
}
