package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ErrDossierRecordNotFound is returned when no stored dossier matches
var ErrDossierRecordNotFound = errors.New("dossier record not found")

// DossierRecord is the persisted form of a generated dossier. The full
// dossier is stored as a JSON document; the indexed columns exist only
// for lookup and retention.
type DossierRecord struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AccountName     string         `gorm:"not null" json:"account_name"`
	AccountDomain   string         `gorm:"index;not null" json:"account_domain"`
	Mode            string         `gorm:"not null" json:"mode"`
	PipelineVersion string         `gorm:"not null" json:"pipeline_version"`
	Payload         datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`
	ArchiveURL      string         `json:"archive_url,omitempty"`
	GeneratedAt     time.Time      `gorm:"index;not null" json:"generated_at"`
	CreatedAt       time.Time      `json:"created_at"`
}

// TableName overrides the table name
func (DossierRecord) TableName() string {
	return "dossier_records"
}
