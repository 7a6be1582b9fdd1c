package dossier

import (
	"time"

	"github.com/johnquangdev/account-intel/internal/domain/entities"
)

// GenerateDossierResponse wraps a freshly generated dossier
type GenerateDossierResponse struct {
	Dossier    *entities.Dossier `json:"dossier"`
	Warnings   []string          `json:"warnings,omitempty"`
	ArchiveURL string            `json:"archive_url,omitempty"`
}

// DossierSummaryResponse is the list-view projection of a stored dossier
type DossierSummaryResponse struct {
	ID              string    `json:"id"`
	AccountName     string    `json:"account_name"`
	AccountDomain   string    `json:"account_domain"`
	Mode            string    `json:"mode"`
	PipelineVersion string    `json:"pipeline_version"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// StoredDossierResponse is the detail view of a stored dossier
type StoredDossierResponse struct {
	DossierSummaryResponse
	Dossier    *entities.Dossier `json:"dossier"`
	ArchiveURL string            `json:"archive_url,omitempty"`
	FromCache  bool              `json:"from_cache,omitempty"`
}
