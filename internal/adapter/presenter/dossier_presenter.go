package presenter

import (
	"encoding/json"
	"fmt"

	dossierdto "github.com/johnquangdev/account-intel/internal/adapter/dto/dossier"
	"github.com/johnquangdev/account-intel/internal/domain/entities"
)

// ToDossierSummaryResponse converts a DossierRecord to its list projection
func ToDossierSummaryResponse(r *entities.DossierRecord) *dossierdto.DossierSummaryResponse {
	if r == nil {
		return nil
	}
	return &dossierdto.DossierSummaryResponse{
		ID:              r.ID.String(),
		AccountName:     r.AccountName,
		AccountDomain:   r.AccountDomain,
		Mode:            r.Mode,
		PipelineVersion: r.PipelineVersion,
		GeneratedAt:     r.GeneratedAt,
	}
}

// ToStoredDossierResponse converts a DossierRecord to its detail view,
// decoding the stored payload back into the dossier shape. A payload that
// no longer decodes is reported instead of presented as a zero dossier.
func ToStoredDossierResponse(r *entities.DossierRecord, fromCache bool) (*dossierdto.StoredDossierResponse, error) {
	if r == nil {
		return nil, nil
	}

	var d entities.Dossier
	if len(r.Payload) > 0 {
		if err := json.Unmarshal(r.Payload, &d); err != nil {
			return nil, fmt.Errorf("decode dossier payload for %s: %w", r.AccountDomain, err)
		}
	}

	return &dossierdto.StoredDossierResponse{
		DossierSummaryResponse: *ToDossierSummaryResponse(r),
		Dossier:                &d,
		ArchiveURL:             r.ArchiveURL,
		FromCache:              fromCache,
	}, nil
}

// ToDossierListResponse converts a slice of records to summaries
func ToDossierListResponse(records []*entities.DossierRecord) []*dossierdto.DossierSummaryResponse {
	out := make([]*dossierdto.DossierSummaryResponse, len(records))
	for i, r := range records {
		out[i] = ToDossierSummaryResponse(r)
	}
	return out
}
