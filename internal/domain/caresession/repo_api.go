package caresession

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/apothedoc/clinic-transfer/internal/platform/rest"
	"github.com/apothedoc/clinic-transfer/pkg/jsontypes"
)

type repoAPI struct {
	client *rest.Client
	log    zerolog.Logger
}

func NewRepoAPI(client *rest.Client, log zerolog.Logger) Repository {
	return &repoAPI{client: client, log: log}
}

// careMetaData mirrors the collection metadata the API returns alongside
// each page; only the total count matters for aggregation.
type careMetaData struct {
	Counts struct {
		Total int `json:"total"`
	} `json:"counts"`
	PageSize int `json:"pageSize"`
}

type pageWrapper struct {
	CareSessions []CareSession `json:"careSessions"`
	CareMetaData careMetaData  `json:"careMetaData"`
}

func (r *repoAPI) Page(ctx context.Context, patientID, page int) ([]CareSession, int, error) {
	var w pageWrapper
	path := r.client.ClinicPath(fmt.Sprintf("patient/%d/care-sessions?page=%d&type=total", patientID, page))
	if err := r.client.Get(ctx, path, &w); err != nil {
		return nil, 0, fmt.Errorf("get care sessions page %d: %w", page, err)
	}
	for i := range w.CareSessions {
		s := &w.CareSessions[i]
		s.PerformedOn = r.normalize(s.PerformedOn, patientID)
		s.SubmittedAt = r.normalize(s.SubmittedAt, patientID)
	}
	return w.CareSessions, w.CareMetaData.Counts.Total, nil
}

func (r *repoAPI) normalize(date string, patientID int) string {
	out, err := jsontypes.NormalizeDateTime(date)
	if err != nil {
		r.log.Warn().Err(err).Int("patient_id", patientID).Msg("keeping unparseable care session date as-is")
	}
	return out
}

func (r *repoAPI) Create(ctx context.Context, patientID int, s CareSession) error {
	path := r.client.ClinicPath(fmt.Sprintf("patient/%d/care-session", patientID))
	if err := r.client.Post(ctx, path, s, nil); err != nil {
		return fmt.Errorf("post care session: %w", err)
	}
	return nil
}
