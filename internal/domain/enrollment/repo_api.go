package enrollment

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

type statusWrapper struct {
	Success            *bool   `json:"success"`
	CurrentEnrollments *Status `json:"currentEnrollments"`
}

type detailsWrapper struct {
	Success    *bool       `json:"success"`
	Enrollment *Enrollment `json:"enrollment"`
}

func (r *repoAPI) Status(ctx context.Context, patientID int) (Status, error) {
	var w statusWrapper
	path := r.client.ClinicPath(fmt.Sprintf("patient/%d/enrollment/status", patientID))
	if err := r.client.Get(ctx, path, &w); err != nil {
		return Status{}, fmt.Errorf("get enrollment status: %w", err)
	}
	if w.CurrentEnrollments == nil {
		return Status{}, fmt.Errorf("no enrollment status in response for patient %d", patientID)
	}
	return *w.CurrentEnrollments, nil
}

func (r *repoAPI) Details(ctx context.Context, patientID int, careType string) (*Enrollment, error) {
	var w detailsWrapper
	path := r.client.ClinicPath(fmt.Sprintf("patient/%d/enrollment/%s", patientID, careType))
	if err := r.client.Get(ctx, path, &w); err != nil {
		return nil, fmt.Errorf("get %s enrollment details: %w", careType, err)
	}
	if w.Enrollment == nil {
		return nil, fmt.Errorf("no %s enrollment details in response for patient %d", careType, patientID)
	}
	e := w.Enrollment
	e.EnrollmentDate = r.normalize(e.EnrollmentDate, patientID)
	e.CancellationDate = r.normalize(e.CancellationDate, patientID)
	e.InformationSheet = r.normalize(e.InformationSheet, patientID)
	e.PatientAgreement = r.normalize(e.PatientAgreement, patientID)
	return e, nil
}

func (r *repoAPI) normalize(date string, patientID int) string {
	out, err := jsontypes.NormalizeDateTime(date)
	if err != nil {
		r.log.Warn().Err(err).Int("patient_id", patientID).Msg("keeping unparseable enrollment date as-is")
	}
	return out
}

func (r *repoAPI) Create(ctx context.Context, patientID int, careType string, e Enrollment) error {
	path := r.client.ClinicPath(fmt.Sprintf("patient/%d/enrollment/%s", patientID, careType))
	if err := r.client.Post(ctx, path, e, nil); err != nil {
		return fmt.Errorf("post %s enrollment: %w", careType, err)
	}
	return nil
}
