package patient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/apothedoc/clinic-transfer/internal/platform/rest"
	"github.com/apothedoc/clinic-transfer/pkg/jsontypes"
)

type repoAPI struct {
	client *rest.Client
	log    zerolog.Logger
}

// NewRepoAPI returns a Repository backed by the clinic API.
func NewRepoAPI(client *rest.Client, log zerolog.Logger) Repository {
	return &repoAPI{client: client, log: log}
}

type listWrapper struct {
	Patients []Patient `json:"patients"`
}

type detailsWrapper struct {
	PatientDetails *Details `json:"patientDetails"`
}

type createResponse struct {
	Success   *bool `json:"success"`
	PatientID *int  `json:"patientId"`
}

func (r *repoAPI) List(ctx context.Context) ([]Patient, error) {
	var w listWrapper
	if err := r.client.Get(ctx, r.client.ClinicPath("patient/list"), &w); err != nil {
		return nil, fmt.Errorf("get patient list: %w", err)
	}
	for i := range w.Patients {
		dob, err := jsontypes.NormalizeDateTime(w.Patients[i].DateOfBirth)
		if err != nil {
			r.log.Warn().Err(err).Str("mrn", w.Patients[i].MRN).Msg("keeping unparseable date of birth as-is")
		}
		w.Patients[i].DateOfBirth = dob
	}
	return w.Patients, nil
}

func (r *repoAPI) Details(ctx context.Context, patientID int) (*Details, error) {
	var w detailsWrapper
	path := r.client.ClinicPath(fmt.Sprintf("patient/%d/details", patientID))
	if err := r.client.Get(ctx, path, &w); err != nil {
		return nil, fmt.Errorf("get patient details: %w", err)
	}
	return w.PatientDetails, nil
}

func (r *repoAPI) Create(ctx context.Context, p Patient) (int, error) {
	// The destination assigns the id; never forward the source one.
	p.ID = nil

	var resp createResponse
	err := r.client.Post(ctx, r.client.ClinicPath("patient/new"), p, &resp)
	if rest.IsStatus(err, http.StatusConflict) {
		return 0, fmt.Errorf("create patient mrn %s: %w", p.MRN, ErrConflict)
	}
	if err != nil {
		return 0, fmt.Errorf("create patient mrn %s: %w", p.MRN, err)
	}
	if resp.PatientID == nil {
		return 0, fmt.Errorf("create patient mrn %s: destination returned no patient id", p.MRN)
	}
	return *resp.PatientID, nil
}

func (r *repoAPI) CreateDetails(ctx context.Context, patientID int, d Details) error {
	path := r.client.ClinicPath(fmt.Sprintf("patient/%d/details", patientID))
	if err := r.client.Post(ctx, path, d, nil); err != nil {
		return fmt.Errorf("post patient details: %w", err)
	}
	return nil
}
