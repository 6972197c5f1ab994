package chart

import (
	"context"
	"fmt"

	"github.com/apothedoc/clinic-transfer/internal/platform/rest"
)

type repoAPI struct {
	client *rest.Client
}

func NewRepoAPI(client *rest.Client) Repository {
	return &repoAPI{client: client}
}

type allergyWrapper struct {
	AllergiesMedications *AllergyMedication `json:"allergiesMedications"`
}

type emergencyContactWrapper struct {
	EmergencyContacts []EmergencyContact `json:"emergencyContacts"`
}

type contactInformationWrapper struct {
	ContactInformation *ContactInformation `json:"contactInformation"`
}

func (r *repoAPI) patientPath(patientID int, sub string) string {
	return r.client.ClinicPath(fmt.Sprintf("patient/%d/%s", patientID, sub))
}

func (r *repoAPI) AllergyMedication(ctx context.Context, patientID int) (*AllergyMedication, error) {
	var w allergyWrapper
	if err := r.client.Get(ctx, r.patientPath(patientID, "allergy-medication"), &w); err != nil {
		return nil, fmt.Errorf("get allergy medication: %w", err)
	}
	return w.AllergiesMedications, nil
}

func (r *repoAPI) EmergencyContacts(ctx context.Context, patientID int) ([]EmergencyContact, error) {
	var w emergencyContactWrapper
	if err := r.client.Get(ctx, r.patientPath(patientID, "emergency-contact"), &w); err != nil {
		return nil, fmt.Errorf("get emergency contacts: %w", err)
	}
	return w.EmergencyContacts, nil
}

func (r *repoAPI) ContactInformation(ctx context.Context, patientID int) (*ContactInformation, error) {
	var w contactInformationWrapper
	if err := r.client.Get(ctx, r.patientPath(patientID, "contact-information"), &w); err != nil {
		return nil, fmt.Errorf("get contact information: %w", err)
	}
	return w.ContactInformation, nil
}

func (r *repoAPI) CreateAllergyMedication(ctx context.Context, patientID int, a AllergyMedication) error {
	if err := r.client.Post(ctx, r.patientPath(patientID, "allergy-medication"), a, nil); err != nil {
		return fmt.Errorf("post allergy medication: %w", err)
	}
	return nil
}

func (r *repoAPI) CreateEmergencyContacts(ctx context.Context, patientID int, contacts []EmergencyContact) error {
	if err := r.client.Post(ctx, r.patientPath(patientID, "emergency-contact"), contacts, nil); err != nil {
		return fmt.Errorf("post emergency contacts: %w", err)
	}
	return nil
}

func (r *repoAPI) CreateContactInformation(ctx context.Context, patientID int, ci ContactInformation) error {
	// Contact information ids are tenant-local like everything else.
	ci.ID = 0
	if err := r.client.Post(ctx, r.patientPath(patientID, "contact-information"), ci, nil); err != nil {
		return fmt.Errorf("post contact information: %w", err)
	}
	return nil
}
