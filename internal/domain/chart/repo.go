package chart

import "context"

type Repository interface {
	AllergyMedication(ctx context.Context, patientID int) (*AllergyMedication, error)
	EmergencyContacts(ctx context.Context, patientID int) ([]EmergencyContact, error)
	ContactInformation(ctx context.Context, patientID int) (*ContactInformation, error)

	CreateAllergyMedication(ctx context.Context, patientID int, a AllergyMedication) error
	CreateEmergencyContacts(ctx context.Context, patientID int, contacts []EmergencyContact) error
	CreateContactInformation(ctx context.Context, patientID int, ci ContactInformation) error
}
