// Package chart covers the per-patient chart sub-resources that transfer
// as-is: allergies/medications, emergency contacts, and contact information.
// None of them carry staff identity references.
package chart

// AllergyMedication is the free-text allergy and medication record kept on
// a patient's chart.
type AllergyMedication struct {
	Allergies   string `json:"allergies,omitempty"`
	Medications string `json:"medications,omitempty"`
}

// Empty reports whether there is nothing worth posting.
func (a AllergyMedication) Empty() bool {
	return a.Allergies == "" && a.Medications == ""
}

type EmergencyContact struct {
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	Email        string `json:"email,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
}

type ContactInformation struct {
	ID           int               `json:"id,omitempty"`
	PhoneNumber  string            `json:"phoneNumber,omitempty"`
	Address      string            `json:"address,omitempty"`
	Apt          string            `json:"apt,omitempty"`
	City         string            `json:"city,omitempty"`
	State        string            `json:"state,omitempty"`
	Zip          string            `json:"zip,omitempty"`
	Email        string            `json:"email,omitempty"`
	ContactDays  map[string]string `json:"contactDays,omitempty"`
	ContactTimes map[string]string `json:"contactTimes,omitempty"`
}
