package enrollment

import (
	"github.com/apothedoc/clinic-transfer/internal/domain/identity"
	"github.com/apothedoc/clinic-transfer/pkg/jsontypes"
)

// CareTypes are the four care programs a patient can be enrolled in, one
// enrollment record per (patient, care type).
var CareTypes = []string{"ccm", "bhi", "rpm", "pcm"}

// Enrollment is one patient's enrollment in one care program. The
// primaryClinician and specialist references both resolve against the
// provider namespace.
type Enrollment struct {
	EnrollmentDate             string             `json:"enrollmentDate,omitempty"`
	CancellationDate           string             `json:"cancellationDate,omitempty"`
	InformationSheet           string             `json:"informationSheet,omitempty"`
	PatientAgreement           string             `json:"patientAgreement,omitempty"`
	VerbalAgreement            bool               `json:"verbalAgreement"`
	PrimaryClinician           *identity.Provider `json:"primaryClinician"`
	Specialist                 *identity.Provider `json:"specialist,omitempty"`
	EquipmentSetupAndEducation string             `json:"equipmentSetupAndEducation,omitempty"` // RPM only
	EnrolledSameDayOfficeVisit jsontypes.IntBool  `json:"enrolledSameDayOfficeVisit"`           // CCM only
}

// Status reports which enrollments currently exist for a patient. It is
// queried once per patient to decide which detail calls to make.
type Status struct {
	Ccm bool `json:"ccm"`
	Bhi bool `json:"bhi"`
	Rpm bool `json:"rpm"`
	Pcm bool `json:"pcm"`
}

// Active returns the care types with a live enrollment, in CareTypes order.
func (s Status) Active() []string {
	var active []string
	for _, ct := range CareTypes {
		if s.Has(ct) {
			active = append(active, ct)
		}
	}
	return active
}

// Has reports whether the given care type has a live enrollment.
func (s Status) Has(careType string) bool {
	switch careType {
	case "ccm":
		return s.Ccm
	case "bhi":
		return s.Bhi
	case "rpm":
		return s.Rpm
	case "pcm":
		return s.Pcm
	}
	return false
}

// Count is the number of live enrollments.
func (s Status) Count() int {
	return len(s.Active())
}
