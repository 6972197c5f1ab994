package patient

// Patient is one clinic roster entry. IDs are tenant-local and assigned by
// the destination on create; the MRN is the natural key used to detect that
// a patient already exists at the destination.
type Patient struct {
	ID            *int   `json:"id,omitempty"`
	FirstName     string `json:"firstName,omitempty"`
	MiddleName    string `json:"middleName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	PreferredName string `json:"preferredName,omitempty"`
	MRN           string `json:"mrn,omitempty"`
	DateOfBirth   string `json:"dateOfBirth,omitempty"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	Gender        string `json:"gender,omitempty"`
	MedicareID    string `json:"medicareId,omitempty"`
}

// Details is the extended demographic record behind /patient/{id}/details.
type Details struct {
	FirstName     string `json:"firstName,omitempty"`
	MiddleName    string `json:"middleName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	PreferredName string `json:"preferredName,omitempty"`
	MRN           string `json:"mrn,omitempty"`
	DateOfBirth   string `json:"dateOfBirth,omitempty"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	Gender        string `json:"gender,omitempty"`
	MedicareID    string `json:"medicareId,omitempty"`
	NonHealthNote string `json:"nonHealthNote,omitempty"`
}

// FindByMRN scans a roster for the entry with the given MRN. MRNs are
// treated as unique within a tenant; first match wins. Returns nil when the
// MRN is empty or absent.
func FindByMRN(roster []Patient, mrn string) *Patient {
	if mrn == "" {
		return nil
	}
	for i := range roster {
		if roster[i].MRN == mrn {
			return &roster[i]
		}
	}
	return nil
}
