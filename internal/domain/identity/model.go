package identity

// Provider is a clinical staff member who can perform care sessions and own
// enrollments. Rosters are tenant-local: provider 7 at the source clinic has
// no relation to provider 7 at the destination.
type Provider struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// User is a portal account. Users submit care sessions; they are a separate
// identity namespace from providers and the two must never be conflated.
type User struct {
	ID                int             `json:"id"`
	FirstName         string          `json:"firstName"`
	LastName          string          `json:"lastName"`
	Email             string          `json:"email,omitempty"`
	Disabled          *bool           `json:"disabled,omitempty"`
	OrgAdmin          *bool           `json:"orgAdmin,omitempty"`
	ClinicLevelAccess map[string]bool `json:"clinicLevelAccess,omitempty"`
}

// CanAccessClinic reports whether the user is eligible to act in the given
// clinic: org admins always can, others need an explicit clinic access flag.
func (u *User) CanAccessClinic(clinicID string) bool {
	if u.Disabled != nil && *u.Disabled {
		return false
	}
	if u.OrgAdmin != nil && *u.OrgAdmin {
		return true
	}
	return u.ClinicLevelAccess[clinicID]
}

// IDMapping pairs a source-tenant identity with its destination-tenant
// counterpart. Mappings are partitioned by namespace (provider vs user) at
// the configuration level and loaded once per run.
type IDMapping struct {
	SourceID int `json:"sourceId" mapstructure:"source_id"`
	TargetID int `json:"targetId" mapstructure:"target_id"`
}
