package caresession

import (
	"github.com/apothedoc/clinic-transfer/internal/domain/identity"
	"github.com/apothedoc/clinic-transfer/pkg/jsontypes"
)

// CareSession is one unit of billed care time. It belongs to exactly one
// patient and is independent of any enrollment. performedBy is a provider
// reference, submittedBy a user reference; the two resolve against different
// identity namespaces.
type CareSession struct {
	ID                    *int               `json:"id,omitempty"`
	CareType              string             `json:"careType,omitempty"`
	UsingManualTimeEntry  jsontypes.IntBool  `json:"usingManualTimeEntry"`
	DurationSeconds       *int               `json:"durationSeconds,omitempty"`
	PerformedOn           string             `json:"performedOn,omitempty"`
	SubmittedAt           string             `json:"submittedAt,omitempty"`
	PerformedBy           *identity.Provider `json:"performedBy"`
	SubmittedBy           *identity.User     `json:"submittedBy,omitempty"`
	CareNote              string             `json:"careNote,omitempty"`
	ComplexCare           jsontypes.IntBool  `json:"complexCare"`
	InteractedWithPatient jsontypes.IntBool  `json:"interactedWithPatient"`
}

// ForDestination returns a copy ready to post to the destination tenant:
// the session id, submitted-at timestamp, and submitted-by reference
// describe source-tenant provenance and must be server-assigned there.
func (s CareSession) ForDestination() CareSession {
	s.ID = nil
	s.SubmittedAt = ""
	s.SubmittedBy = nil
	return s
}
