package patient

import (
	"context"
	"errors"
)

// ErrConflict means the destination rejected a create because a patient with
// the same MRN already exists there. Callers resolve it against the
// destination roster rather than treating it as a failure.
var ErrConflict = errors.New("patient: MRN already exists in destination clinic")

type Repository interface {
	List(ctx context.Context) ([]Patient, error)
	Details(ctx context.Context, patientID int) (*Details, error)
	// Create posts the patient with its source-side id stripped and returns
	// the destination-assigned id, or ErrConflict on a natural-key conflict.
	Create(ctx context.Context, p Patient) (int, error)
	CreateDetails(ctx context.Context, patientID int, d Details) error
}
