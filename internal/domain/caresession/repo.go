package caresession

import "context"

// Repository reads and writes one tenant's care sessions. Page is one call
// against the paged collection endpoint; the transfer layer aggregates pages
// until the reported total is satisfied.
type Repository interface {
	Page(ctx context.Context, patientID, page int) (sessions []CareSession, total int, err error)
	Create(ctx context.Context, patientID int, s CareSession) error
}
