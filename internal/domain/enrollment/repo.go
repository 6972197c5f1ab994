package enrollment

import "context"

type Repository interface {
	Status(ctx context.Context, patientID int) (Status, error)
	Details(ctx context.Context, patientID int, careType string) (*Enrollment, error)
	Create(ctx context.Context, patientID int, careType string, e Enrollment) error
}
