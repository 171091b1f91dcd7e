package stemcell

import (
	"context"
	"errors"
)

// ErrNotAvailable reports that the stem cell does not exist, is not
// Available, or has expired. The transaction is rolled back, so a failed
// assignment leaves no state change.
var ErrNotAvailable = errors.New("stem cell is not available")

// Repository performs the atomic assignment.
type Repository interface {
	Assign(ctx context.Context, patientID, stemCellID int64) (*Assignment, error)
}
