package ledger

import (
	"errors"
	"fmt"
)

// ErrNoUsableRows means an uploaded statement produced zero rows after
// header/footer exclusion and date validation. Raised before any commit.
var ErrNoUsableRows = errors.New("no usable rows in uploaded statement")

// PartialCommitError means a batch insert failed after the prior ledger
// dataset was already deleted. Data has been lost; the import must be
// retried manually. Distinguish from ErrNoUsableRows with errors.As.
type PartialCommitError struct {
	BatchesCommitted int
	BatchesTotal     int
	RowsCommitted    int
	Err              error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("ledger replace failed after %d of %d batches (%d rows committed, prior data deleted): %v",
		e.BatchesCommitted, e.BatchesTotal, e.RowsCommitted, e.Err)
}

func (e *PartialCommitError) Unwrap() error {
	return e.Err
}
