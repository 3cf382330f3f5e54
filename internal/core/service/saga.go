package service

import "github.com/ghsm/ticketing-admin/internal/core/domain"

// runSaga executes a two-step write across systems that cannot be transacted
// together: step1 commits first, then step2; if step2 fails, compensate1
// undoes step1. A failed compensation is reported as *domain.CompensationError
// so the inconsistency is never silent. All three mutation paths of the admin
// service are phrased in these terms.
func runSaga(step1, step2, compensate1 func() error) error {
	if err := step1(); err != nil {
		return err
	}
	if err := step2(); err != nil {
		if compErr := compensate1(); compErr != nil {
			return &domain.CompensationError{Cause: err, CompErr: compErr}
		}
		return err
	}
	return nil
}
