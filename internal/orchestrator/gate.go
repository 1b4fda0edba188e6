package orchestrator

import (
	"fmt"

	"github.com/shaiso/ritm-launch/internal/domain"
)

// CheckState — business-rule gate.
//
// Возвращает nil только для записи в состоянии "2" (in process).
// Для остальных — ErrPreconditionNotMet.
func CheckState(record domain.ChangeRequestRecord) error {
	if !record.RecordState().IsActionable() {
		return fmt.Errorf("%w: state %q, want %q", ErrPreconditionNotMet, record.RecordState(), domain.StateInProcess)
	}
	return nil
}
