package orchestrator

import (
	"fmt"

	"github.com/shaiso/ritm-launch/internal/domain"
	"github.com/shaiso/ritm-launch/internal/steps"
)

// Interpretation — что было бы записано обратно в RITM по результату launch.
type Interpretation struct {
	Outcome domain.Outcome

	// JobID — идентификатор job, только для launched.
	JobID string

	// Update — nil для malformed.
	Update *domain.RecordUpdate

	// Err — nil для launched, иначе оборачивает одну из ошибок pipeline.
	Err error
}

// Interpret классифицирует LaunchResult.
//
//	succeeded        → launched, work note + job id + "running" + state "3"
//	malformed        → malformed, без обновления
//	rejected         → rejected, work note со статусом и телом, без смены state
//	transport_failed → transport_failed, work note с ошибкой, без смены state
func Interpret(res steps.LaunchResult) Interpretation {
	switch res.Kind {
	case steps.LaunchSucceeded:
		return Interpretation{
			Outcome: domain.OutcomeLaunched,
			JobID:   res.JobID,
			Update:  domain.LaunchedUpdate(res.JobID),
		}

	case steps.LaunchMalformed:
		return Interpretation{
			Outcome: domain.OutcomeMalformed,
			Err:     fmt.Errorf("%w: %v", ErrResponseMalformed, res.Err),
		}

	case steps.LaunchRejected:
		return Interpretation{
			Outcome: domain.OutcomeRejected,
			Update:  domain.RejectedUpdate(res.StatusCode, res.Body),
			Err:     fmt.Errorf("%w: status %d", ErrControllerRejection, res.StatusCode),
		}

	case steps.LaunchTransportFailed:
		return Interpretation{
			Outcome: domain.OutcomeTransportFailed,
			Update:  domain.TransportFailedUpdate(res.Err),
			Err:     fmt.Errorf("%w: %v", ErrTransportFailure, res.Err),
		}

	default:
		return Interpretation{
			Outcome: domain.OutcomeMalformed,
			Err:     fmt.Errorf("%w: unknown launch result %q", ErrResponseMalformed, res.Kind),
		}
	}
}
