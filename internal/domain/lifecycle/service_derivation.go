package lifecycle

import "copiadora_xpto/internal/domain/entities"

// promotion computes a new service status from its steps.
type promotion func(steps []entities.Step) (entities.ServiceStatus, bool)

// serviceDerivations is keyed by (current service status, triggering event).
// Only PENDING services are ever promoted, and only to IN_PROGRESS. IN_PROGRESS,
// CONCLUDED and CANCELLED have no entries: steps never move them.
var serviceDerivations = map[entities.ServiceStatus]map[entities.StepEventKind]promotion{
	entities.ServiceStatusPending: {
		entities.StepEventStarted:       promoteWhenAnyInProgress,
		entities.StepEventConcluded:     promoteWhenAnyInProgress,
		entities.StepEventCancelled:     promoteWhenAnyInProgress,
		entities.StepEventStepsReplaced: promoteWhenAnyInProgress,
		entities.StepEventServiceEdited: promoteWhenAnyInProgress,
	},
}

func promoteWhenAnyInProgress(steps []entities.Step) (entities.ServiceStatus, bool) {
	for _, s := range steps {
		if s.Status == entities.StepStatusInProgress {
			return entities.ServiceStatusInProgress, true
		}
	}
	return "", false
}

// DeriveServiceStatus returns the status the service must move to after event,
// given the current steps (already including the change that triggered it).
// The second value is false when the service must keep its status.
func DeriveServiceStatus(current entities.ServiceStatus, event entities.StepEventKind, steps []entities.Step) (entities.ServiceStatus, bool) {
	rule, ok := serviceDerivations[current][event]
	if !ok {
		return current, false
	}
	next, changed := rule(steps)
	if !changed || next == current {
		return current, false
	}
	return next, true
}
