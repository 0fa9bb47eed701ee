package lifecycle

import "copiadora_xpto/internal/domain/entities"

// MutationPolicy decides whether actor may change step.
type MutationPolicy func(actor entities.Actor, step entities.Step) bool

// ResponsableOnly allows only the assigned responsable user. Admins get no
// bypass; unassigned steps cannot be mutated by anyone.
func ResponsableOnly(actor entities.Actor, step entities.Step) bool {
	return step.ResponsableID != nil && *step.ResponsableID == actor.UserID
}
