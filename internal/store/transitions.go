package store

import "gms/bay-service/internal/models"

var transitionMap = map[string][]string{
	"assign":   {models.StatusPending},
	"enqueue":  {models.StatusPending},
	"promote":  {models.StatusPending},
	"complete": {models.StatusPending, models.StatusInProgress},
	"clear":    {models.StatusPending, models.StatusInProgress},
	"delete":   {models.StatusPending, models.StatusInProgress},
}

// ValidTransition reports whether an action is allowed from a work order
// status. Legacy free-form statuses are tolerated on read but never
// transitionable.
func ValidTransition(action, fromStatus string) bool {
	allowed, ok := transitionMap[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}
	return false
}
