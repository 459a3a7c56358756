package store

import (
	"strings"

	"gms/bay-service/internal/models"
)

// serviceKeywords are the hint words that relate a service title to a bay
// name ("Oil Change" -> "Oil & Lube").
var serviceKeywords = []string{"oil", "alignment", "brake", "repair", "tire", "inspection"}

// MatchBay picks the best available bay for a free-text service hint.
// Preference order: substring match between hint and bay name (either
// direction, case-insensitive), then a shared service keyword, then the
// first available bay in sequence order. Bays must already be sorted by seq.
func MatchBay(bays []models.Bay, hint string) (models.Bay, bool) {
	hint = strings.ToLower(strings.TrimSpace(hint))

	if hint != "" {
		for _, bay := range bays {
			if !bay.Available {
				continue
			}
			name := strings.ToLower(bay.Name)
			if strings.Contains(name, hint) || strings.Contains(hint, name) {
				return bay, true
			}
		}
		for _, keyword := range serviceKeywords {
			if !strings.Contains(hint, keyword) {
				continue
			}
			for _, bay := range bays {
				if bay.Available && strings.Contains(strings.ToLower(bay.Name), keyword) {
					return bay, true
				}
			}
		}
	}

	for _, bay := range bays {
		if bay.Available {
			return bay, true
		}
	}
	return models.Bay{}, false
}
