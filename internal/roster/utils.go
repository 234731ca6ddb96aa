package roster

import (
	"slices"

	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/domain"
)

func hasCommittee(team []string, attrs domain.Attributes) bool {
	for _, id := range team {
		if attrs[id].Committee {
			return true
		}
	}
	return false
}

func countGender(team []string, attrs domain.Attributes) (male int, female int) {
	for _, id := range team {
		switch attrs[id].Gender {
		case domain.GenderMale:
			male++
		case domain.GenderFemale:
			female++
		}
	}
	return male, female
}

func inTeam(team []string, id string) bool {
	return slices.Contains(team, id)
}
