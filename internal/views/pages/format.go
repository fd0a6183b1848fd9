package pages

import (
	"fmt"
	"strconv"
	"strings"

	"parfumerie/models"
)

// DefaultDash returns a dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

// FormatVolume renders millilitres without trailing zeros, e.g. "12.5 ml".
func FormatVolume(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64) + " ml"
}

// VolumeStatus describes how a total relates to the bottle sizes.
func VolumeStatus(total float64) string {
	switch {
	case models.ValidTotal(total):
		return "ready"
	case total > models.VolumeLarge:
		return "too much"
	default:
		return fmt.Sprintf("%s to %s", FormatVolume(nextBottle(total)-total), FormatVolume(nextBottle(total)))
	}
}

func nextBottle(total float64) float64 {
	if total < models.VolumeSmall {
		return models.VolumeSmall
	}
	return models.VolumeLarge
}

// SuggestCompositionName returns a default name that does not clash with the
// customer's existing compositions.
func SuggestCompositionName(existing []models.Composition) string {
	const base = "Composition"
	used := make(map[string]struct{}, len(existing))
	for _, composition := range existing {
		name := strings.TrimSpace(composition.Name)
		if name == "" {
			continue
		}
		used[strings.ToLower(name)] = struct{}{}
	}

	for i := len(existing) + 1; ; i++ {
		candidate := fmt.Sprintf("%s %d", base, i)
		if _, ok := used[strings.ToLower(candidate)]; !ok {
			return candidate
		}
	}
}
