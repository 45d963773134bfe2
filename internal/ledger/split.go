package ledger

import (
	"fmt"
	"math"
	"strings"

	"github.com/mmynk/tripkit/internal/models"
)

// SplitMode selects how an expense amount is divided among participants.
type SplitMode string

const (
	// SplitEqual computes amount/n once in full float precision and assigns
	// it to every participant. Totals with fractional cents do not reconcile
	// exactly (10 split 3 ways is three 3.333... shares).
	SplitEqual SplitMode = "equal"

	// SplitReconcile works in minor units: each participant gets the floor
	// of the per-person cents and the leftover cents go one each to the
	// first participants, so the shares sum exactly to the amount.
	SplitReconcile SplitMode = "reconcile"
)

// ParseSplitMode resolves a configuration value. Empty means SplitEqual.
func ParseSplitMode(s string) (SplitMode, error) {
	switch SplitMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SplitEqual:
		return SplitEqual, nil
	case SplitReconcile:
		return SplitReconcile, nil
	default:
		return "", fmt.Errorf("unknown split mode %q (want %q or %q)", s, SplitEqual, SplitReconcile)
	}
}

// SplitEqually divides amount among participants, one split per participant
// in participant order.
func SplitEqually(amount float64, participants []string, mode SplitMode) ([]models.Split, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	splits := make([]models.Split, len(participants))

	if mode == SplitReconcile {
		cents := toCents(amount)
		n := int64(len(participants))
		base, remainder := cents/n, cents%n
		for i, id := range participants {
			share := base
			if int64(i) < remainder {
				share++
			}
			splits[i] = models.Split{TravelerID: id, Amount: float64(share) / 100}
		}
		return splits, nil
	}

	splitAmount := amount / float64(len(participants))
	for i, id := range participants {
		splits[i] = models.Split{TravelerID: id, Amount: splitAmount}
	}
	return splits, nil
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
