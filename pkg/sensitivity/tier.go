package sensitivity

import "homeplan/pkg/constants"

// Tier is the display color bucket for one grid cell. Display layers map
// tiers to colors; they never recompute the thresholds themselves.
type Tier string

const (
	// TierLow through TierHigh are the ascending payment buckets for
	// comfortable cells.
	TierLow  Tier = "low"
	TierMid  Tier = "mid"
	TierHigh Tier = "high"

	// TierAlert marks an uncomfortable cell regardless of payment magnitude.
	TierAlert Tier = "alert"
)

// ColorTier buckets a cell against the grid-wide payment range. min and max
// come from Grid.MonthlyRange.
func ColorTier(cell Cell, min, max float64) Tier {
	if !cell.Comfortable {
		return TierAlert
	}

	normalized := 0.0
	if max > min {
		normalized = (cell.Monthly - min) / (max - min)
	}

	switch {
	case normalized <= constants.TierLowCutoff:
		return TierLow
	case normalized <= constants.TierMidCutoff:
		return TierMid
	default:
		return TierHigh
	}
}
