package service

import "supply-pulse/internal/domain"

// MatchPatterns selects the patterns whose constraints are all satisfied by
// the order. Constraints left nil never gate. Pure function, no side effects;
// an empty result is a normal outcome and the baseline applies downstream.
func MatchPatterns(po domain.PurchaseOrder, patterns []domain.DelayPattern) []domain.DelayPattern {
	matched := make([]domain.DelayPattern, 0, len(patterns))
	for _, p := range patterns {
		if patternMatches(po, p) {
			matched = append(matched, p)
		}
	}
	return matched
}

func patternMatches(po domain.PurchaseOrder, p domain.DelayPattern) bool {
	if p.MinOrderVolume != nil && po.OrderVolume < *p.MinOrderVolume {
		return false
	}
	if p.MaxOrderVolume != nil && po.OrderVolume > *p.MaxOrderVolume {
		return false
	}
	if p.ShipmentMode != nil && po.ShipmentMode != *p.ShipmentMode {
		return false
	}
	if p.Seasonality != nil && po.Seasonality != *p.Seasonality {
		return false
	}
	return true
}
