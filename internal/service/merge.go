package service

import "github.com/Skotchmaster/marketplace/internal/models"

// MergeLines folds incoming line items into existing ones. A line whose item
// is already present adds its quantity to the first matching line; any other
// line is appended. Order is preserved and existing quantities are never
// overwritten. The existing slice is not modified.
func MergeLines(existing, incoming []models.CartLine) []models.CartLine {
	merged := make([]models.CartLine, len(existing), len(existing)+len(incoming))
	copy(merged, existing)

	for _, in := range incoming {
		found := false
		for i := range merged {
			if merged[i].ItemID == in.ItemID {
				merged[i].Quantity += in.Quantity
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, models.CartLine{ItemID: in.ItemID, Quantity: in.Quantity})
		}
	}
	return merged
}
