package model

import "strconv"

// PicklistHeader is the fixed header of a picklist CSV.
var PicklistHeader = []string{
	"name",
	"skus.mapping.value",
	"skus.mapping.name",
	"skus.mapping.picks.1",
	"skus.mapping.picks.2",
	"skus.mapping.picks.3",
	"skus.mapping.picks.4",
	"skus.mapping.picks.5",
	"skus.mapping.picks.6",
}

// PicklistRow is one (recipe, item) line of a picklist. Picks[0] holds the
// pick count for tier 1.
type PicklistRow struct {
	Title    string
	ItemCode string
	ItemName string
	Picks    [TierCount]uint32
}

// Record renders the row as CSV fields in header order.
func (r PicklistRow) Record() []string {
	record := make([]string, 0, len(PicklistHeader))
	record = append(record, r.Title, r.ItemCode, r.ItemName)
	for _, p := range r.Picks {
		record = append(record, strconv.FormatUint(uint64(p), 10))
	}
	return record
}
