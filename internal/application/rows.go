package application

import "github.com/fmhf/recipe-pick/internal/domain/model"

// BuildRows expands recipes into picklist rows: one row per item, recipes
// and items kept in the order given, tiers resolved 1 through 6.
func BuildRows(recipes []model.Recipe) []model.PicklistRow {
	var n int
	for _, rec := range recipes {
		n += len(rec.Items)
	}

	rows := make([]model.PicklistRow, 0, n)
	for _, rec := range recipes {
		for _, item := range rec.Items {
			rows = append(rows, buildRow(rec.Title, item))
		}
	}
	return rows
}

func buildRow(title string, item model.Item) model.PicklistRow {
	row := model.PicklistRow{
		Title:    title,
		ItemCode: item.Code,
		ItemName: item.Name,
	}
	for i, tier := range model.Tiers {
		row.Picks[i] = item.Ratios.Picks(tier)
	}
	return row
}
