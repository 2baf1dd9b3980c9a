package driven

import (
	"context"

	"github.com/fmhf/recipe-pick/internal/domain/model"
)

// CodeSource yields the ordered batch of recipe codes for one run.
type CodeSource interface {
	ReadCodes(ctx context.Context) ([]string, error)
}

// PicklistWriter persists a picklist and returns where it was written.
type PicklistWriter interface {
	WritePicklist(ctx context.Context, rows []model.PicklistRow) (string, error)
}
