package driven

import (
	"context"

	"github.com/fmhf/recipe-pick/internal/domain/model"
)

// RecipeSource defines the driven port for batched recipe lookup.
type RecipeSource interface {
	// SearchRecipes fetches the recipes for codes within market, with item
	// serving ratios expanded. The result preserves the service's order and
	// may be empty.
	SearchRecipes(ctx context.Context, token model.Token, market string, codes []string) ([]model.Recipe, error)
}
