package planning

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"

	"github.com/fmhf/recipe-pick/internal/domain/model"
)

// searchRequest is the JSON body of a recipe search.
type searchRequest struct {
	Codes []string `json:"codes"`
}

// searchResponse is the recipe search payload with items expanded.
type searchResponse struct {
	Recipes []recipeJSON `json:"recipes"`
}

type recipeJSON struct {
	Title string     `json:"title"`
	Items []itemJSON `json:"cskus"`
}

type itemJSON struct {
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	ServingsRatio map[string]float64 `json:"servings_ratio"`
}

// SearchRecipes fetches every recipe matching codes in market in a single
// request, with item serving ratios expanded. The bearer token is attached by
// an oauth2 transport layered over the client's own transport. An empty
// result is not an error here.
func (c *Client) SearchRecipes(ctx context.Context, token model.Token, market string, codes []string) ([]model.Recipe, error) {
	if market == "" {
		return nil, errors.New("market is required")
	}

	body, err := json.Marshal(searchRequest{Codes: codes})
	if err != nil {
		return nil, fmt.Errorf("marshaling search request: %w", err)
	}

	u := c.planningURL.JoinPath(market, "recipe", "search")
	u.RawQuery = "expand=skus"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.bearerClient(token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching recipes in market %s: %w", market, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		slog.Debug("planning: recipe search rejected", "status", resp.StatusCode, "market", market)
		return nil, err
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	recipes := make([]model.Recipe, 0, len(sr.Recipes))
	for _, r := range sr.Recipes {
		recipes = append(recipes, mapRecipe(r))
	}

	slog.Debug("planning: recipes fetched", "market", market, "codes", len(codes), "recipes", len(recipes))
	return recipes, nil
}

// bearerClient wraps the client's transport so every request carries token.
func (c *Client) bearerClient(token model.Token) *http.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: string(token),
		TokenType:   "Bearer",
	})
	return &http.Client{
		Timeout:   c.httpClient.Timeout,
		Transport: &oauth2.Transport{Source: src, Base: c.httpClient.Transport},
	}
}

// mapRecipe converts a search payload recipe into the domain model.
func mapRecipe(r recipeJSON) model.Recipe {
	items := make([]model.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, model.Item{
			Code:   it.Code,
			Name:   it.Name,
			Ratios: mapRatios(r.Title, it),
		})
	}
	return model.Recipe{Title: r.Title, Items: items}
}

// mapRatios looks up each supported tier by its exact decimal key ("1".."6").
// Other keys, including aliases such as "02" or "+3", are dropped; a dropped
// or absent tier resolves to zero picks downstream.
func mapRatios(title string, it itemJSON) model.ServingRatios {
	var ratios model.ServingRatios
	for _, tier := range model.Tiers {
		if v, ok := it.ServingsRatio[tierKey(tier)]; ok {
			ratios.Set(tier, v)
		}
	}

	for key := range it.ServingsRatio {
		n, err := strconv.Atoi(key)
		if err != nil || !model.Tier(n).Valid() || tierKey(model.Tier(n)) != key {
			slog.Debug("planning: ignoring serving ratio",
				"recipe", title,
				"item", it.Code,
				"servings", key,
			)
		}
	}
	return ratios
}

func tierKey(t model.Tier) string {
	return strconv.Itoa(int(t))
}
