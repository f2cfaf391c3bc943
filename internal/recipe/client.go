package recipe

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultSearchNumber = 50

// APIClient fetches recipes from a remote search API that answers with a
// {"results": [...]} payload.
type APIClient struct {
	client *resty.Client
	log    *zap.Logger
}

// NewAPIClient creates a client for the given base URL. The API key is sent
// as a query parameter on every request.
func NewAPIClient(baseURL, apiKey string, timeout time.Duration, log *zap.Logger) *APIClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetQueryParam("apiKey", apiKey).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &APIClient{
		client: client,
		log:    log,
	}
}

// Search queries the remote recipe search endpoint.
func (c *APIClient) Search(ctx context.Context, q Query) ([]*Recipe, error) {
	number := q.Number
	if number <= 0 {
		number = defaultSearchNumber
	}

	req := c.client.R().
		SetContext(ctx).
		SetQueryParam("number", strconv.Itoa(number)).
		SetQueryParam("addRecipeNutrition", "true").
		SetQueryParam("fillIngredients", "true")

	if q.Text != "" {
		req.SetQueryParam("query", q.Text)
	}
	if q.Diet != "" {
		req.SetQueryParam("diet", q.Diet)
	}
	if q.MaxReadyMinutes > 0 {
		req.SetQueryParam("maxReadyTime", strconv.Itoa(q.MaxReadyMinutes))
	}

	var payload SearchResponse
	resp, err := req.SetResult(&payload).Get("/recipes/complexSearch")
	if err != nil {
		return nil, fmt.Errorf("recipe search request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("recipe search returned status %d", resp.StatusCode())
	}

	c.log.Debug("recipe search completed",
		zap.Int("results", len(payload.Results)),
		zap.Duration("elapsed", resp.Time()),
	)
	return payload.Results, nil
}
