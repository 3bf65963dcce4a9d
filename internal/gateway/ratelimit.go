package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/shurcooL/githubv4"
)

// RateLimit is the GraphQL request budget of the authenticated token.
type RateLimit struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Used      int       `json:"used"`
	ResetAt   time.Time `json:"reset_at"`
}

type rateLimitQuery struct {
	RateLimit struct {
		Limit     githubv4.Int
		Remaining githubv4.Int
		Used      githubv4.Int
		ResetAt   githubv4.DateTime
	}
}

// FetchRateLimit reports how many GraphQL points the token has left.
func (g *GitHubGateway) FetchRateLimit(ctx context.Context) (RateLimit, error) {
	var q rateLimitQuery
	if err := g.graphqlClient.Query(ctx, &q, nil); err != nil {
		return RateLimit{}, fmt.Errorf("failed to execute GraphQL query for rate limit: %w", err)
	}
	return RateLimit{
		Limit:     int(q.RateLimit.Limit),
		Remaining: int(q.RateLimit.Remaining),
		Used:      int(q.RateLimit.Used),
		ResetAt:   q.RateLimit.ResetAt.Time,
	}, nil
}
