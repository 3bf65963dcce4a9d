// Package gateway provides a gateway to the GitHub GraphQL API,
// turning nested query responses into flat domain records.
package gateway

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/hasura/go-graphql-client"
	"github.com/naka-gawa/ghstats/internal/domain"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// DefaultEndpoint is the public GitHub GraphQL endpoint.
const DefaultEndpoint = "https://api.github.com/graphql"

var (
	//go:embed queries/repo.graphql
	repoQuery string

	//go:embed queries/releases.graphql
	releasesQuery string
)

// Fetcher defines the behavior of a gateway for fetching repositories and releases from GitHub.
type Fetcher interface {
	FetchRepo(ctx context.Context, id domain.RepoID) (domain.Repo, error)
	FetchRepos(ctx context.Context, ids []domain.RepoID) ([]domain.Repo, error)
	FetchReleases(ctx context.Context, repo domain.Repo) ([]domain.Release, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	rawClient     *graphql.Client
	graphqlClient *githubv4.Client
	endpoint      string
	logger        *log.Logger
}

type totalCount struct {
	TotalCount int `json:"totalCount"`
}

type repoQueryData struct {
	Repository *struct {
		Description     *string `json:"description"`
		PrimaryLanguage *struct {
			Name string `json:"name"`
		} `json:"primaryLanguage"`
		Watchers     totalCount `json:"watchers"`
		Stargazers   totalCount `json:"stargazers"`
		ForkCount    int        `json:"forkCount"`
		Issues       totalCount `json:"issues"`
		PullRequests totalCount `json:"pullRequests"`
	} `json:"repository"`
}

// Pointers mark every level the API is allowed to return as null.
type releasesQueryData struct {
	Repository *struct {
		Releases struct {
			Nodes *[]*releaseNode `json:"nodes"`
		} `json:"releases"`
	} `json:"repository"`
}

type releaseNode struct {
	Name          *string `json:"name"`
	TagName       string  `json:"tagName"`
	ReleaseAssets struct {
		Nodes *[]*assetNode `json:"nodes"`
	} `json:"releaseAssets"`
}

type assetNode struct {
	Name          string `json:"name"`
	DownloadCount int    `json:"downloadCount"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty endpoint selects DefaultEndpoint.
func NewGitHubGateway(token, endpoint string, logger *log.Logger) (*GitHubGateway, error) {
	if token == "" {
		return nil, errors.New("token must not be empty")
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   http.DefaultTransport,
			Source: ts,
		},
	}
	return &GitHubGateway{
		rawClient:     newRawClient(endpoint, httpClient),
		graphqlClient: githubv4.NewEnterpriseClient(endpoint, httpClient),
		endpoint:      endpoint,
		logger:        logger,
	}, nil
}

func repoVariables(id domain.RepoID) map[string]any {
	return map[string]any{"owner": id.Owner, "name": id.Name}
}

// FetchRepo fetches the summary counters of a single repository.
func (g *GitHubGateway) FetchRepo(ctx context.Context, id domain.RepoID) (domain.Repo, error) {
	g.logger.Debug("Fetching repository", "repo", id)
	var data repoQueryData
	gqlErr, err := g.post(ctx, repoQuery, repoVariables(id), &data)
	if err != nil {
		return domain.Repo{}, fmt.Errorf("failed to fetch repository %s: %w", id, err)
	}
	r := data.Repository
	if r == nil {
		return domain.Repo{}, fmt.Errorf("failed to fetch repository %s: %w", id, withGraphQL(missingField(FieldRepository), gqlErr))
	}
	if gqlErr != nil {
		g.logger.Warn("Partial response", "repo", id, "err", gqlErr)
	}

	lang := ""
	if r.PrimaryLanguage != nil {
		lang = r.PrimaryLanguage.Name
	}
	repo := domain.Repo{
		ID:               id,
		Description:      r.Description,
		Lang:             lang,
		Watchers:         r.Watchers.TotalCount,
		Stargazers:       r.Stargazers.TotalCount,
		Forks:            r.ForkCount,
		OpenIssues:       r.Issues.TotalCount,
		OpenPullRequests: r.PullRequests.TotalCount,
	}
	g.logger.Debug("Fetched repository", "repo", id, "stars", repo.Stargazers)
	return repo, nil
}

// FetchRepos fetches each repository in turn and stops at the first failure.
// On success the result has the same order as ids.
func (g *GitHubGateway) FetchRepos(ctx context.Context, ids []domain.RepoID) ([]domain.Repo, error) {
	repos := make([]domain.Repo, 0, len(ids))
	for i, id := range ids {
		g.logger.Debugf("[%d/%d] Fetching %s", i+1, len(ids), id)
		repo, err := g.FetchRepo(ctx, id)
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}
	return repos, nil
}

// FetchReleases fetches the releases of repo in the order returned by the API.
func (g *GitHubGateway) FetchReleases(ctx context.Context, repo domain.Repo) ([]domain.Release, error) {
	g.logger.Debug("Fetching releases", "repo", repo.ID)
	var data releasesQueryData
	gqlErr, err := g.post(ctx, releasesQuery, repoVariables(repo.ID), &data)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch releases of %s: %w", repo.ID, err)
	}
	releases, err := mapReleases(data)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch releases of %s: %w", repo.ID, withGraphQL(err, gqlErr))
	}
	if gqlErr != nil {
		g.logger.Warn("Partial response", "repo", repo.ID, "err", gqlErr)
	}
	g.logger.Debug("Fetched releases", "repo", repo.ID, "count", len(releases))
	return releases, nil
}

func mapReleases(data releasesQueryData) ([]domain.Release, error) {
	if data.Repository == nil {
		return nil, missingField(FieldRepository)
	}
	nodes := data.Repository.Releases.Nodes
	if nodes == nil {
		return nil, missingField(FieldReleaseNodes)
	}

	releases := make([]domain.Release, 0, len(*nodes))
	for i, node := range *nodes {
		if node == nil {
			return nil, missingElement(FieldReleaseNode, i)
		}
		assetNodes := node.ReleaseAssets.Nodes
		if assetNodes == nil {
			return nil, missingField(FieldAssetNodes)
		}
		assets := make([]domain.Asset, 0, len(*assetNodes))
		for j, a := range *assetNodes {
			if a == nil {
				return nil, missingElement(FieldAssetNode, j)
			}
			assets = append(assets, domain.Asset{Name: a.Name, Downloads: a.DownloadCount})
		}
		releases = append(releases, domain.Release{
			Name:    node.Name,
			TagName: node.TagName,
			Assets:  assets,
		})
	}
	return releases, nil
}
