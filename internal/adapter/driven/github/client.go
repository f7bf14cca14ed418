// Package github implements the DatasetLoader port over the GitHub repository
// contents API, reading datasets straight from the repository that backs the
// published verification site.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/cbitosc/verify25/internal/adapter/driven/dataset"
	"github.com/cbitosc/verify25/internal/domain/model"
	"github.com/cbitosc/verify25/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.DatasetLoader = (*Client)(nil)

// Client loads <root>/<event>/data.json from a GitHub repository.
type Client struct {
	gh       *gh.Client
	owner    string
	repo     string
	ref      string // Branch, tag or SHA; empty means the default branch.
	rootPath string // Directory holding the event directories, e.g. "docs".
}

// Options selects the repository and directory datasets are read from.
type Options struct {
	Repo     string // owner/repo
	Ref      string
	RootPath string
	Token    string // Optional; public repositories work unauthenticated.
	Timeout  time.Duration
}

// NewClient creates a new GitHub dataset client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching, so repeated page
//     views of the same event cost no rate limit)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client, PAT auth when a token is given)
func NewClient(opts Options) (*Client, error) {
	owner, repo, err := splitRepo(opts.Repo)
	if err != nil {
		return nil, err
	}

	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	rateLimitClient.Timeout = opts.Timeout

	client := gh.NewClient(rateLimitClient)
	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	}

	return &Client{
		gh:       client,
		owner:    owner,
		repo:     repo,
		ref:      opts.Ref,
		rootPath: strings.Trim(opts.RootPath, "/"),
	}, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, opts Options) (*Client, error) {
	owner, repo, err := splitRepo(opts.Repo)
	if err != nil {
		return nil, err
	}

	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{
		gh:       client,
		owner:    owner,
		repo:     repo,
		ref:      opts.Ref,
		rootPath: strings.Trim(opts.RootPath, "/"),
	}, nil
}

// Load retrieves and decodes the dataset of event. API failures, missing
// files and undecodable content are *model.FetchError; content that is not a
// list of records is *model.ParseError.
func (c *Client) Load(ctx context.Context, event string) ([]model.VerificationRecord, error) {
	filePath := path.Join(c.rootPath, event, dataset.DataFileName)
	source := fmt.Sprintf("github:%s/%s/%s", c.owner, c.repo, filePath)

	var opts *gh.RepositoryContentGetOptions
	if c.ref != "" {
		opts = &gh.RepositoryContentGetOptions{Ref: c.ref}
	}

	file, _, resp, err := c.gh.Repositories.GetContents(ctx, c.owner, c.repo, filePath, opts)
	if err != nil {
		return nil, &model.FetchError{Event: event, Source: source, Err: err}
	}
	logRateLimit(resp, source)

	if file == nil {
		return nil, &model.FetchError{Event: event, Source: source, Err: fmt.Errorf("%s is a directory", filePath)}
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, &model.FetchError{Event: event, Source: source, Err: fmt.Errorf("decode content: %w", err)}
	}

	return dataset.DecodeRecords(event, source, strings.NewReader(content))
}

func logRateLimit(resp *gh.Response, endpoint string) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 10 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

func splitRepo(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo name %q: expected owner/repo", fullName)
	}
	return parts[0], parts[1], nil
}
