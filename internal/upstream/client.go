package upstream

import (
	"context"
	"fmt"
	"net/http"
	"sid/internal/apperror"
	"sid/internal/models"
	"sid/internal/providers"
	"sid/internal/structures"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

const (
	resourceUsers    = "users"
	resourcePosts    = "posts"
	resourceComments = "comments"

	outcomeOk    = "ok"
	outcomeError = "error"
)

// SourceClient fetches one resource per call from the remote API.
// Any network error or non-2xx status surfaces as an error wrapping
// apperror.ErrUpstream.
type SourceClient interface {
	FetchUsers(ctx context.Context) ([]models.User, error)
	FetchPosts(ctx context.Context, ownerID string) ([]models.Post, error)
	FetchComments(ctx context.Context, postID int) ([]models.Comment, error)
}

type Client struct {
	baseURL string
	token   string
	client  *http.Client
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) SourceClient {
	return &Client{
		baseURL: conf.Upstream.BaseURL,
		token:   conf.Upstream.Token,
		client:  &http.Client{Timeout: conf.Upstream.Timeout},
		logger:  logger,
		metrics: metrics,
	}
}

func (c *Client) FetchUsers(ctx context.Context) ([]models.User, error) {
	var raw []apiUser
	if err := c.getJSON(ctx, resourceUsers, "/users", &raw); err != nil {
		return nil, err
	}

	users := make([]models.User, len(raw))
	for i, u := range raw {
		users[i] = models.User{ID: u.ID, DisplayName: u.Name}
	}
	return users, nil
}

func (c *Client) FetchPosts(ctx context.Context, ownerID string) ([]models.Post, error) {
	var raw []apiPost
	if err := c.getJSON(ctx, resourcePosts, "/users/"+ownerID+"/posts", &raw); err != nil {
		return nil, err
	}

	posts := make([]models.Post, len(raw))
	for i, p := range raw {
		// FetchedAt is left zero; the cache stamps it at insertion.
		posts[i] = models.Post{ID: p.ID, OwnerID: ownerID, Content: p.Content}
	}
	return posts, nil
}

func (c *Client) FetchComments(ctx context.Context, postID int) ([]models.Comment, error) {
	var raw []apiComment
	if err := c.getJSON(ctx, resourceComments, "/posts/"+strconv.Itoa(postID)+"/comments", &raw); err != nil {
		return nil, err
	}

	comments := make([]models.Comment, len(raw))
	for i, cm := range raw {
		comments[i] = models.Comment{ID: cm.ID, PostID: postID, Content: cm.Content}
	}
	return comments, nil
}

func (c *Client) getJSON(ctx context.Context, resource, path string, out interface{}) error {
	start := time.Now()
	err := c.doGetJSON(ctx, path, out)
	c.metrics.ObserveUpstreamDuration(resource, time.Since(start))

	if err != nil {
		c.metrics.IncUpstreamRequests(resource, outcomeError)
		c.logger.Warnf(providers.TypeUpstream, "GET %s failed: %s", path, err)
		return &apperror.AppError{
			Err:     apperror.ErrUpstream,
			Message: fmt.Sprintf("upstream GET %s: %s", path, err),
		}
	}

	c.metrics.IncUpstreamRequests(resource, outcomeOk)
	c.logger.Debugf(providers.TypeUpstream, "GET %s ok in %s", path, time.Since(start))
	return nil
}

func (c *Client) doGetJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
