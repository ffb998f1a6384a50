package services

import (
	"context"
	"sid/internal/apperror"
	"sid/internal/fetcher"
	"sid/internal/models"
	"sort"
)

const (
	KindLatest  = "latest"
	KindPopular = "popular"

	DefaultLimit = 5
)

type InsightServiceInterface interface {
	TopUsers(ctx context.Context, limit int) ([]models.RankedUser, error)
	Posts(ctx context.Context, kind string, limit int) ([]models.Post, error)
	CachedUsers() int
	CachedPosts() int
}

type InsightService struct {
	orch fetcher.OrchestratorInterface
}

func NewInsightService(orch fetcher.OrchestratorInterface) InsightServiceInterface {
	return &InsightService{orch: orch}
}

// TopUsers ranks the directory by post count, descending. Equal
// counts keep directory order: the upstream defines no tie-break, so
// the stable sort preserves the order the directory arrived in.
func (s *InsightService) TopUsers(ctx context.Context, limit int) ([]models.RankedUser, error) {
	if limit <= 0 {
		return nil, apperror.ValidationFailed("limit", "limit must be a positive integer")
	}

	users, err := s.orch.Directory(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	s.orch.EnsurePosts(ctx, ids)

	ranked := make([]models.RankedUser, len(users))
	for i, u := range users {
		ranked[i] = models.RankedUser{
			ID:          u.ID,
			DisplayName: u.DisplayName,
			PostCount:   s.orch.PostCount(u.ID),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PostCount > ranked[j].PostCount
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Posts serves the "latest" and "popular" views. An unknown kind is
// rejected before any remote call is made.
func (s *InsightService) Posts(ctx context.Context, kind string, limit int) ([]models.Post, error) {
	switch kind {
	case KindLatest, KindPopular:
	default:
		return nil, apperror.ValidationFailed("kind", "kind must be one of: latest, popular")
	}
	if kind == KindLatest && limit <= 0 {
		return nil, apperror.ValidationFailed("limit", "limit must be a positive integer")
	}

	if err := s.ensureAllPosts(ctx); err != nil {
		return nil, err
	}

	if kind == KindPopular {
		return s.popularPosts(ctx), nil
	}
	return s.latestPosts(limit), nil
}

func (s *InsightService) ensureAllPosts(ctx context.Context) error {
	users, err := s.orch.Directory(ctx)
	if err != nil {
		return err
	}

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	s.orch.EnsurePosts(ctx, ids)
	return nil
}

// popularPosts returns every post whose comment count equals the
// maximum: the full tie set, which is all posts when all counts are
// equal. An empty merged view yields an empty set.
func (s *InsightService) popularPosts(ctx context.Context) []models.Post {
	posts := s.orch.Posts()
	if len(posts) == 0 {
		return []models.Post{}
	}

	ids := make([]int, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	counts := s.orch.CommentCounts(ctx, ids)

	maxCount := 0
	for _, p := range posts {
		if counts[p.ID] > maxCount {
			maxCount = counts[p.ID]
		}
	}

	popular := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if counts[p.ID] == maxCount {
			popular = append(popular, p)
		}
	}
	return popular
}

func (s *InsightService) latestPosts(limit int) []models.Post {
	posts := s.orch.Posts()

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].FetchedAt.After(posts[j].FetchedAt)
	})

	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts
}

func (s *InsightService) CachedUsers() int {
	return s.orch.CachedUsers()
}

func (s *InsightService) CachedPosts() int {
	return s.orch.CachedPosts()
}
