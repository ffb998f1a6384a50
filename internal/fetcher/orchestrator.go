package fetcher

import (
	"context"
	"sid/internal/apperror"
	"sid/internal/models"
	"sid/internal/providers"
	"sid/internal/structures"
	"sid/internal/upstream"
	"sync"
	"time"
)

const directoryKey = "directory"

// OrchestratorInterface drives cache population for the aggregation
// engine: the user directory, per-owner post collections and the
// merged all-posts view, and per-post comment counts.
type OrchestratorInterface interface {
	Directory(ctx context.Context) ([]models.User, error)
	EnsurePosts(ctx context.Context, ownerIDs []string)
	CommentCounts(ctx context.Context, postIDs []int) map[int]int
	Posts() []models.Post
	PostCount(ownerID string) int
	CachedUsers() int
	CachedPosts() int
}

type Orchestrator struct {
	client    upstream.SourceClient
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	now       func() time.Time
	batchSize int

	dirStore     *models.FreshStore[string, []models.User]
	postStore    *models.FreshStore[string, []models.Post]
	commentStore *models.FreshStore[int, int]

	mergedMu sync.RWMutex
	merged   []models.Post
}

func NewOrchestrator(conf *structures.Config, client upstream.SourceClient, logger providers.Logger, metrics providers.MetricsProviderInterface) OrchestratorInterface {
	batchSize := conf.Fetcher.BatchSize
	if batchSize <= 0 {
		batchSize = 10
	}
	ttl := conf.Freshness.TTL

	return &Orchestrator{
		client:       client,
		logger:       logger,
		metrics:      metrics,
		now:          time.Now,
		batchSize:    batchSize,
		dirStore:     models.NewFreshStore[string, []models.User](ttl),
		postStore:    models.NewFreshStore[string, []models.Post](ttl),
		commentStore: models.NewFreshStore[int, int](ttl),
	}
}

// Directory returns the user directory, refreshing it when stale.
// A refresh failure degrades to the previous directory; with nothing
// cached the error is fatal for the whole computation.
func (o *Orchestrator) Directory(ctx context.Context) ([]models.User, error) {
	users, degraded, err := o.dirStore.GetOrRefresh(directoryKey, o.now(), func() ([]models.User, error) {
		return o.client.FetchUsers(ctx)
	})
	if err != nil {
		return nil, apperror.DirectoryUnavailable(err)
	}
	if degraded {
		o.logger.Warnf(providers.TypeUpstream, "directory refresh failed, serving stale copy of %d users", len(users))
		o.metrics.IncStaleServed()
	}
	o.metrics.SetCachedUsers(len(users))
	return users, nil
}

// EnsurePosts refreshes the post collections of every stale owner,
// one goroutine per owner, and folds the results into the merged
// view. Failures degrade per owner and never abort the call.
//
// Owner ids must be distinct within one call: the merged view allows
// only one in-flight replace per owner at a time.
func (o *Orchestrator) EnsurePosts(ctx context.Context, ownerIDs []string) {
	now := o.now()

	var wg sync.WaitGroup
	for _, id := range ownerIDs {
		if o.postStore.Fresh(id, now) {
			continue
		}
		wg.Add(1)
		go func(ownerID string) {
			defer wg.Done()
			o.refreshOwner(ctx, ownerID, now)
		}(id)
	}
	wg.Wait()

	o.metrics.SetCachedPosts(o.CachedPosts())
}

func (o *Orchestrator) refreshOwner(ctx context.Context, ownerID string, now time.Time) {
	posts, err := o.client.FetchPosts(ctx, ownerID)
	if err != nil {
		if _, _, ok := o.postStore.Get(ownerID); ok {
			o.logger.Warnf(providers.TypeUpstream, "posts refresh for user %s failed, keeping stale entries: %s", ownerID, err)
			o.metrics.IncStaleServed()
			return
		}
		o.logger.Warnf(providers.TypeUpstream, "treating posts of user %s as none: %s", ownerID, apperror.FetchFailed("posts:"+ownerID, err))
		o.metrics.IncDegradedLookups()
		return
	}

	stamped := make([]models.Post, len(posts))
	for i, p := range posts {
		p.FetchedAt = now
		stamped[i] = p
	}
	o.postStore.Put(ownerID, stamped, now)
	o.mergeOwner(ownerID, stamped)
}

// mergeOwner atomically replaces the owner's contribution to the
// merged view: remove-then-append, never a partial overlap.
func (o *Orchestrator) mergeOwner(ownerID string, posts []models.Post) {
	o.mergedMu.Lock()
	defer o.mergedMu.Unlock()

	next := make([]models.Post, 0, len(o.merged)+len(posts))
	for _, p := range o.merged {
		if p.OwnerID != ownerID {
			next = append(next, p)
		}
	}
	o.merged = append(next, posts...)
}

// CommentCounts resolves the comment count of every given post,
// cache-first. Ids are processed in fixed-size batches, sequential
// between batches and concurrent within one, as backpressure against
// the rate-limited upstream. A failed id counts as 0.
func (o *Orchestrator) CommentCounts(ctx context.Context, postIDs []int) map[int]int {
	counts := make(map[int]int, len(postIDs))
	var mu sync.Mutex

	for start := 0; start < len(postIDs); start += o.batchSize {
		end := min(start+o.batchSize, len(postIDs))

		var wg sync.WaitGroup
		for _, id := range postIDs[start:end] {
			wg.Add(1)
			go func(postID int) {
				defer wg.Done()
				n := o.commentCount(ctx, postID)
				mu.Lock()
				counts[postID] = n
				mu.Unlock()
			}(id)
		}
		wg.Wait()
	}

	return counts
}

func (o *Orchestrator) commentCount(ctx context.Context, postID int) int {
	count, degraded, err := o.commentStore.GetOrRefresh(postID, o.now(), func() (int, error) {
		comments, err := o.client.FetchComments(ctx, postID)
		if err != nil {
			return 0, err
		}
		return len(comments), nil
	})
	if err != nil {
		o.logger.Warnf(providers.TypeUpstream, "comment count for post %d unavailable, counting 0: %s", postID, err)
		o.metrics.IncDegradedLookups()
		return 0
	}
	if degraded {
		o.metrics.IncStaleServed()
	}
	return count
}

// Posts returns a snapshot of the merged all-posts view.
func (o *Orchestrator) Posts() []models.Post {
	o.mergedMu.RLock()
	defer o.mergedMu.RUnlock()

	snapshot := make([]models.Post, len(o.merged))
	copy(snapshot, o.merged)
	return snapshot
}

func (o *Orchestrator) PostCount(ownerID string) int {
	posts, _, ok := o.postStore.Get(ownerID)
	if !ok {
		return 0
	}
	return len(posts)
}

func (o *Orchestrator) CachedUsers() int {
	users, _, ok := o.dirStore.Get(directoryKey)
	if !ok {
		return 0
	}
	return len(users)
}

func (o *Orchestrator) CachedPosts() int {
	o.mergedMu.RLock()
	defer o.mergedMu.RUnlock()
	return len(o.merged)
}
