package services

import (
	"context"
	"sid/internal/apperror"
	"sid/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- local mock orchestrator (scoped to service tests) ---

type mockOrchestrator struct {
	users    []models.User
	usersErr error

	postsByOwner map[string][]models.Post
	merged       []models.Post
	counts       map[int]int

	directoryCalls int
	ensureCalls    [][]string
	countCalls     [][]int
}

func (m *mockOrchestrator) Directory(_ context.Context) ([]models.User, error) {
	m.directoryCalls++
	if m.usersErr != nil {
		return nil, m.usersErr
	}
	return m.users, nil
}

func (m *mockOrchestrator) EnsurePosts(_ context.Context, ownerIDs []string) {
	m.ensureCalls = append(m.ensureCalls, ownerIDs)
}

func (m *mockOrchestrator) CommentCounts(_ context.Context, postIDs []int) map[int]int {
	m.countCalls = append(m.countCalls, postIDs)
	out := make(map[int]int, len(postIDs))
	for _, id := range postIDs {
		out[id] = m.counts[id]
	}
	return out
}

func (m *mockOrchestrator) Posts() []models.Post {
	snapshot := make([]models.Post, len(m.merged))
	copy(snapshot, m.merged)
	return snapshot
}

func (m *mockOrchestrator) PostCount(ownerID string) int { return len(m.postsByOwner[ownerID]) }
func (m *mockOrchestrator) CachedUsers() int             { return len(m.users) }
func (m *mockOrchestrator) CachedPosts() int             { return len(m.merged) }

func (m *mockOrchestrator) remoteCalls() int {
	return m.directoryCalls + len(m.ensureCalls) + len(m.countCalls)
}

// --- helpers ---

func postAt(id int, owner string, fetchedAt time.Time) models.Post {
	return models.Post{ID: id, OwnerID: owner, FetchedAt: fetchedAt}
}

func nPosts(owner string, n int) []models.Post {
	posts := make([]models.Post, n)
	for i := range posts {
		posts[i] = models.Post{ID: i, OwnerID: owner}
	}
	return posts
}

// --- TopUsers ---

func TestTopUsers_SortsByPostCountDescending(t *testing.T) {
	orch := &mockOrchestrator{
		users: []models.User{
			{ID: "a", DisplayName: "Alice"},
			{ID: "b", DisplayName: "Bob"},
			{ID: "c", DisplayName: "Carol"},
		},
		postsByOwner: map[string][]models.Post{
			"a": nPosts("a", 1),
			"b": nPosts("b", 3),
			"c": nPosts("c", 2),
		},
	}
	svc := NewInsightService(orch)

	ranked, err := svc.TopUsers(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, ranked, 3)
	assert.Equal(t, "b", ranked[0].ID)
	assert.Equal(t, 3, ranked[0].PostCount)
	assert.Equal(t, "c", ranked[1].ID)
	assert.Equal(t, "a", ranked[2].ID)
}

func TestTopUsers_TieBreakPreservesDirectoryOrder(t *testing.T) {
	orch := &mockOrchestrator{
		users: []models.User{
			{ID: "a", DisplayName: "Alice"},
			{ID: "b", DisplayName: "Bob"},
			{ID: "c", DisplayName: "Carol"},
		},
		postsByOwner: map[string][]models.Post{
			"a": nPosts("a", 3),
			"b": nPosts("b", 5),
			"c": nPosts("c", 5),
		},
	}
	svc := NewInsightService(orch)

	ranked, err := svc.TopUsers(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, ranked, 2)
	assert.Equal(t, models.RankedUser{ID: "b", DisplayName: "Bob", PostCount: 5}, ranked[0])
	assert.Equal(t, models.RankedUser{ID: "c", DisplayName: "Carol", PostCount: 5}, ranked[1])
}

func TestTopUsers_TruncatesToLimit(t *testing.T) {
	orch := &mockOrchestrator{
		users: []models.User{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		postsByOwner: map[string][]models.Post{
			"a": nPosts("a", 1), "b": nPosts("b", 2), "c": nPosts("c", 3),
		},
	}
	svc := NewInsightService(orch)

	ranked, err := svc.TopUsers(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "c", ranked[0].ID)
}

func TestTopUsers_InvalidLimit(t *testing.T) {
	orch := &mockOrchestrator{}
	svc := NewInsightService(orch)

	_, err := svc.TopUsers(context.Background(), 0)
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, 0, orch.remoteCalls())
}

func TestTopUsers_DirectoryUnavailable(t *testing.T) {
	orch := &mockOrchestrator{usersErr: apperror.DirectoryUnavailable(assert.AnError)}
	svc := NewInsightService(orch)

	_, err := svc.TopUsers(context.Background(), 5)
	assert.ErrorIs(t, err, apperror.ErrDirectoryUnavailable)
}

func TestTopUsers_EnsuresPostsForAllOwners(t *testing.T) {
	orch := &mockOrchestrator{
		users: []models.User{{ID: "a"}, {ID: "b"}},
	}
	svc := NewInsightService(orch)

	_, err := svc.TopUsers(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, orch.ensureCalls, 1)
	assert.Equal(t, []string{"a", "b"}, orch.ensureCalls[0])
}

// --- Posts: validation ---

func TestPosts_UnknownKindNeverHitsRemote(t *testing.T) {
	orch := &mockOrchestrator{}
	svc := NewInsightService(orch)

	_, err := svc.Posts(context.Background(), "bogus", 5)
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, 0, orch.remoteCalls())
}

func TestPosts_LatestInvalidLimit(t *testing.T) {
	orch := &mockOrchestrator{}
	svc := NewInsightService(orch)

	_, err := svc.Posts(context.Background(), KindLatest, -1)
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, 0, orch.remoteCalls())
}

func TestPosts_DirectoryUnavailable(t *testing.T) {
	orch := &mockOrchestrator{usersErr: apperror.DirectoryUnavailable(assert.AnError)}
	svc := NewInsightService(orch)

	_, err := svc.Posts(context.Background(), KindPopular, 5)
	assert.ErrorIs(t, err, apperror.ErrDirectoryUnavailable)
}

// --- Posts: popular ---

func TestPopular_ReturnsFullMaxTieSet(t *testing.T) {
	orch := &mockOrchestrator{
		users:  []models.User{{ID: "a"}},
		merged: []models.Post{{ID: 1, OwnerID: "a"}, {ID: 2, OwnerID: "a"}, {ID: 3, OwnerID: "a"}},
		counts: map[int]int{1: 2, 2: 5, 3: 5},
	}
	svc := NewInsightService(orch)

	posts, err := svc.Posts(context.Background(), KindPopular, 5)
	require.NoError(t, err)

	require.Len(t, posts, 2)
	assert.Equal(t, 2, posts[0].ID)
	assert.Equal(t, 3, posts[1].ID)
}

func TestPopular_AllZeroCountsReturnsEverything(t *testing.T) {
	orch := &mockOrchestrator{
		users:  []models.User{{ID: "a"}},
		merged: []models.Post{{ID: 1, OwnerID: "a"}, {ID: 2, OwnerID: "a"}},
		counts: map[int]int{},
	}
	svc := NewInsightService(orch)

	posts, err := svc.Posts(context.Background(), KindPopular, 5)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestPopular_EmptyMergedViewReturnsEmptySet(t *testing.T) {
	orch := &mockOrchestrator{users: []models.User{{ID: "a"}}}
	svc := NewInsightService(orch)

	posts, err := svc.Posts(context.Background(), KindPopular, 5)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Empty(t, orch.countCalls, "no comment lookups for an empty view")
}

// --- Posts: latest ---

func TestLatest_OrdersByFetchedAtDescending(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	orch := &mockOrchestrator{
		users: []models.User{{ID: "a"}},
		merged: []models.Post{
			postAt(1, "a", base.Add(100*time.Second)),
			postAt(2, "a", base.Add(300*time.Second)),
			postAt(3, "a", base.Add(200*time.Second)),
		},
	}
	svc := NewInsightService(orch)

	posts, err := svc.Posts(context.Background(), KindLatest, 2)
	require.NoError(t, err)

	require.Len(t, posts, 2)
	assert.Equal(t, 2, posts[0].ID)
	assert.Equal(t, 3, posts[1].ID)
}

func TestLatest_StableForEqualTimestamps(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	orch := &mockOrchestrator{
		users: []models.User{{ID: "a"}},
		merged: []models.Post{
			postAt(1, "a", base),
			postAt(2, "a", base),
			postAt(3, "a", base),
		},
	}
	svc := NewInsightService(orch)

	posts, err := svc.Posts(context.Background(), KindLatest, 5)
	require.NoError(t, err)

	require.Len(t, posts, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{posts[0].ID, posts[1].ID, posts[2].ID})
}
