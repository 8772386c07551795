package service

import (
	"context"
	"testing"

	"murmur/internal/events"
	"murmur/internal/models"
	"murmur/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newGraphFixture(t *testing.T) (*GraphService, *gorm.DB, *MockPublisher) {
	t.Helper()
	db := setupSQLiteDB(t)
	pub := new(MockPublisher)
	svc := NewGraphService(repository.NewFollowRepository(db), repository.NewUserRepository(db), pub)
	return svc, db, pub
}

func seedUser(t *testing.T, db *gorm.DB, username, mail string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Mail: mail, PassHash: "hash"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestGraphService_FollowIsMutual(t *testing.T) {
	svc, db, pub := newGraphFixture(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice", "a@x.com")
	bob := seedUser(t, db, "bob", "b@x.com")

	pub.On("Publish", mock.Anything, bob.ID, mock.MatchedBy(func(ev events.Event) bool {
		return ev.Type == events.TypeFollow && ev.ActorID == alice.ID
	})).Return(nil).Once()

	msg, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Success!", msg)

	following, err := svc.Following(ctx, alice.ID)
	require.NoError(t, err)
	followers, err := svc.Followers(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.FollowEntry{{ID: bob.ID, Username: "bob"}}, following)
	assert.Equal(t, []models.FollowEntry{{ID: alice.ID, Username: "alice"}}, followers)
	pub.AssertExpectations(t)
}

func TestGraphService_FollowTwice(t *testing.T) {
	svc, db, pub := newGraphFixture(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice", "a@x.com")
	bob := seedUser(t, db, "bob", "b@x.com")
	pub.On("Publish", mock.Anything, bob.ID, mock.Anything).Return(nil).Once()

	_, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.Follow(ctx, alice.ID, bob.ID)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeConflict))
	assert.Equal(t, "User is already followed!", err.Error())

	summary, err := svc.Summary(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Followers)
	pub.AssertNumberOfCalls(t, "Publish", 1)
}

func TestGraphService_FollowSelfRejected(t *testing.T) {
	svc := NewGraphService(&followRepoStub{
		followFn: func(context.Context, uint, uint) error {
			t.Fatal("repository must not be called for self-follow")
			return nil
		},
	}, nil, nil)

	_, err := svc.Follow(context.Background(), 3, 3)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeValidation))
}

func TestGraphService_FollowMissingTarget(t *testing.T) {
	svc, db, _ := newGraphFixture(t)
	alice := seedUser(t, db, "alice", "a@x.com")

	_, err := svc.Follow(context.Background(), alice.ID, 999)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
	assert.Equal(t, "User not found!", err.Error())
}

func TestGraphService_UnfollowMissingTargetLeavesGraphIntact(t *testing.T) {
	svc, db, pub := newGraphFixture(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice", "a@x.com")
	bob := seedUser(t, db, "bob", "b@x.com")
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.Unfollow(ctx, alice.ID, 999)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeNotFound))

	summary, err := svc.Summary(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Followings)
}

func TestGraphService_UnfollowRestoresBothSides(t *testing.T) {
	svc, db, pub := newGraphFixture(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice", "a@x.com")
	bob := seedUser(t, db, "bob", "b@x.com")
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	msg, err := svc.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Success!", msg)

	aliceSummary, err := svc.Summary(ctx, alice.ID)
	require.NoError(t, err)
	bobSummary, err := svc.Summary(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), aliceSummary.Followings)
	assert.Equal(t, int64(0), bobSummary.Followers)

	// Unfollowing again is a no-op success.
	_, err = svc.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
}

func TestGraphService_Summary(t *testing.T) {
	svc := NewGraphService(nil, &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "alice"}, nil
		},
		countFollowersFn: func(context.Context, uint) (int64, error) { return 4, nil },
		countFollowingFn: func(context.Context, uint) (int64, error) { return 2, nil },
	}, nil)

	summary, err := svc.Summary(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, &models.UserSummary{Username: "alice", Followers: 4, Followings: 2}, summary)
}

func TestGraphService_SummaryMissingUser(t *testing.T) {
	svc := NewGraphService(nil, &userRepoStub{
		getByIDFn: func(context.Context, uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User not found!")
		},
	}, nil)

	_, err := svc.Summary(context.Background(), 1)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}
