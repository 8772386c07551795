package service

import (
	"context"
	"testing"

	"murmur/internal/auth"
	"murmur/internal/database"
	"murmur/internal/events"
	"murmur/internal/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type userRepoStub struct {
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByMailFn      func(context.Context, string) (*models.User, error)
	createFn         func(context.Context, *models.User) error
	countFollowersFn func(context.Context, uint) (int64, error)
	countFollowingFn func(context.Context, uint) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByMail(ctx context.Context, mail string) (*models.User, error) {
	return s.getByMailFn(ctx, mail)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}
func (s *userRepoStub) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}

type followRepoStub struct {
	followFn        func(context.Context, uint, uint) error
	unfollowFn      func(context.Context, uint, uint) error
	listFollowersFn func(context.Context, uint) ([]models.FollowEntry, error)
	listFollowingFn func(context.Context, uint) ([]models.FollowEntry, error)
}

func (s *followRepoStub) Follow(ctx context.Context, followerID, followeeID uint) error {
	return s.followFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return s.unfollowFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) ListFollowers(ctx context.Context, userID uint) ([]models.FollowEntry, error) {
	return s.listFollowersFn(ctx, userID)
}
func (s *followRepoStub) ListFollowing(ctx context.Context, userID uint) ([]models.FollowEntry, error) {
	return s.listFollowingFn(ctx, userID)
}

type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, uint) (*models.Post, error)
	listByUserFn  func(context.Context, uint) ([]models.Post, error)
	deleteOwnedFn func(context.Context, uint, uint) error
	likeFn        func(context.Context, uint, uint) error
	unlikeFn      func(context.Context, uint, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *postRepoStub) DeleteOwned(ctx context.Context, postID, userID uint) error {
	return s.deleteOwnedFn(ctx, postID, userID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}

type commentRepoStub struct {
	createForPostFn func(context.Context, *models.Comment) error
	listByPostFn    func(context.Context, uint) ([]models.Comment, error)
}

func (s *commentRepoStub) CreateForPost(ctx context.Context, comment *models.Comment) error {
	return s.createForPostFn(ctx, comment)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, recipientID uint, ev events.Event) error {
	args := m.Called(ctx, recipientID, ev)
	return args.Error(0)
}

type tokenStub struct {
	issueFn  func(*models.User) (string, error)
	revokeFn func(context.Context, *auth.Claims) error
}

func (s *tokenStub) Issue(user *models.User) (string, error) {
	return s.issueFn(user)
}
func (s *tokenStub) Revoke(ctx context.Context, claims *auth.Claims) error {
	return s.revokeFn(ctx, claims)
}

func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}
