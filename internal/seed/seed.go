// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"murmur/internal/models"
	"murmur/internal/observability"
	"murmur/internal/repository"
	"murmur/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DefaultPassword is shared by every seeded account.
const DefaultPassword = "password123"

// Options configures the seeder.
type Options struct {
	NumUsers        int
	PostsPerUser    int
	FollowsPerUser  int
	LikesPerPost    int
	CommentsPerPost int
	// Seed makes generated content reproducible when non-zero.
	Seed int64
}

// Result reports what was created.
type Result struct {
	Users    []uint
	Posts    []uint
	Follows  int
	Likes    int
	Comments int
}

// Seeder creates demo data through the same services the HTTP API uses, so
// seeded rows satisfy every invariant the API enforces.
type Seeder struct {
	db    *gorm.DB
	users repository.UserRepository
	auth  *service.AuthService
	graph *service.GraphService
	posts *service.PostService
	faker *gofakeit.Faker
}

// NewSeeder wires a Seeder to db. Passing nil services is not supported.
func NewSeeder(db *gorm.DB, users repository.UserRepository, auth *service.AuthService, graph *service.GraphService, posts *service.PostService) *Seeder {
	return &Seeder{
		db:    db,
		users: users,
		auth:  auth,
		graph: graph,
		posts: posts,
		faker: gofakeit.New(0),
	}
}

// ClearAll removes every row created by the API.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"likes", "comments", "posts", "follows", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Run creates users, then posts, follows, likes and comments between them.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Seed != 0 {
		s.faker = gofakeit.New(opts.Seed)
	}
	res := &Result{}

	for i := 0; i < opts.NumUsers; i++ {
		id, err := s.createUser(ctx, i)
		if err != nil {
			return res, err
		}
		res.Users = append(res.Users, id)
	}

	for _, userID := range res.Users {
		for j := 0; j < opts.PostsPerUser; j++ {
			created, err := s.posts.CreatePost(ctx, service.CreatePostInput{
				UserID:      userID,
				Title:       strings.TrimSuffix(s.faker.Sentence(5), "."),
				Description: s.faker.Paragraph(1, 3, 8, " "),
			})
			if err != nil {
				return res, fmt.Errorf("create post: %w", err)
			}
			res.Posts = append(res.Posts, created.PostID)
		}
	}

	for _, userID := range res.Users {
		for _, target := range s.pick(res.Users, opts.FollowsPerUser, userID) {
			if _, err := s.graph.Follow(ctx, userID, target); err != nil {
				if models.HasCode(err, models.CodeConflict) {
					continue
				}
				return res, fmt.Errorf("follow: %w", err)
			}
			res.Follows++
		}
	}

	for _, postID := range res.Posts {
		for _, userID := range s.pick(res.Users, opts.LikesPerPost, 0) {
			if _, err := s.posts.LikePost(ctx, userID, postID); err != nil {
				if models.HasCode(err, models.CodeConflict) {
					continue
				}
				return res, fmt.Errorf("like: %w", err)
			}
			res.Likes++
		}
		for c := 0; c < opts.CommentsPerPost && len(res.Users) > 0; c++ {
			commenter := res.Users[s.faker.Number(0, len(res.Users)-1)]
			if _, err := s.posts.AddComment(ctx, postID, commenter, s.faker.Sentence(8)); err != nil {
				return res, fmt.Errorf("comment: %w", err)
			}
			res.Comments++
		}
	}

	observability.Logger.InfoContext(ctx, "seed complete",
		slog.Int("users", len(res.Users)),
		slog.Int("posts", len(res.Posts)),
		slog.Int("follows", res.Follows),
		slog.Int("likes", res.Likes),
		slog.Int("comments", res.Comments),
	)
	return res, nil
}

func (s *Seeder) createUser(ctx context.Context, i int) (uint, error) {
	first := alnum(s.faker.FirstName())
	last := alnum(s.faker.LastName())
	username := fmt.Sprintf("%s%s%d", first, last, i)
	if len(username) > 30 {
		username = username[len(username)-30:]
	}
	mail := strings.ToLower(fmt.Sprintf("%s.%s.%d@%s", first, last, i, s.faker.DomainName()))

	if _, err := s.auth.Register(ctx, service.RegisterInput{
		Username: username,
		Mail:     mail,
		Password: DefaultPassword,
	}); err != nil {
		return 0, fmt.Errorf("register %s: %w", mail, err)
	}

	user, err := s.users.GetByMail(ctx, mail)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, fmt.Errorf("registered user %s not found", mail)
	}
	return user.ID, nil
}

// pick returns up to n distinct ids from ids, never including exclude.
func (s *Seeder) pick(ids []uint, n int, exclude uint) []uint {
	candidates := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != exclude {
			candidates = append(candidates, id)
		}
	}
	s.faker.ShuffleAnySlice(candidates)
	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n]
}

func alnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}
