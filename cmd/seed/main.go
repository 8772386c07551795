// Command seed populates the database with demo data.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"murmur/internal/auth"
	"murmur/internal/bootstrap"
	"murmur/internal/config"
	"murmur/internal/events"
	"murmur/internal/repository"
	"murmur/internal/seed"
	"murmur/internal/service"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	postsPerUser := flag.Int("posts", 5, "Posts per user")
	follows := flag.Int("follows", 5, "Follows per user")
	likes := flag.Int("likes", 3, "Likes per post")
	comments := flag.Int("comments", 2, "Comments per post")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	rngSeed := flag.Int64("seed", 0, "Random seed for reproducible data (0 = random)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Printf("Target: %d users, %d posts each, clean=%v\n", *numUsers, *postsPerUser, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, rdb, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour, rdb)
	pub := events.NewPublisher(rdb)

	s := seed.NewSeeder(db, userRepo,
		service.NewAuthService(userRepo, tokens),
		service.NewGraphService(repository.NewFollowRepository(db), userRepo, pub),
		service.NewPostService(postRepo, commentRepo, pub),
	)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	res, err := s.Run(context.Background(), seed.Options{
		NumUsers:        *numUsers,
		PostsPerUser:    *postsPerUser,
		FollowsPerUser:  *follows,
		LikesPerPost:    *likes,
		CommentsPerPost: *comments,
		Seed:            *rngSeed,
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ Created %d users, %d posts, %d follows, %d likes, %d comments\n",
		len(res.Users), len(res.Posts), res.Follows, res.Likes, res.Comments)
	log.Printf("📧 All seeded users have the password: %s\n", seed.DefaultPassword)
}
