package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/gramline/gramline/internal/app"
	"github.com/gramline/gramline/internal/config"
	"github.com/gramline/gramline/internal/logger"
	"github.com/gramline/gramline/internal/model"
	"github.com/gramline/gramline/internal/repository"
)

// Seeds the database with fake users, follows, posts, stories, comments
// and likes. Goes through the service layer so all the usual rules apply.
func main() {
	users := flag.Int("users", 10, "number of users to create")
	postsPerUser := flag.Int("posts", 3, "posts per user")
	storiesPerUser := flag.Int("stories", 2, "stories per user")
	seed := flag.Int64("seed", 0, "faker seed (0 = random)")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), "")

	if *seed != 0 {
		gofakeit.Seed(*seed)
	}

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer func() { _ = a.Close() }()

	created := make([]*model.User, 0, *users)
	posts := make([]*model.Post, 0, (*users)*(*postsPerUser))
	for i := 0; i < *users; i++ {
		status := model.ProfileStatusOpen
		if gofakeit.Bool() {
			status = model.ProfileStatusPrivate
		}

		user, err := a.AuthService.Register(
			gofakeit.Username(),
			gofakeit.Email(),
			gofakeit.Password(true, true, true, false, false, 16),
			gofakeit.Sentence(6),
			status,
		)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateUser) {
				continue
			}
			slog.Error("failed to create user", "error", err)
			os.Exit(1)
		}

		created = append(created, user)
	}

	for _, user := range created {
		for _, other := range created {
			if other.ID == user.ID || !gofakeit.Bool() {
				continue
			}
			_, err := a.FollowService.Follow(user.ID, other.ID)
			if err != nil {
				slog.Warn("failed to create follow", "error", err)
			}
		}

		for i := 0; i < *postsPerUser; i++ {
			post, err := a.PostService.Create(user.ID, gofakeit.Sentence(10), nil, nil)
			if err != nil {
				slog.Warn("failed to create post", "error", err)
				continue
			}
			posts = append(posts, post)
		}

		captions := make([]string, 0, *storiesPerUser)
		for i := 0; i < *storiesPerUser; i++ {
			captions = append(captions, gofakeit.Sentence(8))
		}
		if len(captions) > 0 {
			_, err := a.StoryService.CreateBatch(user.ID, captions)
			if err != nil {
				slog.Warn("failed to create stories", "error", err)
			}
		}
	}

	for _, user := range created {
		for _, post := range posts {
			if !gofakeit.Bool() {
				continue
			}

			_, err := a.CommentService.Create(user.ID, &post.ID, nil, gofakeit.Sentence(5))
			if err != nil {
				slog.Warn("failed to create comment", "error", err)
			}

			if gofakeit.Bool() {
				_, err = a.LikeService.Like(user.ID, &post.ID, nil, nil)
				if err != nil {
					slog.Warn("failed to create like", "error", err)
				}
			}
		}
	}

	slog.Info("seed complete", "users", len(created), "posts", len(posts))
}
