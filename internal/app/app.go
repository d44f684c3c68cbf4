package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gramline/gramline/internal/config"
	"github.com/gramline/gramline/internal/db"
	"github.com/gramline/gramline/internal/repository"
	"github.com/gramline/gramline/internal/service"
	"github.com/gramline/gramline/internal/storage"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	Storage        storage.Storage
	AuthService    *service.AuthService
	UserService    *service.UserService
	FollowService  *service.FollowService
	PostService    *service.PostService
	StoryService   *service.StoryService
	CommentService *service.CommentService
	LikeService    *service.LikeService
	MediaService   *service.MediaService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	followRepository := repository.NewFollowRepository(database)
	postRepository := repository.NewPostRepository(database)
	storyRepository := repository.NewStoryRepository(database)
	commentRepository := repository.NewCommentRepository(database)
	likeRepository := repository.NewLikeRepository(database)

	// Storage
	mediaStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	mediaService := service.NewMediaService(mediaStorage)
	authService := service.NewAuthService(userRepository, cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(userRepository, followRepository, mediaService)
	followService := service.NewFollowService(followRepository, userRepository)
	postService := service.NewPostService(postRepository, userRepository, followRepository, mediaService)
	storyService := service.NewStoryService(storyRepository, userRepository, followRepository, mediaService)
	commentService := service.NewCommentService(commentRepository, postRepository, storyRepository, userRepository, followRepository)
	likeService := service.NewLikeService(likeRepository, postRepository, storyRepository, commentRepository)

	return &App{
		Cfg:            cfg,
		DB:             database,
		Storage:        mediaStorage,
		AuthService:    authService,
		UserService:    userService,
		FollowService:  followService,
		PostService:    postService,
		StoryService:   storyService,
		CommentService: commentService,
		LikeService:    likeService,
		MediaService:   mediaService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
