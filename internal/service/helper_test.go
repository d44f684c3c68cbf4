package service

import (
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gramline/gramline/internal/db"
	"github.com/gramline/gramline/internal/model"
	"github.com/gramline/gramline/internal/repository"
)

// memStorage keeps blobs in a map so media flows can run without disk or S3.
type memStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{blobs: map[string][]byte{}}
}

func (m *memStorage) Save(key string, file io.Reader) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = data
	return nil
}

func (m *memStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

func (m *memStorage) URL(key string) string {
	return "http://media.test/" + key
}

type testEnv struct {
	users    repository.UserRepository
	follows  repository.FollowRepository
	posts    repository.PostRepository
	stories  repository.StoryRepository
	comments repository.CommentRepository
	likes    repository.LikeRepository

	blobs *memStorage

	auth    *AuthService
	user    *UserService
	follow  *FollowService
	post    *PostService
	story   *StoryService
	comment *CommentService
	like    *LikeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db init: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("migrations: %v", err)
	}

	env := &testEnv{
		users:    repository.NewUserRepository(database),
		follows:  repository.NewFollowRepository(database),
		posts:    repository.NewPostRepository(database),
		stories:  repository.NewStoryRepository(database),
		comments: repository.NewCommentRepository(database),
		likes:    repository.NewLikeRepository(database),
		blobs:    newMemStorage(),
	}

	media := NewMediaService(env.blobs)
	env.auth = NewAuthService(env.users, "test-secret", time.Hour)
	env.user = NewUserService(env.users, env.follows, media)
	env.follow = NewFollowService(env.follows, env.users)
	env.post = NewPostService(env.posts, env.users, env.follows, media)
	env.story = NewStoryService(env.stories, env.users, env.follows, media)
	env.comment = NewCommentService(env.comments, env.posts, env.stories, env.users, env.follows)
	env.like = NewLikeService(env.likes, env.posts, env.stories, env.comments)

	return env
}

func (e *testEnv) register(t *testing.T, username, status string) *model.User {
	t.Helper()

	user, err := e.auth.Register(username, username+"@example.com", "s3cure-horse-battery", "", status)
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func (e *testEnv) mustFollow(t *testing.T, follower, following *model.User) {
	t.Helper()

	_, err := e.follow.Follow(follower.ID, following.ID)
	if err != nil {
		t.Fatalf("follow %s -> %s: %v", follower.Username, following.Username, err)
	}
}

func strptr(s string) *string {
	return &s
}
