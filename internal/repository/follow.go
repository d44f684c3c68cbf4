package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/gramline/gramline/internal/model"
)

var (
	ErrFollowNotFound  = errors.New("follow not found")
	ErrDuplicateFollow = errors.New("you already follow this user")
)

type FollowRepository interface {
	Create(follow *model.Follow) error
	Delete(followerID, followingID string) error
	Exists(followerID, followingID string) (bool, error)
	Followers(userID string) ([]*model.User, error)
	Following(userID string) ([]*model.User, error)
	CountFollowers(userID string) (int, error)
	CountFollowing(userID string) (int, error)
}

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the edge. The unique constraint on (follower, following)
// is the arbiter under concurrency: whichever insert loses the race gets
// ErrDuplicateFollow.
func (r *followRepository) Create(follow *model.Follow) error {
	query := `INSERT INTO follows (id, follower_id, following_id, created_at)
	          VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query,
		follow.ID,
		follow.FollowerID,
		follow.FollowingID,
		follow.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateFollow
	}

	return err
}

func (r *followRepository) Delete(followerID, followingID string) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`
	result, err := r.db.Exec(query, followerID, followingID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrFollowNotFound
	}

	return nil
}

func (r *followRepository) Exists(followerID, followingID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM follows WHERE follower_id = $1 AND following_id = $2`
	err := r.db.QueryRow(query, followerID, followingID).Scan(&count)
	return count > 0, err
}

func (r *followRepository) Followers(userID string) ([]*model.User, error) {
	var users []*model.User
	query := `SELECT u.* FROM users u
	          JOIN follows f ON f.follower_id = u.id
	          WHERE f.following_id = $1
	          ORDER BY f.created_at DESC`

	err := r.db.Select(&users, query, userID)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *followRepository) Following(userID string) ([]*model.User, error) {
	var users []*model.User
	query := `SELECT u.* FROM users u
	          JOIN follows f ON f.following_id = u.id
	          WHERE f.follower_id = $1
	          ORDER BY f.created_at DESC`

	err := r.db.Select(&users, query, userID)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *followRepository) CountFollowers(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM follows WHERE following_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

func (r *followRepository) CountFollowing(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM follows WHERE follower_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}
