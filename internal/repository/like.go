package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/gramline/gramline/internal/model"
)

var (
	ErrLikeNotFound  = errors.New("like not found")
	ErrDuplicateLike = errors.New("you already liked this")
)

type LikeRepository interface {
	Create(like *model.Like) error
	ByID(id string) (*model.Like, error)
	Delete(id string) error
}

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts the like. The per-target-type unique constraints decide
// duplicates, including under concurrent inserts: the losing insert gets
// ErrDuplicateLike, never a generic failure.
func (r *likeRepository) Create(like *model.Like) error {
	query := `INSERT INTO likes (id, user_id, post_id, story_id, comment_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		like.ID,
		like.UserID,
		like.PostID,
		like.StoryID,
		like.CommentID,
		like.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateLike
	}

	return err
}

func (r *likeRepository) ByID(id string) (*model.Like, error) {
	like := &model.Like{}
	query := `SELECT * FROM likes WHERE id = $1`

	err := r.db.Get(like, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrLikeNotFound
	}

	return like, err
}

func (r *likeRepository) Delete(id string) error {
	query := `DELETE FROM likes WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrLikeNotFound
	}

	return nil
}
