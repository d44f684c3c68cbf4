package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/gramline/gramline/internal/model"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRow struct {
	model.Comment
	OwnerUsername  string `db:"owner_username"`
	OwnerAvatarKey string `db:"owner_avatar_key"`
}

type CommentRepository interface {
	Create(comment *model.Comment) error
	ByID(id string) (*model.Comment, error)
	ForPost(postID string) ([]*CommentRow, error)
	ForStory(storyID string) ([]*CommentRow, error)
	Delete(id string) error
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	query := `INSERT INTO comments (id, user_id, post_id, story_id, text, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		comment.ID,
		comment.UserID,
		comment.PostID,
		comment.StoryID,
		comment.Text,
		comment.CreatedAt,
	)

	return err
}

func (r *commentRepository) ByID(id string) (*model.Comment, error) {
	comment := &model.Comment{}
	query := `SELECT * FROM comments WHERE id = $1`

	err := r.db.Get(comment, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrCommentNotFound
	}

	return comment, err
}

func (r *commentRepository) ForPost(postID string) ([]*CommentRow, error) {
	var comments []*CommentRow
	query := `SELECT c.*, u.username AS owner_username, u.avatar_key AS owner_avatar_key
	          FROM comments c
	          JOIN users u ON u.id = c.user_id
	          WHERE c.post_id = $1
	          ORDER BY c.created_at DESC`

	err := r.db.Select(&comments, query, postID)
	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepository) ForStory(storyID string) ([]*CommentRow, error) {
	var comments []*CommentRow
	query := `SELECT c.*, u.username AS owner_username, u.avatar_key AS owner_avatar_key
	          FROM comments c
	          JOIN users u ON u.id = c.user_id
	          WHERE c.story_id = $1
	          ORDER BY c.created_at DESC`

	err := r.db.Select(&comments, query, storyID)
	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepository) Delete(id string) error {
	query := `DELETE FROM comments WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCommentNotFound
	}

	return nil
}
