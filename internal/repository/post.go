package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/gramline/gramline/internal/model"
)

var ErrPostNotFound = errors.New("post not found")

// PostRow is a post joined with the owner columns the feed projections
// need. Feed queries resolve the owner in SQL so listing stays one query.
type PostRow struct {
	model.Post
	OwnerUsername  string `db:"owner_username"`
	OwnerStatus    string `db:"owner_status"`
	OwnerAvatarKey string `db:"owner_avatar_key"`
}

type PostRepository interface {
	Create(post *model.Post) error
	ByID(id string) (*model.Post, error)
	OpenFeed(limit, offset int) ([]*PostRow, int, error)
	PrivateFeed(viewerID string, limit, offset int) ([]*PostRow, int, error)
	Update(post *model.Post) error
	Delete(id string) error
	IncrementViews(id string) error
	AddLikeCount(id string, delta int) error
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *model.Post) error {
	query := `INSERT INTO posts (id, user_id, caption, image_key, video_key, like_count, views, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		post.ID,
		post.UserID,
		post.Caption,
		post.ImageKey,
		post.VideoKey,
		post.LikeCount,
		post.Views,
		post.CreatedAt,
	)

	return err
}

func (r *postRepository) ByID(id string) (*model.Post, error) {
	post := &model.Post{}
	query := `SELECT * FROM posts WHERE id = $1`

	err := r.db.Get(post, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrPostNotFound
	}

	return post, err
}

// OpenFeed lists posts of open profiles, newest first. Ties on created_at
// fall back to storage order.
func (r *postRepository) OpenFeed(limit, offset int) ([]*PostRow, int, error) {
	var posts []*PostRow
	query := `SELECT p.*, u.username AS owner_username, u.profile_status AS owner_status, u.avatar_key AS owner_avatar_key
	          FROM posts p
	          JOIN users u ON u.id = p.user_id
	          WHERE u.profile_status = $1
	          ORDER BY p.created_at DESC
	          LIMIT $2 OFFSET $3`

	err := r.db.Select(&posts, query, model.ProfileStatusOpen, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var count int
	countQuery := `SELECT COUNT(*) FROM posts p
	               JOIN users u ON u.id = p.user_id
	               WHERE u.profile_status = $1`
	err = r.db.QueryRow(countQuery, model.ProfileStatusOpen).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	return posts, count, nil
}

// PrivateFeed lists posts of private profiles the viewer follows, plus the
// viewer's own private posts.
func (r *postRepository) PrivateFeed(viewerID string, limit, offset int) ([]*PostRow, int, error) {
	var posts []*PostRow
	query := `SELECT p.*, u.username AS owner_username, u.profile_status AS owner_status, u.avatar_key AS owner_avatar_key
	          FROM posts p
	          JOIN users u ON u.id = p.user_id
	          WHERE u.profile_status = $1
	            AND (p.user_id = $2 OR p.user_id IN (
	                SELECT following_id FROM follows WHERE follower_id = $2))
	          ORDER BY p.created_at DESC
	          LIMIT $3 OFFSET $4`

	err := r.db.Select(&posts, query, model.ProfileStatusPrivate, viewerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var count int
	countQuery := `SELECT COUNT(*) FROM posts p
	               JOIN users u ON u.id = p.user_id
	               WHERE u.profile_status = $1
	                 AND (p.user_id = $2 OR p.user_id IN (
	                     SELECT following_id FROM follows WHERE follower_id = $2))`
	err = r.db.QueryRow(countQuery, model.ProfileStatusPrivate, viewerID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	return posts, count, nil
}

func (r *postRepository) Update(post *model.Post) error {
	query := `UPDATE posts
	          SET caption = $1, image_key = $2, video_key = $3
	          WHERE id = $4`

	result, err := r.db.Exec(query,
		post.Caption,
		post.ImageKey,
		post.VideoKey,
		post.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrPostNotFound
	}

	return nil
}

func (r *postRepository) Delete(id string) error {
	query := `DELETE FROM posts WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrPostNotFound
	}

	return nil
}

func (r *postRepository) IncrementViews(id string) error {
	query := `UPDATE posts SET views = views + 1 WHERE id = $1`
	_, err := r.db.Exec(query, id)
	return err
}

func (r *postRepository) AddLikeCount(id string, delta int) error {
	query := `UPDATE posts SET like_count = like_count + $1 WHERE id = $2`
	_, err := r.db.Exec(query, delta, id)
	return err
}
