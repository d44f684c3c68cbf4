package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gramline/gramline/internal/model"
)

var ErrStoryNotFound = errors.New("story not found")

type StoryRow struct {
	model.Story
	OwnerUsername  string `db:"owner_username"`
	OwnerStatus    string `db:"owner_status"`
	OwnerAvatarKey string `db:"owner_avatar_key"`
}

// StoryRepository mirrors PostRepository with one twist: read queries take
// a cutoff and only consider stories created at or after it. The cutoff is
// applied before any privacy filtering, so expiry behaves identically for
// open and private profiles. ByID skips the cutoff; owner mutations
// (update/delete) still work on expired stories.
type StoryRepository interface {
	Create(story *model.Story) error
	ByID(id string) (*model.Story, error)
	VisibleByID(id string, cutoff time.Time) (*model.Story, error)
	OpenFeed(cutoff time.Time, limit, offset int) ([]*StoryRow, int, error)
	PrivateFeed(viewerID string, cutoff time.Time, limit, offset int) ([]*StoryRow, int, error)
	Update(story *model.Story) error
	Delete(id string) error
	IncrementViews(id string) error
}

type storyRepository struct {
	db *sqlx.DB
}

func NewStoryRepository(db *sqlx.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(story *model.Story) error {
	query := `INSERT INTO stories (id, user_id, caption, image_key, video_key, views, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		story.ID,
		story.UserID,
		story.Caption,
		story.ImageKey,
		story.VideoKey,
		story.Views,
		story.CreatedAt,
	)

	return err
}

func (r *storyRepository) ByID(id string) (*model.Story, error) {
	story := &model.Story{}
	query := `SELECT * FROM stories WHERE id = $1`

	err := r.db.Get(story, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrStoryNotFound
	}

	return story, err
}

// VisibleByID treats expired stories as absent, not forbidden.
func (r *storyRepository) VisibleByID(id string, cutoff time.Time) (*model.Story, error) {
	story := &model.Story{}
	query := `SELECT * FROM stories WHERE id = $1 AND created_at >= $2`

	err := r.db.Get(story, query, id, cutoff)
	if err == sql.ErrNoRows {
		return nil, ErrStoryNotFound
	}

	return story, err
}

func (r *storyRepository) OpenFeed(cutoff time.Time, limit, offset int) ([]*StoryRow, int, error) {
	var stories []*StoryRow
	query := `SELECT s.*, u.username AS owner_username, u.profile_status AS owner_status, u.avatar_key AS owner_avatar_key
	          FROM stories s
	          JOIN users u ON u.id = s.user_id
	          WHERE s.created_at >= $1
	            AND u.profile_status = $2
	          ORDER BY s.created_at DESC
	          LIMIT $3 OFFSET $4`

	err := r.db.Select(&stories, query, cutoff, model.ProfileStatusOpen, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var count int
	countQuery := `SELECT COUNT(*) FROM stories s
	               JOIN users u ON u.id = s.user_id
	               WHERE s.created_at >= $1
	                 AND u.profile_status = $2`
	err = r.db.QueryRow(countQuery, cutoff, model.ProfileStatusOpen).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	return stories, count, nil
}

func (r *storyRepository) PrivateFeed(viewerID string, cutoff time.Time, limit, offset int) ([]*StoryRow, int, error) {
	var stories []*StoryRow
	query := `SELECT s.*, u.username AS owner_username, u.profile_status AS owner_status, u.avatar_key AS owner_avatar_key
	          FROM stories s
	          JOIN users u ON u.id = s.user_id
	          WHERE s.created_at >= $1
	            AND u.profile_status = $2
	            AND (s.user_id = $3 OR s.user_id IN (
	                SELECT following_id FROM follows WHERE follower_id = $3))
	          ORDER BY s.created_at DESC
	          LIMIT $4 OFFSET $5`

	err := r.db.Select(&stories, query, cutoff, model.ProfileStatusPrivate, viewerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var count int
	countQuery := `SELECT COUNT(*) FROM stories s
	               JOIN users u ON u.id = s.user_id
	               WHERE s.created_at >= $1
	                 AND u.profile_status = $2
	                 AND (s.user_id = $3 OR s.user_id IN (
	                     SELECT following_id FROM follows WHERE follower_id = $3))`
	err = r.db.QueryRow(countQuery, cutoff, model.ProfileStatusPrivate, viewerID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	return stories, count, nil
}

func (r *storyRepository) Update(story *model.Story) error {
	query := `UPDATE stories
	          SET caption = $1, image_key = $2, video_key = $3
	          WHERE id = $4`

	result, err := r.db.Exec(query,
		story.Caption,
		story.ImageKey,
		story.VideoKey,
		story.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrStoryNotFound
	}

	return nil
}

func (r *storyRepository) Delete(id string) error {
	query := `DELETE FROM stories WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrStoryNotFound
	}

	return nil
}

func (r *storyRepository) IncrementViews(id string) error {
	query := `UPDATE stories SET views = views + 1 WHERE id = $1`
	_, err := r.db.Exec(query, id)
	return err
}
