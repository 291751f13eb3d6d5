package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/vedran77/circle/internal/domain"
)

const postSelect = `
	SELECT p.id, p.content, p.author_id, u.login, p.tags, p.created_at,
		p.likes_count, p.dislikes_count
	FROM posts p
	JOIN users u ON u.id = p.author_id`

type PostRepo struct {
	db DBTX
}

func NewPostRepo(db DBTX) *PostRepo {
	return &PostRepo{db: db}
}

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (id, content, author_id, tags, created_at, likes_count, dislikes_count)
		VALUES ($1, $2, $3, $4, $5, 0, 0)`
	_, err := r.db.Exec(ctx, query, post.ID, post.Content, post.AuthorID, post.Tags, post.CreatedAt)
	return err
}

func (r *PostRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return r.scanPost(ctx, postSelect+` WHERE p.id = $1`, id)
}

func (r *PostRepo) GetForUpdate(ctx context.Context, id string) (*domain.Post, error) {
	return r.scanPost(ctx, postSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id)
}

func (r *PostRepo) ListByAuthor(ctx context.Context, authorID int64, offset, limit int) ([]domain.Post, error) {
	query := postSelect + `
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC, p.id DESC
		OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, authorID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		p, err := scanPostRow(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepo) AdjustCounters(ctx context.Context, id string, delta domain.CounterDelta) (*domain.Post, error) {
	query := `
		UPDATE posts
		SET likes_count = likes_count + $2, dislikes_count = dislikes_count + $3
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, delta.Likes, delta.Dislikes)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *PostRepo) scanPost(ctx context.Context, query string, arg any) (*domain.Post, error) {
	p, err := scanPostRow(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPostRow(row pgx.Row) (domain.Post, error) {
	var p domain.Post
	err := row.Scan(
		&p.ID, &p.Content, &p.AuthorID, &p.Author, &p.Tags, &p.CreatedAt,
		&p.LikesCount, &p.DislikesCount,
	)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, err
}
