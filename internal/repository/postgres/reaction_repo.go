package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/vedran77/circle/internal/domain"
)

type ReactionRepo struct {
	db DBTX
}

func NewReactionRepo(db DBTX) *ReactionRepo {
	return &ReactionRepo{db: db}
}

func (r *ReactionRepo) Get(ctx context.Context, userID int64, postID string) (*domain.Reaction, error) {
	query := `
		SELECT user_id, post_id, COALESCE(reaction_type, ''), created_at
		FROM reactions
		WHERE user_id = $1 AND post_id = $2`

	var rc domain.Reaction
	var kind string
	err := r.db.QueryRow(ctx, query, userID, postID).Scan(&rc.UserID, &rc.PostID, &kind, &rc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rc.Type = domain.ReactionType(kind)
	return &rc, nil
}

func (r *ReactionRepo) Upsert(ctx context.Context, rc *domain.Reaction) error {
	query := `
		INSERT INTO reactions (user_id, post_id, reaction_type, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		ON CONFLICT (user_id, post_id) DO UPDATE SET reaction_type = EXCLUDED.reaction_type`
	_, err := r.db.Exec(ctx, query, rc.UserID, rc.PostID, string(rc.Type), rc.CreatedAt)
	return err
}
