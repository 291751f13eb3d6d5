package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/vedran77/circle/internal/domain"
)

type FriendRepo struct {
	db DBTX
}

func NewFriendRepo(db DBTX) *FriendRepo {
	return &FriendRepo{db: db}
}

func (r *FriendRepo) AddEdge(ctx context.Context, ownerID, targetID int64) (*domain.FriendEdge, error) {
	query := `
		WITH ins AS (
			INSERT INTO friendships (owner_id, target_id, added_at)
			VALUES ($1, $2, now())
			ON CONFLICT (owner_id, target_id) DO NOTHING
			RETURNING owner_id, target_id, added_at
		)
		SELECT ins.owner_id, ins.target_id, u.login, ins.added_at
		FROM ins
		JOIN users u ON u.id = ins.target_id`

	var e domain.FriendEdge
	err := r.db.QueryRow(ctx, query, ownerID, targetID).Scan(&e.OwnerID, &e.TargetID, &e.TargetLogin, &e.AddedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *FriendRepo) RemoveEdge(ctx context.Context, ownerID, targetID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM friendships WHERE owner_id = $1 AND target_id = $2`, ownerID, targetID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *FriendRepo) HasEdge(ctx context.Context, ownerID, targetID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM friendships WHERE owner_id = $1 AND target_id = $2)`,
		ownerID, targetID,
	).Scan(&exists)
	return exists, err
}

// ListEdges joins the target login in the same statement so each login is
// paired with its own added_at.
func (r *FriendRepo) ListEdges(ctx context.Context, ownerID int64, offset, limit int) ([]domain.FriendEdge, error) {
	query := `
		SELECT f.owner_id, f.target_id, u.login, f.added_at
		FROM friendships f
		JOIN users u ON u.id = f.target_id
		WHERE f.owner_id = $1
		ORDER BY f.added_at ASC, f.id ASC
		OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, ownerID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []domain.FriendEdge
	for rows.Next() {
		var e domain.FriendEdge
		if err := rows.Scan(&e.OwnerID, &e.TargetID, &e.TargetLogin, &e.AddedAt); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}
