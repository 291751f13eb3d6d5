package domain

import "time"

type ReactionType string

const (
	ReactionNone    ReactionType = ""
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

// Requestable reports whether a user may ask for t. None is a stored state
// only.
func (t ReactionType) Requestable() bool {
	return t == ReactionLike || t == ReactionDislike
}

// Reaction is the single live reaction of a user to a post. A missing row
// is equivalent to ReactionNone.
type Reaction struct {
	UserID    int64
	PostID    string
	Type      ReactionType
	CreatedAt time.Time
}

// CounterDelta is the change a reaction transition applies to a post.
type CounterDelta struct {
	Likes    int
	Dislikes int
}

func (d CounterDelta) IsZero() bool {
	return d.Likes == 0 && d.Dislikes == 0
}

// Transition computes the next state and counter delta when a user in state
// t requests r. Requesting the current state is a no-op.
func (t ReactionType) Transition(r ReactionType) (ReactionType, CounterDelta) {
	if r == t || r == ReactionNone {
		return t, CounterDelta{}
	}

	var d CounterDelta
	switch t {
	case ReactionLike:
		d.Likes--
	case ReactionDislike:
		d.Dislikes--
	}
	switch r {
	case ReactionLike:
		d.Likes++
	case ReactionDislike:
		d.Dislikes++
	}
	return r, d
}
