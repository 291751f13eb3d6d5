package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/vedran77/circle/internal/domain"
	"github.com/vedran77/circle/internal/repository"
)

type userRepo struct{ *access }

func (r userRepo) Create(ctx context.Context, user *domain.User) error {
	st, release, err := r.enter(ctx)
	if err != nil {
		return err
	}
	defer release()

	if conflict := findConflicting(st, user.Login, user.Email, user.Phone); len(conflict) > 0 {
		return fmt.Errorf("%w: users", repository.ErrDuplicate)
	}
	st.rememberNextUserID()
	user.ID = st.nextUserID
	st.nextUserID++
	remember(st, st.users, user.ID)
	st.users[user.ID] = cloneUser(*user)
	return nil
}

func (r userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	st, release, err := r.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	u, ok := st.users[id]
	if !ok {
		return nil, nil
	}
	u = cloneUser(u)
	return &u, nil
}

// GetForUpdate needs no extra locking: a unit of work owns the whole store.
func (r userRepo) GetForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	return r.GetByID(ctx, id)
}

func (r userRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	return r.findOne(ctx, func(u domain.User) bool { return u.Login == login })
}

func (r userRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, func(u domain.User) bool { return u.Phone != nil && *u.Phone == phone })
}

func (r userRepo) FindConflicting(ctx context.Context, login, email string, phone *string) ([]domain.User, error) {
	st, release, err := r.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return findConflicting(st, login, email, phone), nil
}

func (r userRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	st, release, err := r.enter(ctx)
	if err != nil {
		return err
	}
	defer release()

	cur, ok := st.users[user.ID]
	if !ok {
		return nil
	}
	if user.Phone != nil {
		for id, other := range st.users {
			if id != user.ID && other.Phone != nil && *other.Phone == *user.Phone {
				return fmt.Errorf("%w: users.phone", repository.ErrDuplicate)
			}
		}
	}
	cur.CountryCode = user.CountryCode
	cur.IsPublic = user.IsPublic
	cur.Phone = clonePtr(user.Phone)
	cur.Image = clonePtr(user.Image)
	remember(st, st.users, user.ID)
	st.users[user.ID] = cur
	return nil
}

func (r userRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	st, release, err := r.enter(ctx)
	if err != nil {
		return err
	}
	defer release()

	if u, ok := st.users[userID]; ok {
		u.PasswordHash = passwordHash
		remember(st, st.users, userID)
		st.users[userID] = u
	}
	return nil
}

func (r userRepo) findOne(ctx context.Context, match func(domain.User) bool) (*domain.User, error) {
	st, release, err := r.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	for _, u := range st.users {
		if match(u) {
			u = cloneUser(u)
			return &u, nil
		}
	}
	return nil, nil
}

func findConflicting(st *state, login, email string, phone *string) []domain.User {
	var out []domain.User
	for _, u := range st.users {
		samePhone := phone != nil && u.Phone != nil && *u.Phone == *phone
		if u.Login == login || u.Email == email || samePhone {
			out = append(out, cloneUser(u))
		}
	}
	return out
}

type countryRepo struct{ *access }

func (r countryRepo) List(ctx context.Context) ([]domain.Country, error) {
	return r.list(ctx, func(domain.Country) bool { return true })
}

func (r countryRepo) ListByRegion(ctx context.Context, region string) ([]domain.Country, error) {
	return r.list(ctx, func(c domain.Country) bool { return c.Region == region })
}

func (r countryRepo) GetByAlpha2(ctx context.Context, alpha2 string) (*domain.Country, error) {
	st, release, err := r.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	c, ok := st.countries[alpha2]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r countryRepo) list(ctx context.Context, keep func(domain.Country) bool) ([]domain.Country, error) {
	st, release, err := r.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var out []domain.Country
	for _, c := range st.countries {
		if keep(c) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b domain.Country) int { return cmp.Compare(a.Alpha2, b.Alpha2) })
	return out, nil
}

type friendRepo struct{ *access }

func (r friendRepo) AddEdge(ctx context.Context, ownerID, targetID int64) (*domain.FriendEdge, error) {
	st, release, err := r.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	if ownerID == targetID {
		return nil, errors.New("self edge")
	}
	if indexOfEdge(st.friends[ownerID], targetID) >= 0 {
		return nil, nil
	}
	target, ok := st.users[targetID]
	if !ok {
		return nil, fmt.Errorf("unknown user %d", targetID)
	}
	edge := domain.FriendEdge{
		OwnerID:     ownerID,
		TargetID:    targetID,
		TargetLogin: target.Login,
		AddedAt:     r.now(),
	}
	remember(st, st.friends, ownerID)
	st.friends[ownerID] = append(st.friends[ownerID], edge)
	return &edge, nil
}

func (r friendRepo) RemoveEdge(ctx context.Context, ownerID, targetID int64) (bool, error) {
	st, release, err := r.enter(ctx)
	if err != nil {
		return false, err
	}
	defer release()

	edges := st.friends[ownerID]
	i := indexOfEdge(edges, targetID)
	if i < 0 {
		return false, nil
	}
	remember(st, st.friends, ownerID)
	st.friends[ownerID] = slices.Concat(edges[:i], edges[i+1:])
	return true, nil
}

func (r friendRepo) HasEdge(ctx context.Context, ownerID, targetID int64) (bool, error) {
	st, release, err := r.enter(ctx)
	if err != nil {
		return false, err
	}
	defer release()

	return indexOfEdge(st.friends[ownerID], targetID) >= 0, nil
}

func (r friendRepo) ListEdges(ctx context.Context, ownerID int64, offset, limit int) ([]domain.FriendEdge, error) {
	st, release, err := r.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	return page(st.friends[ownerID], offset, limit), nil
}

func indexOfEdge(edges []domain.FriendEdge, targetID int64) int {
	return slices.IndexFunc(edges, func(e domain.FriendEdge) bool { return e.TargetID == targetID })
}

type postRepo struct{ *access }

func (r postRepo) Create(ctx context.Context, post *domain.Post) error {
	st, release, err := r.enter(ctx)
	if err != nil {
		return err
	}
	defer release()

	if _, exists := st.posts[post.ID]; exists {
		return fmt.Errorf("%w: posts", repository.ErrDuplicate)
	}
	author, ok := st.users[post.AuthorID]
	if !ok {
		return fmt.Errorf("unknown author %d", post.AuthorID)
	}
	p := *post
	p.Author = author.Login
	p.Tags = slices.Clone(post.Tags)
	p.LikesCount, p.DislikesCount = 0, 0
	remember(st, st.posts, p.ID)
	st.posts[p.ID] = p
	return nil
}

func (r postRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	st, release, err := r.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	return getPost(st, id), nil
}

// GetForUpdate needs no extra locking here: a unit of work already owns the
// whole store.
func (r postRepo) GetForUpdate(ctx context.Context, id string) (*domain.Post, error) {
	return r.GetByID(ctx, id)
}

func (r postRepo) ListByAuthor(ctx context.Context, authorID int64, offset, limit int) ([]domain.Post, error) {
	st, release, err := r.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var posts []domain.Post
	for id, p := range st.posts {
		if p.AuthorID == authorID {
			posts = append(posts, *getPost(st, id))
		}
	}
	slices.SortFunc(posts, func(a, b domain.Post) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return page(posts, offset, limit), nil
}

func (r postRepo) AdjustCounters(ctx context.Context, id string, delta domain.CounterDelta) (*domain.Post, error) {
	st, release, err := r.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	p, ok := st.posts[id]
	if !ok {
		return nil, nil
	}
	p.LikesCount += delta.Likes
	p.DislikesCount += delta.Dislikes
	if p.LikesCount < 0 || p.DislikesCount < 0 {
		return nil, fmt.Errorf("post %s counters would become negative", id)
	}
	remember(st, st.posts, id)
	st.posts[id] = p
	return getPost(st, id), nil
}

func getPost(st *state, id string) *domain.Post {
	p, ok := st.posts[id]
	if !ok {
		return nil
	}
	p.Tags = slices.Clone(p.Tags)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if author, ok := st.users[p.AuthorID]; ok {
		p.Author = author.Login
	}
	return &p
}

type reactionRepo struct{ *access }

func (r reactionRepo) Get(ctx context.Context, userID int64, postID string) (*domain.Reaction, error) {
	st, release, err := r.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	rc, ok := st.reactions[reactionKey{userID, postID}]
	if !ok {
		return nil, nil
	}
	return &rc, nil
}

func (r reactionRepo) Upsert(ctx context.Context, rc *domain.Reaction) error {
	st, release, err := r.enter(ctx)
	if err != nil {
		return err
	}
	defer release()

	if _, ok := st.posts[rc.PostID]; !ok {
		return fmt.Errorf("unknown post %s", rc.PostID)
	}
	key := reactionKey{rc.UserID, rc.PostID}
	if cur, ok := st.reactions[key]; ok {
		cur.Type = rc.Type
		remember(st, st.reactions, key)
		st.reactions[key] = cur
		return nil
	}
	remember(st, st.reactions, key)
	st.reactions[key] = *rc
	return nil
}

// CountReactions tallies live reactions of the given type on a post.
func (s *Store) CountReactions(postID string, kind domain.ReactionType) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key, rc := range s.st.reactions {
		if key.postID == postID && rc.Type == kind {
			n++
		}
	}
	return n
}

func page[T any](items []T, offset, limit int) []T {
	offset = max(offset, 0)
	if offset >= len(items) || limit <= 0 {
		return nil
	}
	end := min(offset+limit, len(items))
	return slices.Clone(items[offset:end])
}

func cloneUser(u domain.User) domain.User {
	u.Phone = clonePtr(u.Phone)
	u.Image = clonePtr(u.Image)
	return u
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
