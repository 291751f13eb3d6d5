package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/circle/internal/domain"
	"github.com/vedran77/circle/internal/repository"
)

type PostService struct {
	store    repository.Store
	gate     *AccessGate
	notifier Notifier
	now      func() time.Time
}

func NewPostService(store repository.Store, gate *AccessGate) *PostService {
	return &PostService{store: store, gate: gate, now: time.Now}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *PostService) SetNotifier(n Notifier) {
	s.notifier = n
}

type CreatePostInput struct {
	Content string   `json:"content" validate:"required,max=1000"`
	Tags    []string `json:"tags" validate:"dive,required,max=20"`
}

func (s *PostService) Create(ctx context.Context, author *domain.User, input CreatePostInput) (*domain.Post, error) {
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	post := &domain.Post{
		ID:        uuid.NewString(),
		Content:   input.Content,
		AuthorID:  author.ID,
		Author:    author.Login,
		Tags:      tags,
		CreatedAt: s.now().UTC(),
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		return uow.Posts().Create(ctx, post)
	})
	if err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyPostCreated(post)
	}
	return post, nil
}

func (s *PostService) Get(ctx context.Context, requester *domain.User, postID string) (*domain.Post, error) {
	post, err := s.store.Posts().GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("loading post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	author, err := s.store.Users().GetByID(ctx, post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("loading author: %w", err)
	}
	if author == nil {
		return nil, ErrPostNotFound
	}
	if err := s.gate.Authorize(ctx, requester, author, ErrPostNotFound); err != nil {
		return nil, err
	}
	return post, nil
}

// CanView reports whether requester may see the post. Missing posts are
// simply not visible.
func (s *PostService) CanView(ctx context.Context, requester *domain.User, postID string) (bool, error) {
	_, err := s.Get(ctx, requester, postID)
	if errors.Is(err, ErrPostNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *PostService) Feed(ctx context.Context, author *domain.User, page Page) ([]domain.Post, error) {
	page = page.normalize()
	posts, err := s.store.Posts().ListByAuthor(ctx, author.ID, page.Offset, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, nil
}

// FeedByLogin lists another user's posts if the requester may see them.
func (s *PostService) FeedByLogin(ctx context.Context, requester *domain.User, login string, page Page) ([]domain.Post, error) {
	author, err := s.store.Users().GetByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if author == nil {
		return nil, ErrProfileNotFound
	}
	if err := s.gate.Authorize(ctx, requester, author, ErrProfileNotFound); err != nil {
		return nil, err
	}
	return s.Feed(ctx, author, page)
}
