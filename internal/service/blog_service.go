package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/media"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/repository/ports"
)

var (
	ErrBlogValidation   = errors.New("title and content are required")
	ErrBlogContentType  = errors.New("content_type must be plain, markdown or html")
	ErrBlogNotFound     = errors.New("blog not found")
	ErrBlogForbidden    = errors.New("not allowed to manage this blog")
	ErrMediaInvalid     = errors.New("invalid media upload")
	ErrMediaUnavailable = errors.New("media storage is not configured")
)

const maxBlogTitleLength = 255

type BlogInput struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

type BlogService struct {
	blogs     ports.BlogRepository
	storage   ports.ObjectStorage
	inspector *media.Inspector
	bucket    string
	now       func() time.Time
}

func NewBlogService(blogs ports.BlogRepository, storage ports.ObjectStorage, inspector *media.Inspector, bucket string) *BlogService {
	if inspector == nil {
		inspector = media.NewInspector(0, 0)
	}
	return &BlogService{
		blogs:     blogs,
		storage:   storage,
		inspector: inspector,
		bucket:    strings.TrimSpace(bucket),
		now:       time.Now,
	}
}

func (s *BlogService) Create(ctx context.Context, author domain.Principal, input BlogInput) (*domain.Blog, error) {
	title, content, contentType, err := validateBlogInput(input)
	if err != nil {
		return nil, err
	}
	return s.blogs.Create(ctx, author.UserID, title, content, contentType)
}

func (s *BlogService) Update(ctx context.Context, actor domain.Principal, id int64, input BlogInput) (*domain.Blog, error) {
	title, content, contentType, err := validateBlogInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, id); err != nil {
		return nil, err
	}
	blog, err := s.blogs.Update(ctx, id, title, content, contentType)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) Delete(ctx context.Context, actor domain.Principal, id int64) error {
	if err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	if err := s.blogs.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrBlogNotFound
		}
		return err
	}
	return nil
}

// UploadMedia validates an image and stores it for use inside a post.
func (s *BlogService) UploadMedia(ctx context.Context, actor domain.Principal, upload media.Upload) (*domain.BlogMedia, error) {
	if s.storage == nil || s.bucket == "" {
		return nil, ErrMediaUnavailable
	}
	img, err := s.inspector.Inspect(upload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediaInvalid, err)
	}
	objectName := path.Join("blogs", actor.UserID.String(), s.now().UTC().Format("2006/01"), uuid.NewString()+img.Extension)
	size := int64(len(img.Bytes))
	url, err := s.storage.Upload(ctx, s.bucket, objectName, img.ContentType, bytes.NewReader(img.Bytes), size)
	if err != nil {
		return nil, err
	}
	return &domain.BlogMedia{
		URL:         url,
		ObjectName:  objectName,
		ContentType: img.ContentType,
		Size:        size,
		Width:       img.Width,
		Height:      img.Height,
	}, nil
}

// authorize lets admins manage any post and editors only their own.
func (s *BlogService) authorize(ctx context.Context, actor domain.Principal, id int64) error {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrBlogNotFound
		}
		return err
	}
	if actor.HasRole(domain.RoleAdmin) {
		return nil
	}
	if !actor.HasRole(domain.RoleEditor) || blog.AuthorID != actor.UserID {
		return ErrBlogForbidden
	}
	return nil
}

func validateBlogInput(input BlogInput) (string, string, domain.BlogContentType, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" || content == "" || len(title) > maxBlogTitleLength {
		return "", "", "", ErrBlogValidation
	}
	contentType, ok := domain.ParseBlogContentType(strings.ToLower(strings.TrimSpace(input.ContentType)))
	if !ok {
		return "", "", "", ErrBlogContentType
	}
	return title, content, contentType, nil
}
