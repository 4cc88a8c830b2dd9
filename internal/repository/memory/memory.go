// Package memory provides map-backed repositories with the same error
// contract as the Postgres ones: sql.ErrNoRows for missing rows and
// pgconn errors for constraint violations.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/repository/ports"
)

// Store holds every table so cross-table rules (cascades, foreign keys,
// the reset transaction) hold under one lock.
type Store struct {
	mu     sync.Mutex
	now    func() time.Time
	users  map[uuid.UUID]domain.User
	resets map[int64]domain.PasswordReset
	blogs  map[int64]domain.Blog
	recs   map[int64]domain.Recommendation
	msgs   map[int64]domain.ContactSubmission
	nextID int64
}

func NewStore() *Store {
	return &Store{
		now:    time.Now,
		users:  make(map[uuid.UUID]domain.User),
		resets: make(map[int64]domain.PasswordReset),
		blogs:  make(map[int64]domain.Blog),
		recs:   make(map[int64]domain.Recommendation),
		msgs:   make(map[int64]domain.ContactSubmission),
	}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

func (s *Store) PasswordResets() *PasswordResetRepository {
	return &PasswordResetRepository{s: s}
}

func (s *Store) Blogs() *BlogRepository {
	return &BlogRepository{s: s}
}

func (s *Store) Recommendations() *RecommendationRepository {
	return &RecommendationRepository{s: s}
}

func (s *Store) Contacts() *ContactRepository {
	return &ContactRepository{s: s}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func constraintError(code, name string) error {
	return &pgconn.PgError{Code: code, ConstraintName: name}
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, name, email, passwordHash string, role domain.Role) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return nil, constraintError("23505", "users_email_key")
		}
	}
	now := r.s.now()
	user := domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.s.users[user.ID] = user
	return &user, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			user := u
			return &user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.setPassword(id, passwordHash)
}

func (s *Store) setPassword(id uuid.UUID, passwordHash string) error {
	u, ok := s.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = s.now()
	s.users[id] = u
	return nil
}

func (r *UserRepository) UpdateRole(_ context.Context, id uuid.UUID, role domain.Role) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	u.Role = role
	u.UpdatedAt = r.s.now()
	r.s.users[id] = u
	return &u, nil
}

func (r *UserRepository) List(_ context.Context, roles []domain.Role, limit, offset int) ([]domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.s.filterUsers(roles), limit, offset), nil
}

func (r *UserRepository) Count(_ context.Context, roles []domain.Role) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.filterUsers(roles)), nil
}

func (s *Store) filterUsers(roles []domain.Role) []domain.User {
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		if len(roles) == 0 || u.HasRole(roles...) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return sql.ErrNoRows
	}
	for _, b := range r.s.blogs {
		if b.AuthorID == id {
			return constraintError("23503", "blogs_author_id_fkey")
		}
	}
	delete(r.s.users, id)
	for rid, reset := range r.s.resets {
		if reset.UserID == id {
			delete(r.s.resets, rid)
		}
	}
	return nil
}

type PasswordResetRepository struct{ s *Store }

func (r *PasswordResetRepository) Create(_ context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.PasswordReset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[userID]; !ok {
		return nil, constraintError("23503", "password_reset_tokens_user_id_fkey")
	}
	for _, existing := range r.s.resets {
		if existing.TokenHash == tokenHash {
			return nil, constraintError("23505", "password_reset_tokens_token_hash_key")
		}
	}
	reset := domain.PasswordReset{
		ID:        r.s.id(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: r.s.now(),
	}
	r.s.resets[reset.ID] = reset
	return &reset, nil
}

func (r *PasswordResetRepository) FindActiveByHash(_ context.Context, tokenHash string, now time.Time) (*domain.PasswordReset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, reset := range r.s.resets {
		if reset.TokenHash == tokenHash && reset.Actionable(now) {
			found := reset
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *PasswordResetRepository) ConsumeByUser(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.retire(userID)
	return nil
}

func (s *Store) retire(userID uuid.UUID) {
	for id, reset := range s.resets {
		if reset.UserID == userID && !reset.Used {
			reset.Used = true
			s.resets[id] = reset
		}
	}
}

func (r *PasswordResetRepository) Redeem(_ context.Context, resetID int64, userID uuid.UUID, passwordHash string, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reset, ok := r.s.resets[resetID]
	if !ok || reset.UserID != userID || !reset.Actionable(now) {
		return sql.ErrNoRows
	}
	if err := r.s.setPassword(userID, passwordHash); err != nil {
		return err
	}
	r.s.retire(userID)
	return nil
}

func (r *PasswordResetRepository) PurgeStale(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var purged int64
	for id, reset := range r.s.resets {
		if reset.Used || !now.Before(reset.ExpiresAt) {
			delete(r.s.resets, id)
			purged++
		}
	}
	return purged, nil
}

// Reset returns a copy of the stored reset with id, for assertions.
func (r *PasswordResetRepository) Reset(id int64) (domain.PasswordReset, bool) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reset, ok := r.s.resets[id]
	return reset, ok
}

// All returns every stored reset ordered by id.
func (r *PasswordResetRepository) All() []domain.PasswordReset {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.PasswordReset, 0, len(r.s.resets))
	for _, reset := range r.s.resets {
		out = append(out, reset)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type BlogRepository struct{ s *Store }

func (r *BlogRepository) Create(_ context.Context, authorID uuid.UUID, title, content string, contentType domain.BlogContentType) (*domain.Blog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	author, ok := r.s.users[authorID]
	if !ok {
		return nil, constraintError("23503", "blogs_author_id_fkey")
	}
	now := r.s.now()
	name := author.Name
	blog := domain.Blog{
		ID:          r.s.id(),
		Title:       title,
		Content:     content,
		AuthorID:    authorID,
		AuthorName:  &name,
		ContentType: contentType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.s.blogs[blog.ID] = blog
	return &blog, nil
}

func (r *BlogRepository) FindByID(_ context.Context, id int64) (*domain.Blog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	blog, ok := r.s.blogs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &blog, nil
}

func (r *BlogRepository) Update(_ context.Context, id int64, title, content string, contentType domain.BlogContentType) (*domain.Blog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	blog, ok := r.s.blogs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	blog.Title = title
	blog.Content = content
	blog.ContentType = contentType
	blog.UpdatedAt = r.s.now()
	r.s.blogs[id] = blog
	return &blog, nil
}

func (r *BlogRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.blogs[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.s.blogs, id)
	return nil
}

type RecommendationRepository struct{ s *Store }

// Add stores a recommendation the way the public form would.
func (r *RecommendationRepository) Add(name, position, company, text string, approved bool) domain.Recommendation {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	item := domain.Recommendation{
		ID:             r.s.id(),
		Name:           name,
		Position:       position,
		Company:        company,
		Recommendation: text,
		Approved:       approved,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.s.recs[item.ID] = item
	return item
}

func (r *RecommendationRepository) List(_ context.Context, approved *bool, limit, offset int) ([]domain.Recommendation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.s.filterRecommendations(approved), limit, offset), nil
}

func (r *RecommendationRepository) Count(_ context.Context, approved *bool) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.filterRecommendations(approved)), nil
}

func (s *Store) filterRecommendations(approved *bool) []domain.Recommendation {
	out := make([]domain.Recommendation, 0, len(s.recs))
	for _, item := range s.recs {
		if approved == nil || item.Approved == *approved {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *RecommendationRepository) Update(_ context.Context, id int64, edit domain.RecommendationEdit) (*domain.Recommendation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.recs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	item.Name = edit.Name
	item.Position = edit.Position
	item.Company = edit.Company
	item.Recommendation = edit.Recommendation
	if edit.Approved != nil {
		item.Approved = *edit.Approved
	}
	item.UpdatedAt = r.s.now()
	r.s.recs[id] = item
	return &item, nil
}

func (r *RecommendationRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.recs[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.s.recs, id)
	return nil
}

type ContactRepository struct{ s *Store }

// Add stores a contact submission the way the public form would.
func (r *ContactRepository) Add(name, email, subject, message string, role domain.Role) domain.ContactSubmission {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	item := domain.ContactSubmission{
		ID:        r.s.id(),
		Name:      name,
		Email:     email,
		Subject:   subject,
		Message:   message,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.msgs[item.ID] = item
	return item
}

func (r *ContactRepository) List(_ context.Context, limit, offset int) ([]domain.ContactSubmission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.ContactSubmission, 0, len(r.s.msgs))
	for _, item := range r.s.msgs {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, limit, offset), nil
}

func (r *ContactRepository) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.msgs), nil
}

func (r *ContactRepository) UpdateRole(_ context.Context, id int64, role domain.Role) (*domain.ContactSubmission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.msgs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	item.Role = role
	item.UpdatedAt = r.s.now()
	r.s.msgs[id] = item
	return &item, nil
}

func (r *ContactRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.msgs[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.s.msgs, id)
	return nil
}

// page applies LIMIT/OFFSET to an ordered slice.
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return append([]T{}, items[offset:end]...)
}

var (
	_ ports.UserRepository           = (*UserRepository)(nil)
	_ ports.PasswordResetRepository  = (*PasswordResetRepository)(nil)
	_ ports.BlogRepository           = (*BlogRepository)(nil)
	_ ports.RecommendationRepository = (*RecommendationRepository)(nil)
	_ ports.ContactRepository        = (*ContactRepository)(nil)
)
