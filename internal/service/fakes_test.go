package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yourorg/vecino/internal/domain"
)

// In-memory repositories for service tests. They mirror the Postgres
// implementations' contracts: lookups return nil when absent, uniqueness
// violations surface as conflicts.

type memIdentityRepo struct {
	identities map[string]*domain.Identity
	failCreate bool
	deletes    []string
}

func newMemIdentityRepo() *memIdentityRepo {
	return &memIdentityRepo{identities: map[string]*domain.Identity{}}
}

func (r *memIdentityRepo) Create(ctx context.Context, handle string) (*domain.Identity, error) {
	if r.failCreate {
		return nil, fmt.Errorf("create failed")
	}
	for _, identity := range r.identities {
		if identity.Handle == handle {
			return nil, domain.NewConflict("El nombre de usuario ya está registrado")
		}
	}
	identity := &domain.Identity{ID: uuid.NewString(), Handle: handle, CreatedAt: time.Now()}
	r.identities[identity.ID] = identity
	return identity, nil
}

func (r *memIdentityRepo) GetByID(ctx context.Context, id string) (*domain.Identity, error) {
	return r.identities[id], nil
}

func (r *memIdentityRepo) GetByHandle(ctx context.Context, handle string) (*domain.Identity, error) {
	for _, identity := range r.identities {
		if identity.Handle == handle {
			return identity, nil
		}
	}
	return nil, nil
}

func (r *memIdentityRepo) UpdateHandle(ctx context.Context, id, handle string) (*domain.Identity, error) {
	identity, ok := r.identities[id]
	if !ok {
		return nil, domain.NewUpdateFailed("No existe el usuario")
	}
	for _, other := range r.identities {
		if other.ID != id && other.Handle == handle {
			return nil, domain.NewConflict("El nombre de usuario ya está registrado")
		}
	}
	identity.Handle = handle
	return identity, nil
}

func (r *memIdentityRepo) Delete(ctx context.Context, id string) error {
	r.deletes = append(r.deletes, id)
	delete(r.identities, id)
	return nil
}

type memUserRepo struct {
	users      map[string]*domain.User
	failCreate bool
	getCalls   int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	if r.failCreate {
		return fmt.Errorf("insert failed")
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domain.NewConflict("El email o nombre de usuario ya está registrado")
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.getCalls++
	return r.users[id], nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.getCalls++
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.NewUpdateFailed("No existe el usuario")
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch k {
		case "email":
			user.Email = fields[k].(string)
		case "name":
			user.Name = fields[k].(string)
		case "surname":
			user.Surname = fields[k].(string)
		case "age":
			user.Age = fields[k].(int)
		}
	}
	user.UpdatedAt = time.Now()
	return user, nil
}

func (r *memUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	user, ok := r.users[id]
	if !ok {
		return domain.NewUpdateFailed("Error al cambiar la contraseña")
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.NewDeleteFailed("No se pudo eliminar el usuario")
	}
	delete(r.users, id)
	return nil
}

type memBusinessRepo struct {
	businesses map[string]*domain.Business
	failCreate bool
}

func newMemBusinessRepo() *memBusinessRepo {
	return &memBusinessRepo{businesses: map[string]*domain.Business{}}
}

func (r *memBusinessRepo) Create(ctx context.Context, business *domain.Business) error {
	if r.failCreate {
		return fmt.Errorf("insert failed")
	}
	for _, existing := range r.businesses {
		if existing.Email == business.Email {
			return domain.NewConflict("El email o nombre de usuario ya está registrado")
		}
	}
	if business.ID == "" {
		business.ID = uuid.NewString()
	}
	business.CreatedAt = time.Now()
	business.UpdatedAt = business.CreatedAt
	clone := *business
	r.businesses[business.ID] = &clone
	return nil
}

func (r *memBusinessRepo) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	return r.businesses[id], nil
}

func (r *memBusinessRepo) GetByEmail(ctx context.Context, email string) (*domain.Business, error) {
	for _, business := range r.businesses {
		if business.Email == email {
			return business, nil
		}
	}
	return nil, nil
}

func (r *memBusinessRepo) Update(ctx context.Context, id string, fields map[string]any) (*domain.Business, error) {
	business, ok := r.businesses[id]
	if !ok {
		return nil, domain.NewUpdateFailed("No existe el negocio")
	}
	for k, v := range fields {
		switch k {
		case "email":
			business.Email = v.(string)
		case "name":
			business.Name = v.(string)
		case "category":
			business.Category = v.(string)
		case "description":
			business.Description = v.(string)
		case "address":
			business.Address = v.(string)
		}
	}
	business.UpdatedAt = time.Now()
	return business, nil
}

func (r *memBusinessRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	business, ok := r.businesses[id]
	if !ok {
		return domain.NewUpdateFailed("Error al cambiar la contraseña")
	}
	business.PasswordHash = passwordHash
	return nil
}

func (r *memBusinessRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.businesses[id]; !ok {
		return domain.NewDeleteFailed("No se pudo eliminar el negocio")
	}
	delete(r.businesses, id)
	return nil
}

type memPostRepo struct {
	posts map[string]*domain.FeedPost
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: map[string]*domain.FeedPost{}}
}

func (r *memPostRepo) Create(ctx context.Context, post *domain.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	post.CreatedAt = time.Now()
	r.posts[post.ID] = &domain.FeedPost{Post: *post}
	return nil
}

func (r *memPostRepo) GetByID(ctx context.Context, id string) (*domain.FeedPost, error) {
	return r.posts[id], nil
}

func (r *memPostRepo) List(ctx context.Context) ([]*domain.FeedPost, error) {
	posts := make([]*domain.FeedPost, 0, len(r.posts))
	for _, post := range r.posts {
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (r *memPostRepo) ListByBusiness(ctx context.Context, businessID string) ([]*domain.FeedPost, error) {
	posts := []*domain.FeedPost{}
	for _, post := range r.posts {
		if post.BusinessID == businessID {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (r *memPostRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.NewDeleteFailed("No se pudo eliminar el post")
	}
	delete(r.posts, id)
	return nil
}

type memCommentRepo struct {
	comments map[string]*domain.Comment
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{comments: map[string]*domain.Comment{}}
}

func (r *memCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	comment.CreatedAt = time.Now()
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *memCommentRepo) Update(ctx context.Context, id, content string) (*domain.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, domain.NewUpdateFailed("Error al actualizar comentario")
	}
	comment.Content = content
	return comment, nil
}

func (r *memCommentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return domain.NewDeleteFailed("No se pudo eliminar el comentario")
	}
	delete(r.comments, id)
	return nil
}

func (r *memCommentRepo) List(ctx context.Context) ([]*domain.Comment, error) {
	comments := []*domain.Comment{}
	for _, comment := range r.comments {
		comments = append(comments, comment)
	}
	return comments, nil
}

func (r *memCommentRepo) ListByPost(ctx context.Context, postID string) ([]*domain.Comment, error) {
	comments := []*domain.Comment{}
	for _, comment := range r.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

type likeKey struct{ userID, postID string }

type memLikeRepo struct {
	likes map[likeKey]bool
}

func newMemLikeRepo() *memLikeRepo {
	return &memLikeRepo{likes: map[likeKey]bool{}}
}

func (r *memLikeRepo) Create(ctx context.Context, userID, postID string) error {
	key := likeKey{userID, postID}
	if r.likes[key] {
		return domain.NewInvalidInput("Ya diste like a este post")
	}
	r.likes[key] = true
	return nil
}

func (r *memLikeRepo) Delete(ctx context.Context, userID, postID string) error {
	delete(r.likes, likeKey{userID, postID})
	return nil
}

func (r *memLikeRepo) CountByPost(ctx context.Context, postID string) (int, error) {
	count := 0
	for key := range r.likes {
		if key.postID == postID {
			count++
		}
	}
	return count, nil
}

type reviewKey struct{ userID, businessID string }

type memReviewRepo struct {
	reviews map[reviewKey]*domain.Review
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: map[reviewKey]*domain.Review{}}
}

func (r *memReviewRepo) upsert(userID, businessID string) *domain.Review {
	key := reviewKey{userID, businessID}
	review, ok := r.reviews[key]
	if !ok {
		review = &domain.Review{
			ID:         uuid.NewString(),
			UserID:     userID,
			BusinessID: businessID,
			CreatedAt:  time.Now(),
		}
		r.reviews[key] = review
	}
	review.UpdatedAt = time.Now()
	return review
}

func (r *memReviewRepo) UpsertContent(ctx context.Context, userID, businessID, content string) (*domain.Review, error) {
	review := r.upsert(userID, businessID)
	review.Content = &content
	return review, nil
}

func (r *memReviewRepo) UpsertRating(ctx context.Context, userID, businessID string, rating int) (*domain.Review, error) {
	review := r.upsert(userID, businessID)
	review.Rating = &rating
	return review, nil
}

func (r *memReviewRepo) DeleteByUser(ctx context.Context, userID string) (int, error) {
	count := 0
	for key := range r.reviews {
		if key.userID == userID {
			delete(r.reviews, key)
			count++
		}
	}
	return count, nil
}

func (r *memReviewRepo) List(ctx context.Context) ([]*domain.Review, error) {
	reviews := []*domain.Review{}
	for _, review := range r.reviews {
		reviews = append(reviews, review)
	}
	return reviews, nil
}

func (r *memReviewRepo) ListByBusiness(ctx context.Context, businessID string) ([]*domain.Review, error) {
	reviews := []*domain.Review{}
	for _, review := range r.reviews {
		if review.BusinessID == businessID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

func (r *memReviewRepo) RatingForBusiness(ctx context.Context, businessID string) (*domain.RatingSummary, error) {
	summary := &domain.RatingSummary{BusinessID: businessID}
	total := 0
	for _, review := range r.reviews {
		if review.BusinessID == businessID && review.Rating != nil {
			total += *review.Rating
			summary.Count++
		}
	}
	if summary.Count > 0 {
		summary.Rating = float64(total) / float64(summary.Count)
	}
	return summary, nil
}
