package domain

import (
	"context"
	"time"
)

// Post is a text update published by a business.
type Post struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"business_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// PostBusiness is the business summary embedded in post listings.
type PostBusiness struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// FeedPost is a post enriched with its author summary and counters.
type FeedPost struct {
	Post
	Business      PostBusiness `json:"businesses"`
	Likes         int          `json:"likes"`
	CommentsCount int          `json:"commentsCount"`
}

// Comment is a user's comment on a post.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PostID    string    `json:"post_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Review is a user's review of a business. Content and rating are set
// independently; the pair (user, business) is unique, so writes are upserts.
type Review struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	BusinessID string    `json:"business_id"`
	Content    *string   `json:"content"`
	Rating     *int      `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RatingSummary aggregates the numeric ratings of one business.
type RatingSummary struct {
	BusinessID string  `json:"business_id"`
	Rating     float64 `json:"rating"`
	Count      int     `json:"count"`
}

// PostRepository defines data access for posts
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id string) (*FeedPost, error)
	List(ctx context.Context) ([]*FeedPost, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*FeedPost, error)
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines data access for comments
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	Update(ctx context.Context, id, content string) (*Comment, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*Comment, error)
}

// LikeRepository defines data access for post likes.
// The (user, post) pair is unique; a duplicate insert is a conflict.
type LikeRepository interface {
	Create(ctx context.Context, userID, postID string) error
	Delete(ctx context.Context, userID, postID string) error
	CountByPost(ctx context.Context, postID string) (int, error)
}

// ReviewRepository defines data access for reviews
type ReviewRepository interface {
	UpsertContent(ctx context.Context, userID, businessID, content string) (*Review, error)
	UpsertRating(ctx context.Context, userID, businessID string, rating int) (*Review, error)
	DeleteByUser(ctx context.Context, userID string) (int, error)
	List(ctx context.Context) ([]*Review, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*Review, error)
	RatingForBusiness(ctx context.Context, businessID string) (*RatingSummary, error)
}
