package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetPosts   = "posts retrieved successfully"
	MessageSuccessCreatePost = "post created successfully"
	MessageSuccessLikePost   = "post liked successfully"

	MessageFailedGetPosts   = "Failed to load forum posts"
	MessageFailedCreatePost = "Failed to create post"
	MessageFailedLikePost   = "failed to like post"

	ErrPostNotFound = errors.New("post not found")
	ErrEmptyPost    = errors.New("post content must not be empty")
)

const RecentPostsLimit = 20

type (
	CreatePostRequest struct {
		Content string `json:"content" validate:"required,max=5000"`
	}

	PostResponse struct {
		ID         string    `json:"id"`
		UserID     string    `json:"user_id"`
		AuthorName string    `json:"author_name"`
		Content    string    `json:"content"`
		Likes      int       `json:"likes"`
		Replies    []any     `json:"replies"`
		CreatedAt  time.Time `json:"created_at"`
	}

	LikePostResponse struct {
		ID    string `json:"id"`
		Likes int    `json:"likes"`
	}
)
