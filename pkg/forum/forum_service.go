package forum

import (
	"agri-assistant/domain"
	"agri-assistant/entities"
	"agri-assistant/internal/utils/metrics"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type (
	ForumService interface {
		GetPosts(ctx context.Context) ([]domain.PostResponse, error)
		CreatePost(ctx context.Context, req domain.CreatePostRequest, author domain.SessionUser) (domain.PostResponse, error)
		LikePost(ctx context.Context, id string) (domain.LikePostResponse, error)
	}

	forumService struct {
		forumRepository ForumRepository
	}
)

func NewForumService(forumRepository ForumRepository) ForumService {
	return &forumService{forumRepository: forumRepository}
}

func (s *forumService) GetPosts(ctx context.Context) ([]domain.PostResponse, error) {
	posts, err := s.forumRepository.GetRecentPosts(ctx, domain.RecentPostsLimit)
	if err != nil {
		return nil, err
	}

	response := make([]domain.PostResponse, 0, len(posts))
	for _, post := range posts {
		response = append(response, toPostResponse(post))
	}
	return response, nil
}

func (s *forumService) CreatePost(ctx context.Context, req domain.CreatePostRequest, author domain.SessionUser) (domain.PostResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return domain.PostResponse{}, domain.ErrEmptyPost
	}

	userUUID, err := uuid.Parse(author.ID)
	if err != nil {
		return domain.PostResponse{}, domain.ErrParseUUID
	}

	post := &entities.ForumPost{
		ID:         uuid.New(),
		UserID:     userUUID,
		AuthorName: author.Name,
		Content:    content,
		Likes:      0,
		Replies:    datatypes.JSON("[]"),
	}
	if err := s.forumRepository.CreatePost(ctx, post); err != nil {
		return domain.PostResponse{}, err
	}

	return toPostResponse(post), nil
}

func (s *forumService) LikePost(ctx context.Context, id string) (domain.LikePostResponse, error) {
	likes, err := s.forumRepository.IncrementLikes(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LikePostResponse{}, domain.ErrPostNotFound
		}
		return domain.LikePostResponse{}, err
	}

	metrics.ForumLikesTotal.Inc()
	return domain.LikePostResponse{ID: id, Likes: likes}, nil
}

func toPostResponse(post *entities.ForumPost) domain.PostResponse {
	replies := []any{}
	if len(post.Replies) > 0 {
		_ = json.Unmarshal(post.Replies, &replies)
	}
	return domain.PostResponse{
		ID:         post.ID.String(),
		UserID:     post.UserID.String(),
		AuthorName: post.AuthorName,
		Content:    post.Content,
		Likes:      post.Likes,
		Replies:    replies,
		CreatedAt:  post.CreatedAt,
	}
}
