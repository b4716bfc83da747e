package forum

import (
	"agri-assistant/entities"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ForumRepository interface {
		CreatePost(ctx context.Context, post *entities.ForumPost) error
		GetPostByID(ctx context.Context, id string) (*entities.ForumPost, error)
		GetRecentPosts(ctx context.Context, limit int) ([]*entities.ForumPost, error)
		IncrementLikes(ctx context.Context, id string) (int, error)
		CountPosts(ctx context.Context, userID string) (int64, error)
	}

	forumRepository struct {
		db *gorm.DB
	}
)

func NewForumRepository(db *gorm.DB) ForumRepository {
	return &forumRepository{db: db}
}

func (r *forumRepository) CreatePost(ctx context.Context, post *entities.ForumPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *forumRepository) GetPostByID(ctx context.Context, id string) (*entities.ForumPost, error) {
	var post entities.ForumPost
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *forumRepository) GetRecentPosts(ctx context.Context, limit int) ([]*entities.ForumPost, error) {
	var posts []*entities.ForumPost
	if err := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// IncrementLikes adds one like in a single UPDATE and returns the new count.
func (r *forumRepository) IncrementLikes(ctx context.Context, id string) (int, error) {
	var post entities.ForumPost
	res := r.db.WithContext(ctx).
		Model(&post).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "likes"}}}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return post.Likes, nil
}

func (r *forumRepository) CountPosts(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.ForumPost{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
