package forum

import (
	"agri-assistant/domain"
	"agri-assistant/entities"
	"agri-assistant/internal/utils/testdb"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newPost(likes int, createdAt time.Time) *entities.ForumPost {
	return &entities.ForumPost{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		AuthorName: "Chikondi",
		Content:    "Rains came early",
		Likes:      likes,
		Replies:    datatypes.JSON("[]"),
		Timestamp:  entities.Timestamp{CreatedAt: createdAt, UpdatedAt: createdAt},
	}
}

func TestForumRepository_ConcurrentIncrementLikes(t *testing.T) {
	repo := NewForumRepository(testdb.Open(t, testdb.ForumPosts))
	ctx := context.Background()
	post := newPost(3, time.Now())
	require.NoError(t, repo.CreatePost(ctx, post))

	start := make(chan struct{})
	returned := make([]int, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			returned[i], errs[i] = repo.IncrementLikes(ctx, post.ID.String())
		}()
	}
	close(start)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.ElementsMatch(t, []int{4, 5}, returned)

	stored, err := repo.GetPostByID(ctx, post.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Likes)
}

// A read-then-write like loses one of two
// concurrent likes against the same database.
func TestForumRepository_ReadThenWriteLosesLike(t *testing.T) {
	db := testdb.Open(t, testdb.ForumPosts)
	repo := NewForumRepository(db)
	ctx := context.Background()
	post := newPost(3, time.Now())
	require.NoError(t, repo.CreatePost(ctx, post))

	var read, done sync.WaitGroup
	read.Add(2)
	for range 2 {
		done.Add(1)
		go func() {
			defer done.Done()
			current, err := repo.GetPostByID(ctx, post.ID.String())
			read.Done()
			if !assert.NoError(t, err) {
				return
			}
			read.Wait()
			assert.NoError(t, db.Model(&entities.ForumPost{}).
				Where("id = ?", post.ID).
				Update("likes", current.Likes+1).Error)
		}()
	}
	done.Wait()

	stored, err := repo.GetPostByID(ctx, post.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Likes)
}

func TestForumRepository_IncrementLikesNotFound(t *testing.T) {
	repo := NewForumRepository(testdb.Open(t, testdb.ForumPosts))

	_, err := repo.IncrementLikes(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = NewForumService(repo).LikePost(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestForumRepository_RecentPostsAndCount(t *testing.T) {
	repo := NewForumRepository(testdb.Open(t, testdb.ForumPosts))
	ctx := context.Background()
	base := time.Now()

	author := uuid.New()
	for i := range 3 {
		p := newPost(0, base.Add(time.Duration(i)*time.Minute))
		p.UserID = author
		require.NoError(t, repo.CreatePost(ctx, p))
	}
	require.NoError(t, repo.CreatePost(ctx, newPost(0, base.Add(-time.Hour))))

	posts, err := repo.GetRecentPosts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.True(t, posts[0].CreatedAt.After(posts[1].CreatedAt))

	count, err := repo.CountPosts(ctx, author.String())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
