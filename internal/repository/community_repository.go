package repository

import (
	"context"
	"fmt"
	"time"

	"learnhub_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewCommunityRepository(db *gorm.DB, rdb *redis.Client) *CommunityRepository {
	return &CommunityRepository{DB: db, RDB: rdb}
}

func (r *CommunityRepository) CreatePost(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *CommunityRepository) FindPostByID(id string) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Author").Preload("Tags").First(&post, "id = ?", id).Error
	return &post, err
}

func (r *CommunityRepository) UpdatePost(post *model.Post) error {
	return r.DB.Save(post).Error
}

func (r *CommunityRepository) DeletePost(id string) error {
	return r.DB.Delete(&model.Post{}, "id = ?", id).Error
}

func (r *CommunityRepository) ListPosts(page, limit int, tag string) ([]model.Post, int64, error) {
	q := r.DB.Model(&model.Post{})
	if tag != "" {
		q = q.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.name = ?", tag)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := q.Preload("Author").Preload("Tags").
		Offset((page - 1) * limit).Limit(limit).
		Order("is_pinned DESC, created_at DESC").
		Find(&posts).Error
	return posts, total, err
}

// IncrementViews 浏览数先累积在 redis，避免每次浏览都写库
func (r *CommunityRepository) IncrementViews(ctx context.Context, postID string) {
	r.RDB.Incr(ctx, "post:views:"+postID)
	r.RDB.Expire(ctx, "post:views:"+postID, 48*time.Hour)
}

// FlushViews 将 redis 中累积的浏览数回写数据库
func (r *CommunityRepository) FlushViews(ctx context.Context) error {
	iter := r.RDB.Scan(ctx, 0, "post:views:*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		count, err := r.RDB.GetDel(ctx, key).Int64()
		if err != nil || count == 0 {
			continue
		}
		postID := key[len("post:views:"):]
		if err := r.DB.Model(&model.Post{}).
			Where("id = ?", postID).
			Update("views", gorm.Expr("views + ?", count)).Error; err != nil {
			return fmt.Errorf("flush views for post %s: %w", postID, err)
		}
	}
	return iter.Err()
}

func (r *CommunityRepository) CreateComment(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommunityRepository) FindCommentByID(id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.First(&comment, "id = ?", id).Error
	return &comment, err
}

func (r *CommunityRepository) DeleteComment(id string) error {
	return r.DB.Delete(&model.Comment{}, "id = ?", id).Error
}

func (r *CommunityRepository) ListComments(postID string, page, limit int) ([]model.Comment, int64, error) {
	q := r.DB.Model(&model.Comment{}).Where("post_id = ?", postID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := q.Preload("Author").Preload("ReplyToUser").
		Offset((page - 1) * limit).Limit(limit).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, total, err
}

func (r *CommunityRepository) ListTags() ([]model.Tag, error) {
	var tags []model.Tag
	err := r.DB.Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *CommunityRepository) FindTagsByName(names []string) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.DB.Where("name IN ?", names).Find(&tags).Error
	return tags, err
}
