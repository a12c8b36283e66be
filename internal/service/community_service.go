package service

import (
	"context"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type CommunityService struct {
	CommunityRepo   *repository.CommunityRepository
	NotificationSvc *NotificationService
}

func NewCommunityService(communityRepo *repository.CommunityRepository, notificationSvc *NotificationService) *CommunityService {
	return &CommunityService{
		CommunityRepo:   communityRepo,
		NotificationSvc: notificationSvc,
	}
}

// CreatePost 发帖。标签必须是预置标签，不存在的直接忽略
func (s *CommunityService) CreatePost(caller *util.Claims, title, content string, tagNames []string) (*model.Post, error) {
	post := &model.Post{
		Title:    title,
		Content:  content,
		AuthorID: caller.UserID,
	}

	if len(tagNames) > 0 {
		tags, err := s.CommunityRepo.FindTagsByName(tagNames)
		if err != nil {
			return nil, util.NewUnexpectedError(err)
		}
		post.Tags = tags
	}

	if err := s.CommunityRepo.CreatePost(post); err != nil {
		return nil, util.NewUnexpectedError(err)
	}
	return post, nil
}

// GetPost 帖子详情，浏览数异步累积
func (s *CommunityService) GetPost(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.CommunityRepo.FindPostByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.NewNotFoundError("帖子不存在")
	} else if err != nil {
		return nil, util.NewUnexpectedError(err)
	}

	s.CommunityRepo.IncrementViews(ctx, id)
	return post, nil
}

func (s *CommunityService) ListPosts(page, limit int, tag string) ([]model.Post, int64, error) {
	posts, total, err := s.CommunityRepo.ListPosts(page, limit, tag)
	if err != nil {
		return nil, 0, util.NewUnexpectedError(err)
	}
	return posts, total, nil
}

// DeletePost 作者本人或管理员可删除
func (s *CommunityService) DeletePost(caller *util.Claims, id string) error {
	post, err := s.CommunityRepo.FindPostByID(id)
	if err == gorm.ErrRecordNotFound {
		return util.NewNotFoundError("帖子不存在")
	} else if err != nil {
		return util.NewUnexpectedError(err)
	}

	if caller.Role != model.Admin && caller.UserID != post.AuthorID {
		return util.NewAuthorizationError("无权删除该帖子")
	}
	if err := s.CommunityRepo.DeletePost(id); err != nil {
		return util.NewUnexpectedError(err)
	}
	return nil
}

// PinPost 管理员置顶/取消置顶
func (s *CommunityService) PinPost(id string, pinned bool) error {
	post, err := s.CommunityRepo.FindPostByID(id)
	if err == gorm.ErrRecordNotFound {
		return util.NewNotFoundError("帖子不存在")
	} else if err != nil {
		return util.NewUnexpectedError(err)
	}

	post.IsPinned = pinned
	if err := s.CommunityRepo.UpdatePost(post); err != nil {
		return util.NewUnexpectedError(err)
	}
	return nil
}

// CreateComment 评论或回复。回复时通知被回复人
func (s *CommunityService) CreateComment(caller *util.Claims, postID, content string, parentID *string) (*model.Comment, error) {
	post, err := s.CommunityRepo.FindPostByID(postID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.NewNotFoundError("帖子不存在")
	} else if err != nil {
		return nil, util.NewUnexpectedError(err)
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: caller.UserID,
		Content:  content,
		ParentID: parentID,
	}

	var notifyUserID uint
	if parentID != nil {
		parent, err := s.CommunityRepo.FindCommentByID(*parentID)
		if err == gorm.ErrRecordNotFound {
			return nil, util.NewNotFoundError("被回复的评论不存在")
		} else if err != nil {
			return nil, util.NewUnexpectedError(err)
		}
		if parent.PostID != postID {
			return nil, util.NewValidationError("父评论不属于该帖子")
		}
		comment.ReplyToUID = &parent.AuthorID
		notifyUserID = parent.AuthorID
	} else {
		notifyUserID = post.AuthorID
	}

	if err := s.CommunityRepo.CreateComment(comment); err != nil {
		return nil, util.NewUnexpectedError(err)
	}

	if notifyUserID != caller.UserID {
		s.NotificationSvc.Notify(notifyUserID, model.NotifyCommunity,
			"收到新回复", "你在帖子「"+post.Title+"」下收到了新回复。")
	}
	return comment, nil
}

func (s *CommunityService) DeleteComment(caller *util.Claims, id string) error {
	comment, err := s.CommunityRepo.FindCommentByID(id)
	if err == gorm.ErrRecordNotFound {
		return util.NewNotFoundError("评论不存在")
	} else if err != nil {
		return util.NewUnexpectedError(err)
	}

	if caller.Role != model.Admin && caller.UserID != comment.AuthorID {
		return util.NewAuthorizationError("无权删除该评论")
	}
	if err := s.CommunityRepo.DeleteComment(id); err != nil {
		return util.NewUnexpectedError(err)
	}
	return nil
}

func (s *CommunityService) ListComments(postID string, page, limit int) ([]model.Comment, int64, error) {
	comments, total, err := s.CommunityRepo.ListComments(postID, page, limit)
	if err != nil {
		return nil, 0, util.NewUnexpectedError(err)
	}
	return comments, total, nil
}

func (s *CommunityService) ListTags() ([]model.Tag, error) {
	tags, err := s.CommunityRepo.ListTags()
	if err != nil {
		return nil, util.NewUnexpectedError(err)
	}
	return tags, nil
}
