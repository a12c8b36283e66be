package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	courseCachePrefix = "courses:published:"
	courseCacheTTL    = 5 * time.Minute
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	Redis      *redis.Client
}

func NewCourseService(courseRepo *repository.CourseRepository, rdb *redis.Client) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		Redis:      rdb,
	}
}

type coursePage struct {
	List  []model.Course `json:"list"`
	Total int64          `json:"total"`
}

// ListPublished 已发布课程列表，Redis 缓存 5 分钟
func (s *CourseService) ListPublished(ctx context.Context, page, limit int) ([]model.Course, int64, error) {
	key := fmt.Sprintf("%sp%d:l%d", courseCachePrefix, page, limit)

	if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
		var cp coursePage
		if json.Unmarshal([]byte(cached), &cp) == nil {
			return cp.List, cp.Total, nil
		}
	}

	courses, total, err := s.CourseRepo.ListPublished(page, limit)
	if err != nil {
		return nil, 0, util.NewUnexpectedError(err)
	}

	if data, err := json.Marshal(coursePage{List: courses, Total: total}); err == nil {
		s.Redis.Set(ctx, key, data, courseCacheTTL)
	}
	return courses, total, nil
}

// GetByID 课程详情，带模块列表（按 order 排序）
func (s *CourseService) GetByID(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByIDWithModules(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.NewNotFoundError("课程不存在")
	} else if err != nil {
		return nil, util.NewUnexpectedError(err)
	}
	return course, nil
}

func (s *CourseService) Create(instructorID uint, course *model.Course) error {
	course.InstructorID = instructorID
	course.Status = model.CourseDraft
	if err := s.CourseRepo.Create(course); err != nil {
		return util.NewUnexpectedError(err)
	}
	return nil
}

// Update 仅课程讲师本人或管理员可修改
func (s *CourseService) Update(ctx context.Context, caller *util.Claims, course *model.Course) error {
	existing, err := s.GetByID(course.ID)
	if err != nil {
		return err
	}
	if err := s.ensureOwner(caller, existing); err != nil {
		return err
	}

	course.InstructorID = existing.InstructorID
	if err := s.CourseRepo.Update(course); err != nil {
		return util.NewUnexpectedError(err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *CourseService) Delete(ctx context.Context, caller *util.Claims, id uint) error {
	existing, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.ensureOwner(caller, existing); err != nil {
		return err
	}

	if err := s.CourseRepo.Delete(id); err != nil {
		return util.NewUnexpectedError(err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *CourseService) Publish(ctx context.Context, caller *util.Claims, id uint) error {
	course, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.ensureOwner(caller, course); err != nil {
		return err
	}
	if len(course.Modules) == 0 {
		return util.NewValidationError("课程至少需要一个模块才能发布")
	}

	course.Status = model.CoursePublished
	if err := s.CourseRepo.Update(course); err != nil {
		return util.NewUnexpectedError(err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *CourseService) ListByInstructor(instructorID uint) ([]model.Course, error) {
	courses, err := s.CourseRepo.ListByInstructor(instructorID)
	if err != nil {
		return nil, util.NewUnexpectedError(err)
	}
	return courses, nil
}

func (s *CourseService) ensureOwner(caller *util.Claims, course *model.Course) error {
	if caller.Role == model.Admin || caller.UserID == course.InstructorID {
		return nil
	}
	return util.NewAuthorizationError("无权操作该课程")
}

func (s *CourseService) invalidateCache(ctx context.Context) {
	iter := s.Redis.Scan(ctx, 0, courseCachePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		s.Redis.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Log.Warn("failed to invalidate course cache", zap.Error(err))
	}
}
