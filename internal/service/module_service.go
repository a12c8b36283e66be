package service

import (
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ModuleService struct {
	ModuleRepo      *repository.ModuleRepository
	CourseRepo      *repository.CourseRepository
	EnrollmentRepo  *repository.EnrollmentRepository
	NotificationSvc *NotificationService
}

func NewModuleService(moduleRepo *repository.ModuleRepository, courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository, notificationSvc *NotificationService) *ModuleService {
	return &ModuleService{
		ModuleRepo:      moduleRepo,
		CourseRepo:      courseRepo,
		EnrollmentRepo:  enrollmentRepo,
		NotificationSvc: notificationSvc,
	}
}

// ListForUser 返回课程全部模块及对当前用户的解锁状态。
// 讲师本人和管理员视角下全部可见；学生按报名日期逐模块解锁。
// 首次出现解锁的模块会顺带触发一次性通知。
func (s *ModuleService) ListForUser(caller *util.Claims, courseID uint) ([]ModuleUnlockState, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.NewNotFoundError("课程不存在")
	} else if err != nil {
		return nil, util.NewUnexpectedError(err)
	}

	modules, err := s.ModuleRepo.FindByCourse(courseID)
	if err != nil {
		return nil, util.NewUnexpectedError(err)
	}

	now := time.Now()

	if caller != nil && (caller.Role == model.Admin || caller.UserID == course.InstructorID) {
		states := make([]ModuleUnlockState, 0, len(modules))
		for _, m := range modules {
			states = append(states, ModuleUnlockState{Module: m, IsUnlocked: true})
		}
		return states, nil
	}

	var enrollment *model.Enrollment
	if caller != nil {
		enrollment, err = s.EnrollmentRepo.FindActive(caller.UserID, courseID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, util.NewUnexpectedError(err)
		}
	}

	states := ComputeUnlockedModules(enrollment, modules, now)

	if enrollment != nil {
		for i := range states {
			if states[i].IsUnlocked {
				if err := s.NotificationSvc.NotifyModuleUnlocked(enrollment, &states[i].Module); err != nil {
					logger.Log.Warn("failed to dispatch unlock notice",
						zap.Uint("moduleId", states[i].Module.ID),
						zap.Error(err))
				}
			}
		}
	}

	return states, nil
}

// GetForUser 模块详情（含内容列表），锁定中的模块学生不可见
func (s *ModuleService) GetForUser(caller *util.Claims, moduleID uint) (*model.CourseModule, error) {
	module, err := s.ModuleRepo.FindByIDWithContents(moduleID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.NewNotFoundError("模块不存在")
	} else if err != nil {
		return nil, util.NewUnexpectedError(err)
	}

	if err := s.EnsureUnlocked(caller, module); err != nil {
		return nil, err
	}
	return module, nil
}

// EnsureUnlocked 校验当前用户是否已解锁该模块
func (s *ModuleService) EnsureUnlocked(caller *util.Claims, module *model.CourseModule) error {
	if caller == nil {
		return util.NewAuthenticationError("请先登录")
	}

	course, err := s.CourseRepo.FindByID(module.CourseID)
	if err != nil {
		return util.NewUnexpectedError(err)
	}
	if caller.Role == model.Admin || caller.UserID == course.InstructorID {
		return nil
	}

	enrollment, err := s.EnrollmentRepo.FindActive(caller.UserID, module.CourseID)
	if err == gorm.ErrRecordNotFound {
		return util.NewAuthorizationError("尚未报名该课程")
	} else if err != nil {
		return util.NewUnexpectedError(err)
	}

	states := ComputeUnlockedModules(enrollment, []model.CourseModule{*module}, time.Now())
	if len(states) == 0 || !states[0].IsUnlocked {
		return util.NewAuthorizationError("该模块尚未解锁")
	}
	return nil
}

func (s *ModuleService) Create(caller *util.Claims, module *model.CourseModule) error {
	course, err := s.CourseRepo.FindByID(module.CourseID)
	if err == gorm.ErrRecordNotFound {
		return util.NewNotFoundError("课程不存在")
	} else if err != nil {
		return util.NewUnexpectedError(err)
	}
	if err := s.ensureInstructor(caller, course); err != nil {
		return err
	}

	if module.DurationInDays < 0 {
		return util.NewValidationError("durationInDays 不能为负数")
	}
	if err := s.ModuleRepo.Create(module); err != nil {
		return util.NewUnexpectedError(err)
	}
	return nil
}

func (s *ModuleService) Update(caller *util.Claims, module *model.CourseModule) error {
	existing, err := s.ModuleRepo.FindByID(module.ID)
	if err == gorm.ErrRecordNotFound {
		return util.NewNotFoundError("模块不存在")
	} else if err != nil {
		return util.NewUnexpectedError(err)
	}

	course, err := s.CourseRepo.FindByID(existing.CourseID)
	if err != nil {
		return util.NewUnexpectedError(err)
	}
	if err := s.ensureInstructor(caller, course); err != nil {
		return err
	}

	if module.DurationInDays < 0 {
		return util.NewValidationError("durationInDays 不能为负数")
	}

	// 在已加载的记录上合并字段，避免 Save 把未提交的列清零
	existing.Title = module.Title
	existing.Description = module.Description
	existing.Order = module.Order
	existing.DurationInDays = module.DurationInDays
	existing.Price = module.Price
	if module.Status != "" {
		existing.Status = module.Status
	}
	if err := s.ModuleRepo.Update(existing); err != nil {
		return util.NewUnexpectedError(err)
	}
	*module = *existing
	return nil
}

func (s *ModuleService) Delete(caller *util.Claims, moduleID uint) error {
	existing, err := s.ModuleRepo.FindByID(moduleID)
	if err == gorm.ErrRecordNotFound {
		return util.NewNotFoundError("模块不存在")
	} else if err != nil {
		return util.NewUnexpectedError(err)
	}

	course, err := s.CourseRepo.FindByID(existing.CourseID)
	if err != nil {
		return util.NewUnexpectedError(err)
	}
	if err := s.ensureInstructor(caller, course); err != nil {
		return err
	}

	if err := s.ModuleRepo.Delete(moduleID); err != nil {
		return util.NewUnexpectedError(err)
	}
	return nil
}

// CreateContent 在模块下新增学习内容
func (s *ModuleService) CreateContent(caller *util.Claims, content *model.Content) error {
	module, err := s.ModuleRepo.FindByID(content.ModuleID)
	if err == gorm.ErrRecordNotFound {
		return util.NewNotFoundError("模块不存在")
	} else if err != nil {
		return util.NewUnexpectedError(err)
	}

	course, err := s.CourseRepo.FindByID(module.CourseID)
	if err != nil {
		return util.NewUnexpectedError(err)
	}
	if err := s.ensureInstructor(caller, course); err != nil {
		return err
	}

	if err := s.ModuleRepo.CreateContent(content); err != nil {
		return util.NewUnexpectedError(err)
	}
	return nil
}

// GetContentForUser 获取内容详情，需要所属模块已解锁
func (s *ModuleService) GetContentForUser(caller *util.Claims, contentID uint) (*model.Content, error) {
	content, err := s.ModuleRepo.FindContentByID(contentID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.NewNotFoundError("内容不存在")
	} else if err != nil {
		return nil, util.NewUnexpectedError(err)
	}

	module, err := s.ModuleRepo.FindByID(content.ModuleID)
	if err != nil {
		return nil, util.NewUnexpectedError(err)
	}
	if err := s.EnsureUnlocked(caller, module); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *ModuleService) ensureInstructor(caller *util.Claims, course *model.Course) error {
	if caller.Role == model.Admin || caller.UserID == course.InstructorID {
		return nil
	}
	return util.NewAuthorizationError("无权操作该课程的模块")
}
