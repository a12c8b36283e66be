package service

import (
	"strconv"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo   *repository.QuizRepository
	ModuleRepo *repository.ModuleRepository
	ModuleSvc  *ModuleService
}

func NewQuizService(quizRepo *repository.QuizRepository, moduleRepo *repository.ModuleRepository, moduleSvc *ModuleService) *QuizService {
	return &QuizService{
		QuizRepo:   quizRepo,
		ModuleRepo: moduleRepo,
		ModuleSvc:  moduleSvc,
	}
}

// GetForUser 测验详情。学生需已解锁所属模块，题目不含正确答案
func (s *QuizService) GetForUser(caller *util.Claims, quizID uint) (*model.Quiz, error) {
	quiz, err := s.findQuiz(quizID)
	if err != nil {
		return nil, err
	}

	module, err := s.ModuleRepo.FindByID(quiz.ModuleID)
	if err != nil {
		return nil, util.NewUnexpectedError(err)
	}
	if err := s.ModuleSvc.EnsureUnlocked(caller, module); err != nil {
		return nil, err
	}
	return quiz, nil
}

// SubmitAttempt 判分并落库。判分本身为纯计算，校验失败时不写任何记录；
// 成功时尝试记录与逐题答案在同一事务内写入，记录创建后不可变。
func (s *QuizService) SubmitAttempt(caller *util.Claims, quizID uint, answers []AnswerSubmission) (*model.QuizAttempt, *GradeResult, error) {
	quiz, err := s.GetForUser(caller, quizID)
	if err != nil {
		return nil, nil, err
	}

	result, err := GradeAttempt(quiz, answers)
	if err != nil {
		return nil, nil, err
	}

	attempt := &model.QuizAttempt{
		QuizID:      quiz.ID,
		UserID:      caller.UserID,
		Score:       result.Score,
		Passed:      result.Passed,
		SubmittedAt: time.Now(),
	}

	selected := make(map[uint]int, len(answers))
	for _, a := range answers {
		selected[a.QuestionID] = a.SelectedOptionIndex
	}
	records := make([]model.QuizAnswer, 0, len(result.PerQuestion))
	for _, pq := range result.PerQuestion {
		records = append(records, model.QuizAnswer{
			QuestionID:          pq.QuestionID,
			SelectedOptionIndex: selected[pq.QuestionID],
			IsCorrect:           pq.IsCorrect,
		})
	}

	if err := s.QuizRepo.CreateAttempt(attempt, records); err != nil {
		return nil, nil, util.NewUnexpectedError(err)
	}

	monitoring.QuizAttemptCounter.WithLabelValues(strconv.FormatBool(result.Passed)).Inc()
	return attempt, result, nil
}

// ListAttempts 当前用户在某测验下的历史成绩
func (s *QuizService) ListAttempts(caller *util.Claims, quizID uint) ([]model.QuizAttempt, error) {
	if _, err := s.GetForUser(caller, quizID); err != nil {
		return nil, err
	}
	attempts, err := s.QuizRepo.FindAttemptsByUser(quizID, caller.UserID)
	if err != nil {
		return nil, util.NewUnexpectedError(err)
	}
	return attempts, nil
}

func (s *QuizService) Create(caller *util.Claims, quiz *model.Quiz) error {
	module, err := s.ModuleRepo.FindByID(quiz.ModuleID)
	if err == gorm.ErrRecordNotFound {
		return util.NewNotFoundError("模块不存在")
	} else if err != nil {
		return util.NewUnexpectedError(err)
	}
	if err := s.ensureModuleOwner(caller, module); err != nil {
		return err
	}

	if err := validateQuestions(quiz.Questions); err != nil {
		return err
	}
	if quiz.PassingScore < 0 || quiz.PassingScore > 100 {
		return util.NewValidationError("passingScore 必须在 0 到 100 之间")
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return util.NewUnexpectedError(err)
	}
	return nil
}

// ReplaceQuestions 整体替换题目，历史成绩不受影响
func (s *QuizService) ReplaceQuestions(caller *util.Claims, quizID uint, questions []model.QuizQuestion) error {
	quiz, err := s.findQuiz(quizID)
	if err != nil {
		return err
	}

	module, err := s.ModuleRepo.FindByID(quiz.ModuleID)
	if err != nil {
		return util.NewUnexpectedError(err)
	}
	if err := s.ensureModuleOwner(caller, module); err != nil {
		return err
	}

	if err := validateQuestions(questions); err != nil {
		return err
	}
	if err := s.QuizRepo.ReplaceQuestions(quizID, questions); err != nil {
		return util.NewUnexpectedError(err)
	}
	return nil
}

func (s *QuizService) Delete(caller *util.Claims, quizID uint) error {
	quiz, err := s.findQuiz(quizID)
	if err != nil {
		return err
	}

	module, err := s.ModuleRepo.FindByID(quiz.ModuleID)
	if err != nil {
		return util.NewUnexpectedError(err)
	}
	if err := s.ensureModuleOwner(caller, module); err != nil {
		return err
	}

	if err := s.QuizRepo.Delete(quizID); err != nil {
		return util.NewUnexpectedError(err)
	}
	return nil
}

func (s *QuizService) findQuiz(quizID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.NewNotFoundError("测验不存在")
	} else if err != nil {
		return nil, util.NewUnexpectedError(err)
	}
	return quiz, nil
}

func (s *QuizService) ensureModuleOwner(caller *util.Claims, module *model.CourseModule) error {
	course, err := s.ModuleSvc.CourseRepo.FindByID(module.CourseID)
	if err != nil {
		return util.NewUnexpectedError(err)
	}
	if caller.Role == model.Admin || caller.UserID == course.InstructorID {
		return nil
	}
	return util.NewAuthorizationError("无权操作该测验")
}

func validateQuestions(questions []model.QuizQuestion) error {
	var details []string
	for i, q := range questions {
		if len(q.Options) < 2 {
			details = append(details, "question "+strconv.Itoa(i)+" needs at least 2 options")
		}
		if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
			details = append(details, "question "+strconv.Itoa(i)+" has an out-of-range correct option")
		}
		if q.Points < 0 {
			details = append(details, "question "+strconv.Itoa(i)+" has negative points")
		}
	}
	if len(details) > 0 {
		return util.NewValidationError("invalid quiz questions", details...)
	}
	return nil
}
