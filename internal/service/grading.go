package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
)

// AnswerSubmission 学生对单题的作答
type AnswerSubmission struct {
	QuestionID          uint `json:"questionId" binding:"required"`
	SelectedOptionIndex int  `json:"selectedOptionIndex"`
}

type QuestionResult struct {
	QuestionID uint `json:"questionId"`
	IsCorrect  bool `json:"isCorrect"`
}

type GradeResult struct {
	Score       int              `json:"score"` // 0..100
	Passed      bool             `json:"passed"`
	PerQuestion []QuestionResult `json:"perQuestion"`
}

// GradeAttempt 对一份完整提交判分。答案必须恰好覆盖测验的全部题目：
// 缺题或出现测验之外的题目ID时返回校验错误并列出具体ID，不做部分判分。
// 得分 = round(100 * 得分点数 / 总点数)，四舍五入；总点数为 0 时得分为 0。
// 及格判定含边界（score >= passingScore）。相同输入永远得到相同输出。
func GradeAttempt(quiz *model.Quiz, answers []AnswerSubmission) (*GradeResult, error) {
	questionByID := make(map[uint]*model.QuizQuestion, len(quiz.Questions))
	for i := range quiz.Questions {
		questionByID[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	selected := make(map[uint]int, len(answers))
	var unknown []uint
	var duplicates []string
	for _, a := range answers {
		if _, ok := questionByID[a.QuestionID]; !ok {
			unknown = append(unknown, a.QuestionID)
			continue
		}
		if _, seen := selected[a.QuestionID]; seen {
			duplicates = append(duplicates, "duplicate answer for question "+util.FormatUint(a.QuestionID))
			continue
		}
		selected[a.QuestionID] = a.SelectedOptionIndex
	}

	var missing []uint
	for _, q := range quiz.Questions {
		if _, ok := selected[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}

	if len(missing) > 0 || len(unknown) > 0 {
		return nil, util.MissingQuestionsError(missing, unknown)
	}
	if len(duplicates) > 0 {
		return nil, util.NewValidationError("invalid quiz submission", duplicates...)
	}

	earned, total := 0, 0
	perQuestion := make([]QuestionResult, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		total += q.Points
		idx := selected[q.ID]
		correct := idx >= 0 && idx < len(q.Options) && idx == q.CorrectOptionIndex
		if correct {
			earned += q.Points
		}
		perQuestion = append(perQuestion, QuestionResult{QuestionID: q.ID, IsCorrect: correct})
	}

	score := 0
	if total > 0 {
		// 整数四舍五入（.5 进位）
		score = (200*earned + total) / (2 * total)
	}

	return &GradeResult{
		Score:       score,
		Passed:      score >= quiz.PassingScore,
		PerQuestion: perQuestion,
	}, nil
}
