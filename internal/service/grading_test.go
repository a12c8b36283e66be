package service

import (
	"errors"
	"strings"
	"testing"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
)

func testQuestion(id uint, points, correctIdx int) model.QuizQuestion {
	q := model.QuizQuestion{
		Text:               "q",
		Options:            []string{"A", "B", "C", "D"},
		CorrectOptionIndex: correctIdx,
		Points:             points,
	}
	q.ID = id
	return q
}

func testQuiz(passingScore int, questions ...model.QuizQuestion) *model.Quiz {
	quiz := &model.Quiz{
		Title:        "quiz",
		PassingScore: passingScore,
		Questions:    questions,
	}
	quiz.ID = 1
	return quiz
}

func TestGradeAttemptScoring(t *testing.T) {
	cases := []struct {
		name       string
		quiz       *model.Quiz
		answers    []AnswerSubmission
		wantScore  int
		wantPassed bool
	}{
		{
			name: "两题各5分答对一题恰好及格",
			quiz: testQuiz(50, testQuestion(1, 5, 0), testQuestion(2, 5, 1)),
			answers: []AnswerSubmission{
				{QuestionID: 1, SelectedOptionIndex: 0},
				{QuestionID: 2, SelectedOptionIndex: 3},
			},
			wantScore:  50,
			wantPassed: true,
		},
		{
			name: "全对满分",
			quiz: testQuiz(60, testQuestion(1, 2, 1), testQuestion(2, 3, 2)),
			answers: []AnswerSubmission{
				{QuestionID: 1, SelectedOptionIndex: 1},
				{QuestionID: 2, SelectedOptionIndex: 2},
			},
			wantScore:  100,
			wantPassed: true,
		},
		{
			name: "全错零分",
			quiz: testQuiz(60, testQuestion(1, 2, 1), testQuestion(2, 3, 2)),
			answers: []AnswerSubmission{
				{QuestionID: 1, SelectedOptionIndex: 0},
				{QuestionID: 2, SelectedOptionIndex: 0},
			},
			wantScore:  0,
			wantPassed: false,
		},
		{
			name: "三分之一四舍五入为33",
			quiz: testQuiz(30, testQuestion(1, 1, 0), testQuestion(2, 1, 0), testQuestion(3, 1, 0)),
			answers: []AnswerSubmission{
				{QuestionID: 1, SelectedOptionIndex: 0},
				{QuestionID: 2, SelectedOptionIndex: 1},
				{QuestionID: 3, SelectedOptionIndex: 1},
			},
			wantScore:  33,
			wantPassed: true,
		},
		{
			name: "三分之二四舍五入为67",
			quiz: testQuiz(70, testQuestion(1, 1, 0), testQuestion(2, 1, 0), testQuestion(3, 1, 0)),
			answers: []AnswerSubmission{
				{QuestionID: 1, SelectedOptionIndex: 0},
				{QuestionID: 2, SelectedOptionIndex: 0},
				{QuestionID: 3, SelectedOptionIndex: 1},
			},
			wantScore:  67,
			wantPassed: false,
		},
		{
			name: "总分为0时得分为0",
			quiz: testQuiz(0, testQuestion(1, 0, 0)),
			answers: []AnswerSubmission{
				{QuestionID: 1, SelectedOptionIndex: 0},
			},
			wantScore:  0,
			wantPassed: true, // passingScore 0 含边界
		},
		{
			name: "总分为0且及格线大于0时判不通过",
			quiz: testQuiz(60, testQuestion(1, 0, 0)),
			answers: []AnswerSubmission{
				{QuestionID: 1, SelectedOptionIndex: 0},
			},
			wantScore:  0,
			wantPassed: false,
		},
		{
			name: "选项越界视为答错",
			quiz: testQuiz(50, testQuestion(1, 5, 0), testQuestion(2, 5, 1)),
			answers: []AnswerSubmission{
				{QuestionID: 1, SelectedOptionIndex: -1},
				{QuestionID: 2, SelectedOptionIndex: 10},
			},
			wantScore:  0,
			wantPassed: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := GradeAttempt(tc.quiz, tc.answers)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Score != tc.wantScore {
				t.Errorf("score = %d, want %d", result.Score, tc.wantScore)
			}
			if result.Passed != tc.wantPassed {
				t.Errorf("passed = %v, want %v", result.Passed, tc.wantPassed)
			}
			if len(result.PerQuestion) != len(tc.quiz.Questions) {
				t.Errorf("perQuestion has %d entries, want %d", len(result.PerQuestion), len(tc.quiz.Questions))
			}
		})
	}
}

// 零题测验的空提交合法，得分为0
func TestGradeAttemptEmptyQuiz(t *testing.T) {
	quiz := testQuiz(60)

	result, err := GradeAttempt(quiz, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 0 {
		t.Errorf("score = %d, want 0", result.Score)
	}
	if result.Passed {
		t.Error("empty quiz with positive passing score should not pass")
	}
	if len(result.PerQuestion) != 0 {
		t.Errorf("perQuestion has %d entries, want 0", len(result.PerQuestion))
	}
}

func TestGradeAttemptIncompleteSubmission(t *testing.T) {
	quiz := testQuiz(60,
		testQuestion(1, 1, 0),
		testQuestion(2, 1, 0),
		testQuestion(3, 1, 0),
		testQuestion(4, 1, 0),
	)

	// 只答了4题中的3题
	answers := []AnswerSubmission{
		{QuestionID: 1, SelectedOptionIndex: 0},
		{QuestionID: 2, SelectedOptionIndex: 0},
		{QuestionID: 4, SelectedOptionIndex: 0},
	}

	result, err := GradeAttempt(quiz, answers)
	if result != nil {
		t.Fatal("expected no result for incomplete submission")
	}

	var appErr *util.AppError
	if !errors.As(err, &appErr) || appErr.Kind != util.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "question 3") {
		t.Errorf("error should name the missing question, got: %v", err)
	}
}

func TestGradeAttemptUnknownQuestion(t *testing.T) {
	quiz := testQuiz(60, testQuestion(1, 1, 0))

	answers := []AnswerSubmission{
		{QuestionID: 1, SelectedOptionIndex: 0},
		{QuestionID: 99, SelectedOptionIndex: 0},
	}

	result, err := GradeAttempt(quiz, answers)
	if result != nil {
		t.Fatal("expected no result when submission has unknown questions")
	}

	var appErr *util.AppError
	if !errors.As(err, &appErr) || appErr.Kind != util.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "question 99") {
		t.Errorf("error should name the unknown question, got: %v", err)
	}
}

func TestGradeAttemptDuplicateAnswers(t *testing.T) {
	quiz := testQuiz(60, testQuestion(1, 1, 0))

	answers := []AnswerSubmission{
		{QuestionID: 1, SelectedOptionIndex: 0},
		{QuestionID: 1, SelectedOptionIndex: 1},
	}

	result, err := GradeAttempt(quiz, answers)
	if result != nil {
		t.Fatal("expected no result for duplicate answers")
	}

	var appErr *util.AppError
	if !errors.As(err, &appErr) || appErr.Kind != util.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGradeAttemptPassBoundary(t *testing.T) {
	// 及格线含边界：score == passingScore 即通过
	quiz := testQuiz(60,
		testQuestion(1, 3, 0),
		testQuestion(2, 2, 0),
	)
	answers := []AnswerSubmission{
		{QuestionID: 1, SelectedOptionIndex: 0},
		{QuestionID: 2, SelectedOptionIndex: 1},
	}

	result, err := GradeAttempt(quiz, answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 60 {
		t.Fatalf("score = %d, want 60", result.Score)
	}
	if !result.Passed {
		t.Error("score equal to passingScore should pass")
	}
}

func TestGradeAttemptDeterministic(t *testing.T) {
	quiz := testQuiz(50, testQuestion(1, 5, 0), testQuestion(2, 5, 1))
	answers := []AnswerSubmission{
		{QuestionID: 2, SelectedOptionIndex: 1},
		{QuestionID: 1, SelectedOptionIndex: 2},
	}

	first, err := GradeAttempt(quiz, answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := GradeAttempt(quiz, answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Score != second.Score || first.Passed != second.Passed {
		t.Error("results differ between runs")
	}
	for i := range first.PerQuestion {
		if first.PerQuestion[i] != second.PerQuestion[i] {
			t.Errorf("perQuestion[%d] differs between runs", i)
		}
	}
}
