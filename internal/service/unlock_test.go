package service

import (
	"testing"
	"time"

	"learnhub_backend/internal/model"
)

func testModule(id uint, order, durationInDays int, status model.ModuleStatus) model.CourseModule {
	m := model.CourseModule{
		Title:          "module",
		Order:          order,
		DurationInDays: durationInDays,
		Status:         status,
	}
	m.ID = id
	return m
}

func activeEnrollment(enrolledAt time.Time) *model.Enrollment {
	e := &model.Enrollment{
		UserID:         1,
		CourseID:       1,
		EnrollmentDate: enrolledAt,
		ExpiryDate:     enrolledAt.AddDate(1, 0, 0),
		IsActive:       true,
	}
	e.ID = 1
	return e
}

func TestComputeUnlockedModulesDayBoundary(t *testing.T) {
	enrolledAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	enrollment := activeEnrollment(enrolledAt)
	modules := []model.CourseModule{
		testModule(1, 1, 0, model.ModuleActive),
		testModule(2, 2, 7, model.ModuleActive),
	}

	cases := []struct {
		name string
		now  time.Time
		want []bool
	}{
		{"报名当天", enrolledAt, []bool{true, false}},
		{"第6天仍锁定", enrolledAt.AddDate(0, 0, 6), []bool{true, false}},
		{"第7天整点解锁", enrolledAt.AddDate(0, 0, 7), []bool{true, true}},
		{"第7天之后", enrolledAt.AddDate(0, 0, 8), []bool{true, true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			states := ComputeUnlockedModules(enrollment, modules, tc.now)
			if len(states) != len(tc.want) {
				t.Fatalf("got %d states, want %d", len(states), len(tc.want))
			}
			for i, want := range tc.want {
				if states[i].IsUnlocked != want {
					t.Errorf("module %d at %s: unlocked = %v, want %v",
						states[i].Module.ID, tc.now, states[i].IsUnlocked, want)
				}
			}
		})
	}
}

func TestComputeUnlockedModulesUnlockedAt(t *testing.T) {
	enrolledAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	enrollment := activeEnrollment(enrolledAt)
	modules := []model.CourseModule{testModule(1, 1, 14, model.ModuleActive)}

	states := ComputeUnlockedModules(enrollment, modules, enrolledAt)
	want := enrolledAt.AddDate(0, 0, 14)
	if !states[0].UnlockedAt.Equal(want) {
		t.Errorf("unlockedAt = %v, want %v", states[0].UnlockedAt, want)
	}
}

func TestComputeUnlockedModulesInaccessibleEnrollment(t *testing.T) {
	enrolledAt := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	now := enrolledAt.AddDate(0, 0, 30)
	modules := []model.CourseModule{
		testModule(1, 1, 0, model.ModuleActive),
		testModule(2, 2, 7, model.ModuleActive),
	}

	inactive := activeEnrollment(enrolledAt)
	inactive.IsActive = false

	expired := activeEnrollment(enrolledAt)
	expired.ExpiryDate = enrolledAt.AddDate(0, 0, 10)

	cases := []struct {
		name       string
		enrollment *model.Enrollment
	}{
		{"未报名", nil},
		{"报名未激活", inactive},
		{"报名已过期", expired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, s := range ComputeUnlockedModules(tc.enrollment, modules, now) {
				if s.IsUnlocked {
					t.Errorf("module %d unlocked, want all locked", s.Module.ID)
				}
			}
		})
	}
}

func TestComputeUnlockedModulesSkipsNonActiveModules(t *testing.T) {
	enrolledAt := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	enrollment := activeEnrollment(enrolledAt)
	modules := []model.CourseModule{
		testModule(1, 1, 0, model.ModuleDraft),
		testModule(2, 2, 0, model.ModuleArchived),
		testModule(3, 3, 0, model.ModuleActive),
	}

	states := ComputeUnlockedModules(enrollment, modules, enrolledAt.AddDate(0, 0, 100))
	for _, s := range states {
		wantUnlocked := s.Module.Status == model.ModuleActive
		if s.IsUnlocked != wantUnlocked {
			t.Errorf("module %d (%s): unlocked = %v, want %v",
				s.Module.ID, s.Module.Status, s.IsUnlocked, wantUnlocked)
		}
	}
}

func TestComputeUnlockedModulesOrdering(t *testing.T) {
	enrolledAt := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	enrollment := activeEnrollment(enrolledAt)
	modules := []model.CourseModule{
		testModule(5, 3, 0, model.ModuleActive),
		testModule(2, 1, 0, model.ModuleActive),
		testModule(9, 2, 0, model.ModuleActive),
		testModule(4, 2, 0, model.ModuleActive),
	}

	states := ComputeUnlockedModules(enrollment, modules, enrolledAt)
	wantIDs := []uint{2, 4, 9, 5}
	for i, want := range wantIDs {
		if states[i].Module.ID != want {
			t.Errorf("position %d: module ID = %d, want %d", i, states[i].Module.ID, want)
		}
	}

	// 纯函数，不修改入参
	if modules[0].ID != 5 || modules[1].ID != 2 {
		t.Error("input slice was reordered")
	}
}

func TestComputeUnlockedModulesDeterministic(t *testing.T) {
	enrolledAt := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	enrollment := activeEnrollment(enrolledAt)
	modules := []model.CourseModule{
		testModule(1, 1, 0, model.ModuleActive),
		testModule(2, 2, 3, model.ModuleActive),
	}
	now := enrolledAt.AddDate(0, 0, 5)

	first := ComputeUnlockedModules(enrollment, modules, now)
	second := ComputeUnlockedModules(enrollment, modules, now)
	for i := range first {
		if first[i].IsUnlocked != second[i].IsUnlocked || !first[i].UnlockedAt.Equal(second[i].UnlockedAt) {
			t.Errorf("position %d: results differ between runs", i)
		}
	}
}
