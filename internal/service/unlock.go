package service

import (
	"sort"
	"time"

	"learnhub_backend/internal/model"
)

// ModuleUnlockState 单个模块对某次报名的解锁状态
type ModuleUnlockState struct {
	Module     model.CourseModule `json:"module"`
	UnlockedAt time.Time          `json:"unlockedAt"`
	IsUnlocked bool               `json:"isUnlocked"`
}

// ComputeUnlockedModules 计算一次报名下各模块的解锁状态，按 order 升序返回。
// 解锁时间 = 报名日期 + durationInDays（自然日）。报名未激活或已过期时全部锁定，
// 非 ACTIVE 状态的模块无论日期都不解锁。纯函数，不产生任何副作用。
func ComputeUnlockedModules(enrollment *model.Enrollment, modules []model.CourseModule, now time.Time) []ModuleUnlockState {
	ordered := make([]model.CourseModule, len(modules))
	copy(ordered, modules)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Order != ordered[j].Order {
			return ordered[i].Order < ordered[j].Order
		}
		return ordered[i].ID < ordered[j].ID
	})

	accessible := enrollment != nil && enrollment.IsActive && !enrollment.Expired(now)

	states := make([]ModuleUnlockState, 0, len(ordered))
	for _, m := range ordered {
		var unlockedAt time.Time
		if enrollment != nil {
			unlockedAt = enrollment.EnrollmentDate.AddDate(0, 0, m.DurationInDays)
		}

		unlocked := accessible &&
			m.Status == model.ModuleActive &&
			!now.Before(unlockedAt)

		states = append(states, ModuleUnlockState{
			Module:     m,
			UnlockedAt: unlockedAt,
			IsUnlocked: unlocked,
		})
	}
	return states
}
