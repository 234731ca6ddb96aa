package utils

import (
	"fmt"
	"slices"

	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/domain"
)

func ValidateRosterInput(input *domain.RosterInput) error {
	if len(input.Days) == 0 {
		return fmt.Errorf("排班日期不能为空")
	}

	for day := range input.Availability {
		if !slices.Contains(input.Days, day) {
			return fmt.Errorf("空闲表中的日期 %s 不在排班日期中", day)
		}
	}

	for i, p := range input.People {
		switch p.Gender {
		case domain.GenderMale, domain.GenderFemale, domain.GenderOther:
		default:
			return fmt.Errorf("第 %d 个人员 %s 的性别 %q 不合法", i+1, p.ID, p.Gender)
		}
	}

	return nil
}

func ValidateRosterWithAvailability(days []domain.DayAssignment, availability map[string][]string) error {
	for _, item := range days {
		if len(item.Members) != domain.TeamSize {
			return fmt.Errorf("%s 的队伍人数为 %d，应为 %d", item.Day, len(item.Members), domain.TeamSize)
		}

		for _, id := range item.Members {
			// 检查这个人在当天是否有空闲时间
			if !slices.Contains(availability[item.Day], id) {
				return fmt.Errorf("%s 在 %s 没有空闲时间", id, item.Day)
			}
		}
	}

	return nil
}

func ValidIfExistsDuplicateMember(days []domain.DayAssignment) error {
	// 检查是否存在某一天有重复的成员
	for _, item := range days {
		seen := make(map[string]bool)
		for _, id := range item.Members {
			if seen[id] {
				return fmt.Errorf("%s 中存在重复成员 %s", item.Day, id)
			}
			seen[id] = true
		}
	}
	return nil
}
