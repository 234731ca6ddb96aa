package roster

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/domain"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/utils"
)

type Builder struct {
	days         []string
	availability map[string][]string // {day: [personID1, personID2, ...]}，顺序决定组合的枚举顺序
	attributes   domain.Attributes
}

type Result struct {
	Days   []domain.DayAssignment
	Counts map[string]int // 只包含至少被排过一次的人
}

func New(input *domain.RosterInput) (*Builder, error) {
	b := &Builder{
		days:         make([]string, 0, len(input.Days)),
		availability: make(map[string][]string, len(input.Availability)),
		attributes:   make(domain.Attributes, len(input.People)),
	}

	for _, p := range input.People {
		if _, exists := b.attributes[p.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePerson, p.ID)
		}
		b.attributes[p.ID] = p
	}

	for _, day := range input.Days {
		if slices.Contains(b.days, day) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDay, day)
		}
		b.days = append(b.days, day)
	}

	for day, ids := range input.Availability {
		b.availability[day] = slices.Clone(ids)
	}

	return b, nil
}

// Build 按日期顺序逐天选人。任意一天失败都会使整个排班失败，不返回部分结果
func (b *Builder) Build() (*Result, error) {
	state := NewState()
	days := make([]domain.DayAssignment, 0, len(b.days))

	for i, day := range b.days {
		// 不在空闲表中的日期视为没有人可用
		sel, err := SelectTeam(day, b.availability[day], b.attributes, state)
		if err != nil {
			return nil, fmt.Errorf("无法为第 %d 天排班: %w", i+1, err)
		}

		if sel.Fallback {
			slog.Warn("当天没有可用的推进委员，已放宽约束", "day", day, "score", sel.Score)
		}

		days = append(days, domain.DayAssignment{
			Day:      day,
			Members:  sel.Members,
			Score:    sel.Score,
			Fallback: sel.Fallback,
		})
		state.commit(sel.Members)
	}

	// 还需要检查一下结果是否满足约束条件
	if err := utils.ValidateRosterWithAvailability(days, b.availability); err != nil {
		return nil, err
	}
	if err := utils.ValidIfExistsDuplicateMember(days); err != nil {
		return nil, err
	}

	return &Result{
		Days:   days,
		Counts: state.Counts,
	}, nil
}
