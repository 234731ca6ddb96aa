package report

import (
	"math"
	"slices"

	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// Summarize 根据最终的排班结果统计每个人的排班次数以及参与排班的推进委员、各性别的人数
func Summarize(days []domain.DayAssignment, counts map[string]int, attrs domain.Attributes) *domain.Summary {
	s := &domain.Summary{
		MemberCounts: make(map[string]int, len(counts)),
		FallbackDays: make([]string, 0),
	}

	ids := make([]string, 0, len(counts))
	for id, cnt := range counts {
		if cnt <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	values := make([]float64, 0, len(ids))
	for _, id := range ids {
		cnt := counts[id]
		s.MemberCounts[id] = cnt
		s.TotalAssignments += cnt
		values = append(values, float64(cnt))

		p := attrs[id]
		if p.Committee {
			s.CommitteeMembers++
		}
		switch p.Gender {
		case domain.GenderMale:
			s.MaleMembers++
		case domain.GenderFemale:
			s.FemaleMembers++
		default:
			s.OtherMembers++
		}
	}

	if len(values) > 0 {
		mean, std := stat.PopMeanStdDev(values, nil)
		s.MeanAssignments = mean
		if !math.IsNaN(std) {
			s.AssignmentStdDev = std
		}
	}

	for _, item := range days {
		if item.Fallback {
			s.FallbackDays = append(s.FallbackDays, item.Day)
		}
	}

	return s
}

// SortedCounts 按排班次数从多到少排列，次数相同时按 ID 排列
func SortedCounts(counts map[string]int) []string {
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
	return ids
}
