package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/domain"
)

func TestSummarize(t *testing.T) {
	attrs := domain.NewAttributes([]domain.Person{
		{ID: "A", Gender: domain.GenderMale, Committee: true},
		{ID: "B", Gender: domain.GenderFemale},
		{ID: "C", Gender: domain.GenderMale},
		{ID: "D", Gender: domain.GenderFemale, Committee: true},
		{ID: "E", Gender: domain.GenderOther},
		{ID: "F", Gender: domain.GenderFemale, Committee: true},
	})
	days := []domain.DayAssignment{
		{Day: "Mon", Members: []string{"A", "B", "C", "D"}},
		{Day: "Tue", Members: []string{"A", "B", "C", "E"}, Fallback: true},
	}
	counts := map[string]int{"A": 2, "B": 2, "C": 2, "D": 1, "E": 1}

	s := Summarize(days, counts, attrs)

	assert.Equal(t, counts, s.MemberCounts)
	assert.Equal(t, 2, s.CommitteeMembers) // F 没有被排班
	assert.Equal(t, 2, s.MaleMembers)
	assert.Equal(t, 2, s.FemaleMembers)
	assert.Equal(t, 1, s.OtherMembers)
	assert.Equal(t, 8, s.TotalAssignments)
	assert.InDelta(t, 1.6, s.MeanAssignments, 1e-9)
	assert.InDelta(t, 0.4898979, s.AssignmentStdDev, 1e-6)
	assert.Equal(t, []string{"Tue"}, s.FallbackDays)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, map[string]int{}, domain.Attributes{})

	assert.Empty(t, s.MemberCounts)
	assert.Zero(t, s.TotalAssignments)
	assert.Zero(t, s.MeanAssignments)
	assert.Zero(t, s.AssignmentStdDev)
	assert.Empty(t, s.FallbackDays)
}

func TestSummarizeSkipsZeroCounts(t *testing.T) {
	attrs := domain.NewAttributes([]domain.Person{
		{ID: "A", Gender: domain.GenderMale, Committee: true},
		{ID: "B", Gender: domain.GenderFemale},
	})

	s := Summarize(nil, map[string]int{"A": 3, "B": 0}, attrs)

	assert.Equal(t, map[string]int{"A": 3}, s.MemberCounts)
	assert.Equal(t, 0, s.FemaleMembers)
	assert.Zero(t, s.AssignmentStdDev)
}

func TestSortedCounts(t *testing.T) {
	got := SortedCounts(map[string]int{"b": 1, "a": 1, "c": 3, "d": 2})
	assert.Equal(t, []string{"c", "d", "a", "b"}, got)
}
