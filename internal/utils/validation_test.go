package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/domain"
)

func TestValidateRosterInput(t *testing.T) {
	people := []domain.Person{
		{ID: "A", Gender: domain.GenderMale},
		{ID: "B", Gender: domain.GenderFemale},
	}

	tests := []struct {
		name    string
		input   domain.RosterInput
		wantErr string
	}{
		{
			name:  "ok",
			input: domain.RosterInput{Days: []string{"Mon"}, Availability: map[string][]string{"Mon": {"A"}}, People: people},
		},
		{
			name:    "no days",
			input:   domain.RosterInput{People: people},
			wantErr: "排班日期不能为空",
		},
		{
			name:    "unknown day",
			input:   domain.RosterInput{Days: []string{"Mon"}, Availability: map[string][]string{"Sun": {"A"}}, People: people},
			wantErr: "空闲表中的日期 Sun 不在排班日期中",
		},
		{
			name: "bad gender",
			input: domain.RosterInput{Days: []string{"Mon"}, People: []domain.Person{
				{ID: "A", Gender: domain.GenderMale},
				{ID: "B", Gender: "unknown"},
			}},
			wantErr: `第 2 个人员 B 的性别 "unknown" 不合法`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRosterInput(&tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidateRosterWithAvailability(t *testing.T) {
	availability := map[string][]string{"Mon": {"A", "B", "C", "D", "E"}}

	ok := []domain.DayAssignment{{Day: "Mon", Members: []string{"A", "B", "C", "D"}}}
	assert.NoError(t, ValidateRosterWithAvailability(ok, availability))

	short := []domain.DayAssignment{{Day: "Mon", Members: []string{"A", "B", "C"}}}
	assert.Error(t, ValidateRosterWithAvailability(short, availability))

	unavailable := []domain.DayAssignment{{Day: "Mon", Members: []string{"A", "B", "C", "F"}}}
	assert.EqualError(t, ValidateRosterWithAvailability(unavailable, availability), "F 在 Mon 没有空闲时间")
}

func TestValidIfExistsDuplicateMember(t *testing.T) {
	assert.NoError(t, ValidIfExistsDuplicateMember([]domain.DayAssignment{
		{Day: "Mon", Members: []string{"A", "B", "C", "D"}},
		{Day: "Tue", Members: []string{"A", "B", "C", "D"}},
	}))

	assert.EqualError(t, ValidIfExistsDuplicateMember([]domain.DayAssignment{
		{Day: "Mon", Members: []string{"A", "B", "A", "D"}},
	}), "Mon 中存在重复成员 A")
}
