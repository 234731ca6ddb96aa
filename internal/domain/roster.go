package domain

import "time"

// TeamSize 每天需要排的人数
const TeamSize = 4

type DayAssignment struct {
	Day      string   `json:"day"`
	Members  []string `json:"members"` // 按候选人在当天空闲名单中的顺序排列
	Score    int      `json:"score"`
	Fallback bool     `json:"fallback"` // 当天没有任何推进委员可用，放宽了约束
}

type Summary struct {
	MemberCounts     map[string]int `json:"memberCounts"`
	CommitteeMembers int            `json:"committeeMembers"`
	MaleMembers      int            `json:"maleMembers"`
	FemaleMembers    int            `json:"femaleMembers"`
	OtherMembers     int            `json:"otherMembers"`
	TotalAssignments int            `json:"totalAssignments"`
	MeanAssignments  float64        `json:"meanAssignments"`
	AssignmentStdDev float64        `json:"assignmentStdDev"`
	FallbackDays     []string       `json:"fallbackDays"`
}

type Roster struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Days      []DayAssignment `json:"days"`
	People    []Person        `json:"people"`
	Counts    map[string]int  `json:"counts"`
	Summary   *Summary        `json:"summary,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	Version   int32           `json:"-"`
}

// RosterInput 是一次排班所需的全部输入
type RosterInput struct {
	Days         []string            `json:"days"`
	Availability map[string][]string `json:"availability"`
	People       []Person            `json:"people"`
}
