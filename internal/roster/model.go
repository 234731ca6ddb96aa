package roster

import "slices"

// 各项惩罚分
const (
	missingGenderPenalty = 5   // 队伍中完全没有男性（或女性）
	overloadThreshold    = 2   // 已排班次数达到该值后开始惩罚
	overloadPenalty      = 10  // 每多排一次的惩罚
	repeatPenalty        = 3   // 与前一天队伍重复的成员
	fallbackBasePenalty  = 100 // 放宽推进委员约束时的基础惩罚
)

// State 是逐天累积的排班状态，只由 Builder 持有和修改
type State struct {
	Counts   map[string]int
	Previous []string // 前一天的队伍，第一天为空
}

func NewState() *State {
	return &State{
		Counts: make(map[string]int),
	}
}

// commit 将某天选出的队伍计入状态
func (s *State) commit(team []string) {
	for _, id := range team {
		s.Counts[id]++
	}
	s.Previous = slices.Clone(team)
}

// Selection 是某一天的选人结果
type Selection struct {
	Members  []string
	Score    int
	Fallback bool
}
