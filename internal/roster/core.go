package roster

import (
	"slices"

	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/domain"
	"gonum.org/v1/gonum/stat/combin"
)

/**
 * 计算一个队伍的惩罚分（越低越好，0 为理想）
 * score = genderPenalty + overloadPenalty + repeatPenalty
 * 其中:
 * 		1. genderPenalty 为性别惩罚：没有男性 +5，没有女性 +5
 * 		2. overloadPenalty 为过载惩罚：已排班 count >= 2 的成员加 (count-1)*10
 * 		3. repeatPenalty 为重复惩罚：前一天也在队伍中的成员每人 +3
 * 推进委员约束不计入分数，由 SelectTeam 负责
 */
func Score(team []string, attrs domain.Attributes, counts map[string]int, previous []string) int {
	score := 0

	male, female := countGender(team, attrs)
	if male == 0 {
		score += missingGenderPenalty
	}
	if female == 0 {
		score += missingGenderPenalty
	}

	for _, id := range team {
		if cnt := counts[id]; cnt >= overloadThreshold {
			score += (cnt - 1) * overloadPenalty
		}
		if inTeam(previous, id) {
			score += repeatPenalty
		}
	}

	return score
}

// SelectTeam 从某天的空闲名单中选出惩罚分最低的队伍
//
// 先只考虑包含推进委员的组合；如果没有任何组合包含推进委员，再以 100 分为基础惩罚
// 重新在全部组合中选择。两轮的结果不会互相比较。
func SelectTeam(day string, candidates []string, attrs domain.Attributes, state *State) (*Selection, error) {
	seen := make(map[string]bool, len(candidates))
	for _, id := range candidates {
		if seen[id] {
			return nil, &DuplicateCandidateError{Day: day, Person: id}
		}
		seen[id] = true

		if _, exists := attrs[id]; !exists {
			return nil, &UnknownPersonError{Day: day, Person: id}
		}
	}

	if len(candidates) < domain.TeamSize {
		return nil, &InsufficientCandidatesError{Day: day, Available: len(candidates)}
	}

	if best := search(candidates, attrs, state, true, 0); best != nil {
		return best, nil
	}

	// 候选人中没有推进委员，只能放宽约束
	return search(candidates, attrs, state, false, fallbackBasePenalty), nil
}

// search 按候选人下标的字典序枚举所有 TeamSize 人组合，返回分数严格最小的第一个组合
func search(candidates []string, attrs domain.Attributes, state *State, requireCommittee bool, basePenalty int) *Selection {
	var best *Selection

	gen := combin.NewCombinationGenerator(len(candidates), domain.TeamSize)
	indices := make([]int, domain.TeamSize)
	team := make([]string, domain.TeamSize)

	for gen.Next() {
		gen.Combination(indices)
		for i, idx := range indices {
			team[i] = candidates[idx]
		}

		if requireCommittee && !hasCommittee(team, attrs) {
			continue
		}

		score := basePenalty + Score(team, attrs, state.Counts, state.Previous)
		if best == nil || score < best.Score {
			best = &Selection{
				Members:  slices.Clone(team),
				Score:    score,
				Fallback: !requireCommittee,
			}
		}
	}

	return best
}
