package roster

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/domain"
)

func weekPeople() []domain.Person {
	return []domain.Person{
		person("A", domain.GenderMale, true),
		person("B", domain.GenderFemale, false),
		person("C", domain.GenderMale, false),
		person("D", domain.GenderFemale, false),
		person("E", domain.GenderMale, false),
		person("F", domain.GenderFemale, false),
		person("G", domain.GenderMale, true),
	}
}

func TestBuildAvoidsRepeatingPreviousTeam(t *testing.T) {
	all := []string{"A", "B", "C", "D", "E", "F", "G"}
	b, err := New(&domain.RosterInput{
		Days:         []string{"Mon", "Tue"},
		Availability: map[string][]string{"Mon": all, "Tue": all},
		People:       weekPeople(),
	})
	require.NoError(t, err)

	res, err := b.Build()
	require.NoError(t, err)
	require.Len(t, res.Days, 2)

	assert.Equal(t, "Mon", res.Days[0].Day)
	assert.Equal(t, []string{"A", "B", "C", "D"}, res.Days[0].Members)
	assert.Equal(t, 0, res.Days[0].Score)

	// E F G 只有三人，至少要与前一天重复一人
	assert.Equal(t, "Tue", res.Days[1].Day)
	assert.Equal(t, []string{"A", "E", "F", "G"}, res.Days[1].Members)
	assert.Equal(t, 3, res.Days[1].Score)

	assert.Equal(t, map[string]int{"A": 2, "B": 1, "C": 1, "D": 1, "E": 1, "F": 1, "G": 1}, res.Counts)
}

func TestBuildOverloadSpreadsWork(t *testing.T) {
	// 唯一的推进委员 A 每天都必须上，但过载惩罚不会让排班失败
	days := []string{"d1", "d2", "d3"}
	b, err := New(&domain.RosterInput{
		Days: days,
		Availability: map[string][]string{
			"d1": {"A", "B", "C", "D", "E", "F"},
			"d2": {"A", "B", "C", "D", "E", "F"},
			"d3": {"A", "B", "C", "D", "E", "F"},
		},
		People: weekPeople()[:6],
	})
	require.NoError(t, err)

	res, err := b.Build()
	require.NoError(t, err)

	for _, item := range res.Days {
		assert.Contains(t, item.Members, "A")
	}
	assert.Equal(t, 3, res.Counts["A"])
	// 第三天 A 已经排了两次
	assert.GreaterOrEqual(t, res.Days[2].Score, 10)
}

func TestBuildAbortsOnInsufficientCandidates(t *testing.T) {
	b, err := New(&domain.RosterInput{
		Days: []string{"Mon", "Tue", "Wed"},
		Availability: map[string][]string{
			"Mon": {"A", "B", "C", "D"},
			"Tue": {"A", "B", "C"},
			"Wed": {"A", "B", "C", "D"},
		},
		People: weekPeople(),
	})
	require.NoError(t, err)

	res, err := b.Build()
	assert.Nil(t, res)
	require.ErrorIs(t, err, ErrInsufficientCandidates)
	assert.Contains(t, err.Error(), "第 2 天")

	var target *InsufficientCandidatesError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "Tue", target.Day)
}

func TestBuildMissingDayHasNoCandidates(t *testing.T) {
	b, err := New(&domain.RosterInput{
		Days:         []string{"Mon"},
		Availability: map[string][]string{},
		People:       weekPeople(),
	})
	require.NoError(t, err)

	_, err = b.Build()
	var target *InsufficientCandidatesError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "Mon", target.Day)
	assert.Equal(t, 0, target.Available)
}

func TestBuildAbortsOnUnknownPerson(t *testing.T) {
	b, err := New(&domain.RosterInput{
		Days:         []string{"Mon"},
		Availability: map[string][]string{"Mon": {"A", "B", "C", "D", "Z"}},
		People:       weekPeople(),
	})
	require.NoError(t, err)

	_, err = b.Build()
	var target *UnknownPersonError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "Z", target.Person)
	assert.Equal(t, "Mon", target.Day)
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New(&domain.RosterInput{
		Days:   []string{"Mon", "Mon"},
		People: weekPeople(),
	})
	assert.ErrorIs(t, err, ErrDuplicateDay)

	_, err = New(&domain.RosterInput{
		Days:   []string{"Mon"},
		People: append(weekPeople(), person("A", domain.GenderFemale, false)),
	})
	assert.ErrorIs(t, err, ErrDuplicatePerson)
}

func TestNewCopiesAvailability(t *testing.T) {
	availability := map[string][]string{"Mon": {"A", "B", "C", "D"}}
	b, err := New(&domain.RosterInput{
		Days:         []string{"Mon"},
		Availability: availability,
		People:       weekPeople(),
	})
	require.NoError(t, err)

	availability["Mon"][0] = "Z"

	res, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, res.Days[0].Members)
}

func randomInput(r *rand.Rand, numDays, numPeople int) *domain.RosterInput {
	people := make([]domain.Person, numPeople)
	for i := range people {
		gender := domain.GenderMale
		switch r.Intn(5) {
		case 0, 1:
			gender = domain.GenderFemale
		case 2:
			gender = domain.GenderOther
		}
		people[i] = person(fmt.Sprintf("p%02d", i), gender, r.Intn(5) == 0)
	}

	input := &domain.RosterInput{
		Availability: make(map[string][]string),
		People:       people,
	}
	for d := 0; d < numDays; d++ {
		day := fmt.Sprintf("day%02d", d)
		input.Days = append(input.Days, day)

		var candidates []string
		for _, p := range people {
			if r.Float64() < 0.6 {
				candidates = append(candidates, p.ID)
			}
		}
		// 保证每天至少有 TeamSize 人
		for i := 0; len(candidates) < domain.TeamSize; i++ {
			if !slices.Contains(candidates, people[i].ID) {
				candidates = append(candidates, people[i].ID)
			}
		}
		r.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		input.Availability[day] = candidates
	}

	return input
}

func TestBuildProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for round := 0; round < 20; round++ {
		input := randomInput(r, 14, 10)
		attrs := domain.NewAttributes(input.People)

		b, err := New(input)
		require.NoError(t, err)
		res, err := b.Build()
		require.NoError(t, err)
		require.Len(t, res.Days, len(input.Days))

		total := 0
		for _, cnt := range res.Counts {
			assert.Positive(t, cnt)
			total += cnt
		}
		assert.Equal(t, domain.TeamSize*len(input.Days), total)

		for i, item := range res.Days {
			assert.Equal(t, input.Days[i], item.Day)
			require.Len(t, item.Members, domain.TeamSize)

			candidates := input.Availability[item.Day]
			seen := map[string]bool{}
			for _, id := range item.Members {
				assert.Contains(t, candidates, id)
				assert.False(t, seen[id], "duplicate member %s on %s", id, item.Day)
				seen[id] = true
			}

			committeeAvailable := slices.ContainsFunc(candidates, func(id string) bool { return attrs[id].Committee })
			assert.Equal(t, !committeeAvailable, item.Fallback)
			if committeeAvailable {
				assert.True(t, hasCommittee(item.Members, attrs), "no committee member on %s", item.Day)
			}
		}

		// 相同输入必须得到相同结果
		again, err := New(input)
		require.NoError(t, err)
		res2, err := again.Build()
		require.NoError(t, err)
		assert.Equal(t, res, res2)
	}
}
