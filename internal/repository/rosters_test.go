package repository

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/config"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/domain"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/testutil"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db := testutil.StartPostgres(t, "../../migrations")

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 10
	cfg.Database.TransactionTimeout = 20
	return NewRepository(cfg, db)
}

func TestRosterArchive(t *testing.T) {
	repo := newTestRepository(t)

	roster := &domain.Roster{
		Name: "第一周",
		Days: []domain.DayAssignment{
			{Day: "Mon", Members: []string{"D", "C", "B", "A"}, Score: 0},
			{Day: "Tue", Members: []string{"A", "E", "F", "G"}, Score: 103, Fallback: true},
		},
		People: []domain.Person{
			{ID: "A", Gender: domain.GenderMale, Committee: true, Email: "a@example.com"},
			{ID: "B", Gender: domain.GenderFemale},
			{ID: "C", Gender: domain.GenderMale},
			{ID: "D", Gender: domain.GenderFemale},
			{ID: "E", Gender: domain.GenderMale},
			{ID: "F", Gender: domain.GenderFemale},
			{ID: "G", Gender: domain.GenderOther},
		},
	}

	require.NoError(t, repo.InsertRoster(roster))
	require.NotZero(t, roster.ID)
	assert.False(t, roster.CreatedAt.IsZero())

	got, err := repo.GetRosterByID(roster.ID)
	require.NoError(t, err)

	assert.Equal(t, roster.Name, got.Name)
	assert.Equal(t, roster.People, got.People)
	// 成员顺序与日期顺序都按 position 还原
	assert.Equal(t, roster.Days, got.Days)
	// Counts 由每天的成员重新统计
	assert.Equal(t, map[string]int{"A": 2, "B": 1, "C": 1, "D": 1, "E": 1, "F": 1, "G": 1}, got.Counts)

	all, err := repo.GetAllRosters()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, roster.ID, all[0].ID)
	assert.Equal(t, "第一周", all[0].Name)
	assert.Empty(t, all[0].Days)

	require.NoError(t, repo.DeleteRoster(roster.ID))

	_, err = repo.GetRosterByID(roster.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.ErrorIs(t, repo.DeleteRoster(roster.ID), sql.ErrNoRows)
}

func TestGetRosterByIDMissing(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetRosterByID(42)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
