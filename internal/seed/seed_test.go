package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/config"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/sheet"
)

func TestWriteSampleData(t *testing.T) {
	dir := t.TempDir()
	err := WriteSampleData(config.RosterConfig{}, Options{Dir: dir, Days: 5, People: 12, AvailableRate: 0.7, EmailDomainName: "example.com"})
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, AvailabilityFileName))
	require.NoError(t, err)
	defer f.Close()
	availability, err := sheet.ReadAvailability(f, "")
	require.NoError(t, err)
	assert.Len(t, availability.Days, 5)
	assert.Len(t, availability.Persons, 12)

	g, err := os.Open(filepath.Join(dir, AttributesFileName))
	require.NoError(t, err)
	defer g.Close()
	people, err := sheet.ReadAttributes(g, "")
	require.NoError(t, err)
	require.Len(t, people, 12)
	for _, p := range people {
		assert.Equal(t, p.ID+"@example.com", p.Email)
	}
}

func TestWriteSampleDataRejectsTooFewPeople(t *testing.T) {
	err := WriteSampleData(config.RosterConfig{}, Options{Dir: t.TempDir(), Days: 1, People: 3})
	assert.Error(t, err)
}
