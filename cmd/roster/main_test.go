package main

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/config"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/roster"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	paths := filePaths{
		availability: writeTestFile(t, dir, "shift.csv", "name,Mon,Tue\n"+
			"A,○,○\nB,○,○\nC,○,○\nD,○,○\nE,,○\n"),
		attributes: writeTestFile(t, dir, "attribute.csv", "name,gender,committee\n"+
			"A,male,〇\nB,female,\nC,male,\nD,female,\nE,female,〇\n"),
		out: filepath.Join(dir, "schedule.csv"),
	}

	var out bytes.Buffer
	require.NoError(t, run(config.RosterConfig{}, paths, &out))

	schedule, err := os.ReadFile(paths.out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(schedule)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "day,member1,member2,member3,member4", lines[0])
	assert.Equal(t, "Mon,A,B,C,D", lines[1])

	assert.Contains(t, out.String(), "每个人的值班次数:")
	assert.Contains(t, out.String(), "推进委员人数: 2")
}

func TestRunReportsFailingDay(t *testing.T) {
	dir := t.TempDir()
	paths := filePaths{
		availability: writeTestFile(t, dir, "shift.csv", "name,Mon,Tue\nA,○,○\nB,○,\nC,○,○\nD,○,○\n"),
		attributes:   writeTestFile(t, dir, "attribute.csv", "name,gender,committee\nA,male,〇\nB,female,\nC,male,\nD,female,\n"),
		out:          filepath.Join(dir, "schedule.csv"),
	}

	err := run(config.RosterConfig{}, paths, &bytes.Buffer{})
	require.Error(t, err)

	var insufficient *roster.InsufficientCandidatesError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "Tue", insufficient.Day)

	_, statErr := os.Stat(paths.out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPromptFillsMissingPaths(t *testing.T) {
	paths := filePaths{attributes: "attribute.csv"}
	in := bufio.NewReader(strings.NewReader("\n shift.csv \nout.csv"))

	var out bytes.Buffer
	require.NoError(t, paths.prompt(in, &out))

	assert.Equal(t, "shift.csv", paths.availability)
	assert.Equal(t, "attribute.csv", paths.attributes)
	assert.Equal(t, "out.csv", paths.out)
	assert.Equal(t, 2, strings.Count(out.String(), "请输入空闲表文件路径"))
}

func TestPromptFailsOnEOF(t *testing.T) {
	paths := filePaths{}
	err := paths.prompt(bufio.NewReader(strings.NewReader("")), &bytes.Buffer{})
	assert.Error(t, err)
}
