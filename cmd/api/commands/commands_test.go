package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAlarms(t *testing.T, args ...string) string {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	cmd := NewAlarmsCommand()
	cmd.SetOut(&out)
	// A nil slice would make cobra fall back to os.Args.
	cmd.SetArgs(append([]string{}, args...))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestAlarmsCommand_All(t *testing.T) {
	out := runAlarms(t)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "07:00")
	assert.Contains(t, lines[0], "вкл")
	assert.Contains(t, lines[1], "выкл")
	assert.Contains(t, lines[2], "Колыбельная")
}

func TestAlarmsCommand_Query(t *testing.T) {
	out := runAlarms(t, "--query", "22:00")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Время спать")
}

func TestAlarmsCommand_NoMatch(t *testing.T) {
	out := runAlarms(t, "-q", "zzz")
	assert.Equal(t, "Будильники не найдены\n", out)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := NewVersionCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "alarmclock v"+Version)
}
