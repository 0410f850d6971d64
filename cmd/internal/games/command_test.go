package games

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nelhage/connect4/c4test"
	"github.com/nelhage/connect4/logs"
)

func TestPrint(t *testing.T) {
	repo, err := logs.Open(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	defer repo.Close()
	record := "0 1 0 1 0 1 0"
	require.NoError(t, repo.InsertGame(logs.NewGame("alice", "bob", c4test.Moves(record), c4test.Position(record))))

	var out bytes.Buffer
	require.NoError(t, printGames(&out, repo, 10))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "alice")
	assert.Contains(t, lines[1], "1-0")
	assert.Contains(t, lines[1], record)

	out.Reset()
	require.NoError(t, printStandings(&out, repo))
	lines = strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"alice", "1", "1", "0", "0"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"bob", "1", "0", "1", "0"}, strings.Fields(lines[2]))
}
