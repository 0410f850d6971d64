package opt

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nelhage/connect4/ai"
)

func TestParsePlayer(t *testing.T) {
	require.NoError(t, Init(""))
	cases := []struct {
		in   string
		want PlayerSpec
		str  string
	}{
		{"human", PlayerSpec{Kind: KindHuman}, "human"},
		{"rand", PlayerSpec{Kind: KindRandom}, "rand"},
		{"random:17", PlayerSpec{Kind: KindRandom, Seed: 17}, "rand:17"},
		{"minimax:3", PlayerSpec{Kind: KindMinimax, Depth: ai.Bounded(3)}, "minimax:3"},
		{"prune", PlayerSpec{Kind: KindPrune, Depth: ai.Bounded(4)}, "prune:4"},
		{"Prune:full", PlayerSpec{Kind: KindPrune, Depth: ai.Unbounded}, "prune:full"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			ps, err := ParsePlayer(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ps)
			assert.Equal(t, tc.str, ps.String())
		})
	}
	for _, bad := range []string{"", "alice", "human:1", "rand:x", "minimax:-2", "prune:deep"} {
		_, err := ParsePlayer(bad)
		assert.Error(t, err, bad)
	}
}

func TestBuild(t *testing.T) {
	ps := PlayerSpec{Kind: KindPrune, Depth: ai.Bounded(2)}
	p, err := ps.Build(0, 0, nil)
	require.NoError(t, err)
	mm, ok := p.(*ai.MinimaxAI)
	require.True(t, ok)
	assert.True(t, mm.Config().Prune)
	assert.Equal(t, ai.Bounded(2), mm.Config().Depth)

	_, err = PlayerSpec{Kind: KindRandom}.Build(5, 0, nil)
	assert.NoError(t, err)

	_, err = PlayerSpec{Kind: KindHuman}.Build(0, 0, nil)
	assert.Error(t, err)
}

func TestMinimaxFlags(t *testing.T) {
	require.NoError(t, Init(""))
	var o Minimax
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o.AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"-depth", "full", "-prune=false", "-weights", `{"Center":0}`}))
	cfg, err := o.BuildConfig()
	require.NoError(t, err)
	assert.Equal(t, ai.Unbounded, cfg.Depth)
	assert.False(t, cfg.Prune)
	assert.NotNil(t, cfg.Evaluate)

	o.Depth = "nope"
	_, err = o.BuildConfig()
	assert.Error(t, err)
}

func TestInitConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "connect4.yaml")
	require.NoError(t, os.WriteFile(path, []byte("depth: 6\nthreads: 2\nmax-conns: 8\n"), 0o644))
	require.NoError(t, Init(path))
	t.Cleanup(func() { Init("") })

	assert.Equal(t, 2, Config().GetInt("threads"))
	assert.Equal(t, 8, Config().GetInt("max-conns"))
	assert.Equal(t, 55431, Config().GetInt("port"))
	ps, err := ParsePlayer("minimax")
	require.NoError(t, err)
	assert.Equal(t, ai.Bounded(6), ps.Depth)

	assert.Error(t, Init(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestEnv(t *testing.T) {
	t.Setenv("CONNECT4_PORT", "9000")
	t.Setenv("CONNECT4_MAX_CONNS", "3")
	require.NoError(t, Init(""))
	t.Cleanup(func() { Init("") })
	assert.Equal(t, 9000, Config().GetInt("port"))
	assert.Equal(t, 3, Config().GetInt("max-conns"))
}
