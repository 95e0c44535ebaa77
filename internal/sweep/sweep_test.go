package sweep

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"automata/internal/core"
	_ "automata/internal/sims/all"
	"automata/internal/sims/life"
)

func TestGridIsCartesianProduct(t *testing.T) {
	jobs := Grid("life", map[string]string{"w": "20"}, map[string][]string{
		"rule": {"S23/B3", "S23/B36"},
		"seed": {"1", "2", "3"},
		"skip": nil,
	}, 10)
	require.Len(t, jobs, 6)
	assert.Equal(t, map[string]string{"w": "20", "rule": "S23/B3", "seed": "1"}, jobs[0].Config)
	assert.Equal(t, map[string]string{"w": "20", "rule": "S23/B3", "seed": "2"}, jobs[1].Config)
	assert.Equal(t, map[string]string{"w": "20", "rule": "S23/B36", "seed": "3"}, jobs[5].Config)
	for i, j := range jobs {
		assert.Equal(t, i, j.ID)
		assert.Equal(t, 10, j.Steps)
	}
	assert.Equal(t, "life[rule=S23/B3 seed=1 w=20]", jobs[0].String())
}

func TestParseAxis(t *testing.T) {
	k, v, err := ParseAxis("seed=3..6")
	require.NoError(t, err)
	assert.Equal(t, "seed", k)
	assert.Equal(t, []string{"3", "4", "5", "6"}, v)

	k, v, err = ParseAxis("rule = S23/B3 | S23/B36")
	require.NoError(t, err)
	assert.Equal(t, "rule", k)
	assert.Equal(t, []string{"S23/B3", "S23/B36"}, v)

	for _, bad := range []string{"seed", "=1|2", "seed=", "seed=5..2", "seed=a..b"} {
		_, _, err := ParseAxis(bad)
		assert.Errorf(t, err, "%q", bad)
	}
}

func TestRunMatchesSerialRuns(t *testing.T) {
	jobs := Grid("life", map[string]string{"start": life.GosperGliderGun}, map[string][]string{
		"rule": {"S23/B3", "S23/B36", "S34678/B3678"},
	}, 30)
	jobs = append(jobs, Grid("wator", nil, map[string][]string{"seed": {"1", "2"}}, 15)...)
	for i := range jobs {
		jobs[i].ID = i
	}

	results := Run(context.Background(), jobs, 3)
	require.Len(t, results, len(jobs))
	for i, res := range results {
		require.NoError(t, res.Err)
		assert.Equal(t, jobs[i].ID, res.Job.ID)
		assert.Equal(t, jobs[i].Steps, res.Generation)

		sim, err := core.New(jobs[i].Sim, jobs[i].Config)
		require.NoError(t, err)
		for s := 0; s < jobs[i].Steps; s++ {
			sim.Step()
		}
		sim.RefreshStats()
		assert.Equalf(t, sim.RLE(), res.RLE, "job %s", jobs[i])
		assert.Equal(t, sim.Stats(), res.Stats)
	}
}

func TestRunReportsBadJobs(t *testing.T) {
	results := Run(context.Background(), []Job{
		{ID: 0, Sim: "life", Config: map[string]string{"rule": "nonsense"}, Steps: 1},
		{ID: 1, Sim: "city", Steps: 1},
		{ID: 2, Sim: "life", Steps: 2},
	}, 0)
	assert.Error(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, 2, results[2].Generation)
}

func TestRunStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	jobs := Grid("life", nil, map[string][]string{"seed": {"1", "2", "3", "4"}}, 1000)

	results := Run(ctx, jobs, 2)
	require.Len(t, results, 4)
	for _, res := range results {
		assert.ErrorIs(t, res.Err, context.Canceled)
		assert.Less(t, res.Generation, 1000)
	}
}
