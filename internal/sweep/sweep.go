// Package sweep runs many independent automata in parallel, one per option
// set, and collects their final statistics.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"automata/internal/core"
)

// Job is one scenario: a sim built from Config and stepped Steps times.
type Job struct {
	ID     int
	Sim    string
	Config map[string]string
	Steps  int
}

func (j Job) String() string {
	keys := make([]string, 0, len(j.Config))
	for k := range j.Config {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + j.Config[k]
	}
	return fmt.Sprintf("%s[%s]", j.Sim, strings.Join(parts, " "))
}

// Result is the outcome of a Job. Generation may be short of Steps when the
// run was cancelled.
type Result struct {
	Job        Job
	Generation int
	Stats      core.Stats
	RLE        string
	Elapsed    time.Duration
	Err        error
}

// Run executes jobs on workers goroutines and returns the results in job
// order. workers <= 0 uses one worker per CPU.
func Run(ctx context.Context, jobs []Job, workers int) []Result {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	type indexed struct {
		i   int
		res Result
	}

	in := make(chan int)
	out := make(chan indexed)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range in {
				out <- indexed{i: i, res: runJob(ctx, jobs[i])}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	go func() {
		defer close(in)
		for i := range jobs {
			select {
			case in <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make([]Result, len(jobs))
	done := make([]bool, len(jobs))
	for r := range out {
		results[r.i] = r.res
		done[r.i] = true
	}
	for i, ok := range done {
		if !ok {
			results[i] = Result{Job: jobs[i], Err: ctx.Err()}
		}
	}
	return results
}

// runJob steps the scenario, checking for cancellation between steps.
func runJob(ctx context.Context, job Job) Result {
	start := time.Now()
	res := Result{Job: job}
	sim, err := core.New(job.Sim, job.Config)
	if err != nil {
		res.Err = err
		return res
	}
	for step := 0; step < job.Steps; step++ {
		if err := ctx.Err(); err != nil {
			res.Err = err
			break
		}
		sim.Step()
	}
	sim.RefreshStats()
	res.Generation = sim.Generation()
	res.Stats = sim.Stats()
	res.RLE = sim.RLE()
	res.Elapsed = time.Since(start)
	logrus.WithFields(logrus.Fields{"job": job.ID, "gen": res.Generation}).Debugf("sweep %s done in %s", job, res.Elapsed.Round(time.Millisecond))
	return res
}

// Grid expands the cartesian product of axes over base into jobs, in
// sorted-key order with the last key varying fastest.
func Grid(sim string, base map[string]string, axes map[string][]string, steps int) []Job {
	keys := make([]string, 0, len(axes))
	for k := range axes {
		if len(axes[k]) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var jobs []Job
	cur := make(map[string]string, len(keys))
	var walk func(depth int)
	walk = func(depth int) {
		if depth == len(keys) {
			cfg := make(map[string]string, len(base)+len(cur))
			for k, v := range base {
				cfg[k] = v
			}
			for k, v := range cur {
				cfg[k] = v
			}
			jobs = append(jobs, Job{ID: len(jobs), Sim: sim, Config: cfg, Steps: steps})
			return
		}
		k := keys[depth]
		for _, v := range axes[k] {
			cur[k] = v
			walk(depth + 1)
		}
	}
	walk(0)
	return jobs
}

// ParseAxis reads "key=v1|v2|v3" or an inclusive integer range "key=a..b".
func ParseAxis(spec string) (string, []string, error) {
	key, body, ok := strings.Cut(spec, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" || strings.TrimSpace(body) == "" {
		return "", nil, fmt.Errorf("sweep axis %q: want key=values", spec)
	}
	if lo, hi, ok := strings.Cut(body, ".."); ok {
		a, errA := strconv.Atoi(strings.TrimSpace(lo))
		b, errB := strconv.Atoi(strings.TrimSpace(hi))
		if errA != nil || errB != nil || b < a {
			return "", nil, fmt.Errorf("sweep axis %q: bad range", spec)
		}
		vals := make([]string, 0, b-a+1)
		for v := a; v <= b; v++ {
			vals = append(vals, strconv.Itoa(v))
		}
		return key, vals, nil
	}
	var vals []string
	for _, v := range strings.Split(body, "|") {
		if v = strings.TrimSpace(v); v != "" {
			vals = append(vals, v)
		}
	}
	return key, vals, nil
}
