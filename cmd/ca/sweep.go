package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"automata/internal/sweep"
)

var (
	axes         []string // key=v1|v2 or key=a..b
	sweepSteps   int      // Generations per scenario
	sweepWorkers int      // Worker goroutines
	rankBy       string   // Stat used to rank results
	top          int      // Number of ranked results to print
)

// sweepCmd runs the cartesian product of option axes in parallel
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run many option combinations in parallel and rank them by a statistic",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, base, err := baseOptions()
		if err != nil {
			return err
		}
		grid := map[string][]string{}
		for _, spec := range axes {
			k, vals, err := sweep.ParseAxis(spec)
			if err != nil {
				return err
			}
			grid[k] = vals
		}
		jobs := sweep.Grid(name, base, grid, sweepSteps)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Sweeping %d scenarios (%d workers, %d steps)\n", len(jobs), sweepWorkers, sweepSteps)
		start := time.Now()
		results := sweep.Run(ctx, jobs, sweepWorkers)

		var ok []sweep.Result
		for _, res := range results {
			if res.Err != nil {
				logrus.WithError(res.Err).Warnf("scenario %s failed", res.Job)
				continue
			}
			fmt.Fprintf(out, "%s gen=%d %s\n", res.Job, res.Generation, formatStats(res.Stats))
			ok = append(ok, res)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if rankBy != "" && top > 0 {
			sort.SliceStable(ok, func(i, j int) bool {
				a, _ := numericStat(ok[i].Stats, rankBy)
				b, _ := numericStat(ok[j].Stats, rankBy)
				return a > b
			})
			fmt.Fprintf(out, "\nTop %d by %s (elapsed %s):\n", top, rankBy, time.Since(start).Round(time.Millisecond))
			for i := 0; i < len(ok) && i < top; i++ {
				v, _ := numericStat(ok[i].Stats, rankBy)
				fmt.Fprintf(out, "%2d) %s=%d %s\n", i+1, rankBy, v, ok[i].Job)
			}
		}
		return nil
	},
}

func init() {
	sweepCmd.Flags().StringArrayVar(&axes, "axis", nil, "Option axis: key=v1|v2|v3 or key=a..b (repeatable)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 200, "Generations per scenario")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", runtime.NumCPU(), "Number of worker goroutines")
	sweepCmd.Flags().StringVar(&rankBy, "by", "Alive", "Statistic used to rank scenarios")
	sweepCmd.Flags().IntVar(&top, "top", 5, "Ranked scenarios to print (0 disables ranking)")

	rootCmd.AddCommand(sweepCmd)
}
