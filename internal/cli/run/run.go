package run

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/aryankumar/taskpool/internal/config"
	"github.com/aryankumar/taskpool/internal/output"
	"github.com/aryankumar/taskpool/internal/pool"
	"github.com/aryankumar/taskpool/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// options holds the run command configuration after flag parsing
type options struct {
	workers       int
	tasks         int
	minDuration   time.Duration
	maxDuration   time.Duration
	mode          string
	shutdownAfter time.Duration
	seed          int64
	debug         bool
	outputFormat  string
	noColor       bool
}

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	var (
		tasks         int
		minDuration   time.Duration
		maxDuration   time.Duration
		mode          string
		shutdownAfter time.Duration
		seed          int64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a batch of sample tasks through the worker pool",
		Long: `Run submits a batch of sample tasks to the worker pool and reports the
lifecycle of every task after shutdown.

Each task sleeps for a uniformly random duration between --min-duration
and --max-duration and returns the slept milliseconds as its result.
With --mode graceful the queue is drained before the pool stops; with
--mode immediate the pool waits --shutdown-after, then discards every
task still queued and only lets in-flight tasks finish. Discarded tasks
keep reporting "queued" in the final report.`,
		Example: `  # Run 10 tasks on 4 workers and wait for all of them
  taskpool run

  # Short tasks, verbose pool telemetry
  taskpool run -n 20 --min-duration 100ms --max-duration 300ms --debug -v

  # Reproduce the classic demo: discard the backlog after 8 seconds
  taskpool run --mode immediate --shutdown-after 8s

  # Machine-readable report
  taskpool run -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := options{
				workers:       viper.GetInt("workers"),
				tasks:         tasks,
				minDuration:   minDuration,
				maxDuration:   maxDuration,
				mode:          mode,
				shutdownAfter: shutdownAfter,
				seed:          seed,
				debug:         viper.GetBool("debug"),
				outputFormat:  viper.GetString("output"),
				noColor:       viper.GetBool("no-color"),
			}

			// Config file values back-fill whatever the user left unset.
			cfgPath := viper.GetString("config")
			mgr := config.NewManager(cfgPath)
			if cfg, err := mgr.Load(); err == nil {
				applyConfig(&opts, cmd, cfg)
			} else {
				slog.Debug("no taskpool config loaded", "error", err)
			}

			return runRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVarP(&tasks, "tasks", "n", 10, "number of tasks to submit")
	cmd.Flags().DurationVar(&minDuration, "min-duration", 5*time.Second, "minimum task duration")
	cmd.Flags().DurationVar(&maxDuration, "max-duration", 10*time.Second, "maximum task duration")
	cmd.Flags().StringVar(&mode, "mode", "graceful", "shutdown mode (graceful, immediate)")
	cmd.Flags().DurationVar(&shutdownAfter, "shutdown-after", 8*time.Second, "delay before immediate shutdown (only with --mode immediate)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for task durations (0 means time-based)")

	return cmd
}

// applyConfig fills in options from the loaded config file for any flag
// the user did not set on the command line. Flags always win.
func applyConfig(opts *options, cmd *cobra.Command, cfg *config.Config) {
	slog.Debug("loaded taskpool config", "workers", cfg.Workers, "output", cfg.Output)

	if !cmd.Flags().Changed("workers") && cfg.Workers > 0 {
		opts.workers = cfg.Workers
	}
	if !cmd.Flags().Changed("output") && cfg.Output != "" {
		opts.outputFormat = cfg.Output
	}
	if !cmd.Flags().Changed("debug") && cfg.Debug {
		opts.debug = true
	}
	if !cmd.Flags().Changed("tasks") && cfg.Run.Tasks > 0 {
		opts.tasks = cfg.Run.Tasks
	}
	if !cmd.Flags().Changed("min-duration") && cfg.Run.MinDuration > 0 {
		opts.minDuration = cfg.Run.MinDuration
	}
	if !cmd.Flags().Changed("max-duration") && cfg.Run.MaxDuration > 0 {
		opts.maxDuration = cfg.Run.MaxDuration
	}
	if !cmd.Flags().Changed("shutdown-after") && cfg.Run.ShutdownAfter > 0 {
		opts.shutdownAfter = cfg.Run.ShutdownAfter
	}
}

// validate checks the run options for consistency
func validate(opts options) error {
	if opts.workers < 1 {
		return util.NewValidationError("workers", opts.workers, "must be at least 1")
	}
	if opts.tasks < 1 {
		return util.NewValidationError("tasks", opts.tasks, "must be at least 1")
	}
	if opts.minDuration <= 0 {
		return util.NewValidationError("min-duration", opts.minDuration, "must be positive")
	}
	if opts.maxDuration < opts.minDuration {
		return util.NewValidationError("max-duration", opts.maxDuration, "must not be below min-duration")
	}
	if opts.mode != "graceful" && opts.mode != "immediate" {
		return util.NewValidationError("mode", opts.mode, "must be graceful or immediate")
	}
	return nil
}

func runRun(ctx context.Context, opts options) error {
	if err := validate(opts); err != nil {
		return err
	}

	logger := slog.Default()

	p := pool.New[uint64](pool.WithLogger(logger), pool.WithDebug(opts.debug))
	if err := p.Start(opts.workers); err != nil {
		return fmt.Errorf("failed to start pool: %w", err)
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	logger.Info("submitting tasks",
		"tasks", opts.tasks,
		"workers", opts.workers,
		"min_duration", opts.minDuration,
		"max_duration", opts.maxDuration,
		"mode", opts.mode)

	for i := 0; i < opts.tasks; i++ {
		d := opts.minDuration
		if span := int64(opts.maxDuration - opts.minDuration); span > 0 {
			d += time.Duration(rng.Int63n(span + 1))
		}

		id, err := p.Submit(func() uint64 {
			time.Sleep(d)
			return uint64(d / time.Millisecond)
		})
		if err != nil {
			return fmt.Errorf("failed to submit task: %w", err)
		}
		logger.Debug("task queued", "id", id, "duration", d)
	}

	// Watch pool progress in the background while the shutdown drains.
	watchCtx, stopWatch := context.WithCancel(context.Background())
	g, _ := errgroup.WithContext(watchCtx)
	g.Go(func() error {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-watchCtx.Done():
				return nil
			case <-ticker.C:
				s := p.Stats()
				logger.Debug("pool progress",
					"processed", s.Processed,
					"submitted", s.Submitted,
					"queued", p.QueueLen())
			}
		}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		switch opts.mode {
		case "immediate":
			logger.Info("waiting before immediate shutdown", "after", opts.shutdownAfter)
			select {
			case <-time.After(opts.shutdownAfter):
			case <-ctx.Done():
			}
			p.ShutdownNow()
		default:
			p.Shutdown()
		}
	}()

	// A shutdown signal cuts the run short: discard the backlog and let
	// in-flight tasks finish.
	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn("interrupted, discarding queued tasks")
		p.ShutdownNow()
		<-done
	}

	stopWatch()
	if err := g.Wait(); err != nil {
		return err
	}

	return report(p, opts)
}

// report renders the final per-task report and the telemetry summary
func report(p *pool.Pool[uint64], opts options) error {
	formatter := output.NewFormatter(
		output.Format(opts.outputFormat),
		output.WithNoColor(opts.noColor),
	)

	if err := formatter.FormatTasks(os.Stdout, p.Tasks()); err != nil {
		return fmt.Errorf("failed to format task report: %w", err)
	}

	s := p.Stats()
	slog.Info("run complete",
		"submitted", s.Submitted,
		"processed", s.Processed,
		"discarded", s.Discarded,
		"avg_wait", s.AvgWait.Round(time.Millisecond),
		"avg_queue_len", fmt.Sprintf("%.2f", s.AvgQueueLen))

	return nil
}
