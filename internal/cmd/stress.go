package cmd

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/relay/internal/config"
	"github.com/Iron-Ham/relay/internal/coordination"
	"github.com/Iron-Ham/relay/internal/logging"
	"github.com/Iron-Ham/relay/internal/mailbox"
)

const (
	stressDirectLabel    = "stress.direct"
	stressBroadcastLabel = "stress.broadcast"
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Hammer a hub with concurrent endpoints and verify delivery guarantees",
	Long: `Run many endpoints concurrently against one hub and check the results.

Every endpoint registers twice from racing goroutines, sends --messages direct
envelopes round-robin to the other endpoints, then broadcasts once. Receivers
drain their mailboxes and the run verifies that:

- racing registrations produced exactly one mailbox per name
- envelopes from one sender arrive at one receiver in send order
- every endpoint gets exactly one copy of every other endpoint's broadcast
- no endpoint receives its own broadcast

The command exits non-zero on any violation or if --timeout expires.`,
	RunE: runStressCmd,
}

func init() {
	stressCmd.Flags().Int("endpoints", 0, "number of concurrent endpoints")
	stressCmd.Flags().Int("messages", 0, "direct messages sent by each endpoint")
	stressCmd.Flags().Bool("handoff", false, "wait for each envelope to be picked up")
	stressCmd.Flags().Duration("timeout", 0, "abort the run after this long")
	for _, name := range []string{"endpoints", "messages", "handoff", "timeout"} {
		_ = viper.BindPFlag("stress."+name, stressCmd.Flags().Lookup(name))
	}
	rootCmd.AddCommand(stressCmd)
}

func runStressCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := runStress(ctx, cfg.Stress, logger)
	if report != nil {
		report.print(newPrinter(cmd.OutOrStdout()))
	}
	if err != nil {
		return err
	}
	if len(report.Violations) > 0 {
		return fmt.Errorf("stress run found %d violations", len(report.Violations))
	}
	return nil
}

// stressReport summarizes one stress run.
type stressReport struct {
	HubID      string
	Endpoints  int
	Handoff    bool
	Direct     int            // direct envelopes sent
	Broadcasts int            // broadcast sends (one per endpoint)
	Received   map[string]int // envelopes received per endpoint
	Stats      []mailbox.Stats
	Violations []string
	Elapsed    time.Duration
}

// receiverLog is what one receiver observed, checked after the run.
type receiverLog struct {
	name       string
	lastDirect map[string]int // sender -> last payload index
	broadcasts map[string]int // sender -> copies seen
	received   int
	violations []string
}

func stressName(i int) string {
	return fmt.Sprintf("ep-%03d", i)
}

// stressTarget returns the receiver of sender i's k-th direct message. It
// cycles through every other endpoint and never returns i.
func stressTarget(i, k, n int) int {
	return (i + 1 + k%(n-1)) % n
}

// runStress executes one stress run. A returned error means the run could not
// complete; delivery violations are reported in the stressReport.
func runStress(ctx context.Context, cfg config.StressConfig, logger *logging.Logger) (*stressReport, error) {
	n, m := cfg.Endpoints, cfg.Messages
	if n < 2 {
		return nil, fmt.Errorf("stress needs at least two endpoints, got %d", n)
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	hub := coordination.NewHub(coordination.WithLogger(logger))
	report := &stressReport{
		HubID:      hub.ID(),
		Endpoints:  n,
		Handoff:    cfg.Handoff,
		Direct:     n * m,
		Broadcasts: n,
		Received:   make(map[string]int, n),
	}
	logger.Info("stress run starting", "hub", hub.ID(), "endpoints", n, "messages", m, "handoff", cfg.Handoff)

	// Phase 1: every name registers twice, concurrently.
	registrations := pool.New().WithContext(ctx).WithCancelOnError()
	for i := 0; i < n; i++ {
		ep := hub.Endpoint(stressName(i))
		for range 2 {
			registrations.Go(func(context.Context) error {
				return ep.Register()
			})
		}
	}
	if err := registrations.Wait(); err != nil {
		return report, fmt.Errorf("registration failed: %w", err)
	}
	if got := len(hub.Names()); got != n {
		report.Violations = append(report.Violations,
			fmt.Sprintf("registered %d names, want %d", got, n))
	}

	// Each receiver knows how many envelopes to expect.
	expected := make([]int, n)
	for i := 0; i < n; i++ {
		for k := 0; k < m; k++ {
			expected[stressTarget(i, k, n)]++
		}
	}
	for j := range expected {
		expected[j] += n - 1
	}

	// Phase 2: senders and receivers run together.
	var mu sync.Mutex
	logs := make([]*receiverLog, 0, n)
	run := pool.New().WithContext(ctx).WithCancelOnError()
	for i := 0; i < n; i++ {
		ep := hub.Endpoint(stressName(i))
		want := expected[i]

		run.Go(func(ctx context.Context) error {
			rl, err := drain(ctx, ep, want)
			mu.Lock()
			logs = append(logs, rl)
			mu.Unlock()
			return err
		})
		run.Go(func(ctx context.Context) error {
			for k := 0; k < m; k++ {
				to := stressName(stressTarget(i, k, n))
				if err := ep.Send(ctx, stressDirectLabel, to, k, cfg.Handoff); err != nil {
					return err
				}
			}
			return ep.Broadcast(ctx, stressBroadcastLabel, ep.Name(), cfg.Handoff)
		})
	}
	runErr := run.Wait()

	sort.Slice(logs, func(a, b int) bool { return logs[a].name < logs[b].name })
	for _, rl := range logs {
		report.Received[rl.name] = rl.received
		report.Violations = append(report.Violations, rl.violations...)
	}
	report.Stats = hub.Stats()
	report.Elapsed = time.Since(start)

	if runErr != nil {
		return report, fmt.Errorf("stress run aborted: %w", runErr)
	}
	logger.Info("stress run finished", "hub", hub.ID(), "elapsed", report.Elapsed, "violations", len(report.Violations))
	return report, nil
}

// drain receives want envelopes for ep and checks ordering and broadcast
// uniqueness as they arrive.
func drain(ctx context.Context, ep *coordination.Endpoint, want int) (*receiverLog, error) {
	rl := &receiverLog{
		name:       ep.Name(),
		lastDirect: make(map[string]int),
		broadcasts: make(map[string]int),
	}
	for rl.received < want {
		env, _, err := ep.Receive(ctx, true)
		if err != nil {
			return rl, err
		}
		rl.received++

		switch env.Label {
		case stressDirectLabel:
			k, _ := env.Payload.(int)
			if last, seen := rl.lastDirect[env.Sender]; seen && k <= last {
				rl.violations = append(rl.violations, fmt.Sprintf(
					"%s: out of order from %s: %d after %d", rl.name, env.Sender, k, last))
			}
			rl.lastDirect[env.Sender] = k
		case stressBroadcastLabel:
			if env.Sender == rl.name {
				rl.violations = append(rl.violations, fmt.Sprintf("%s: received its own broadcast", rl.name))
			}
			rl.broadcasts[env.Sender]++
			if rl.broadcasts[env.Sender] > 1 {
				rl.violations = append(rl.violations, fmt.Sprintf(
					"%s: duplicate broadcast from %s (seq %d)", rl.name, env.Sender, env.Sequence))
			}
		default:
			rl.violations = append(rl.violations, fmt.Sprintf("%s: unexpected envelope %s", rl.name, env))
		}
	}

	if extra := ep.Pending(); extra > 0 {
		rl.violations = append(rl.violations, fmt.Sprintf("%s: %d envelopes left over", rl.name, extra))
	}
	return rl, nil
}

func (r *stressReport) print(p *printer) {
	mode := "fire-and-forget"
	if r.Handoff {
		mode = "hand-off"
	}
	p.heading("relay stress (%s, %s)", r.HubID, mode)
	p.line("endpoints:  %d", r.Endpoints)
	p.line("direct:     %d", r.Direct)
	p.line("broadcasts: %d", r.Broadcasts)
	p.line("elapsed:    %s", r.Elapsed.Round(time.Millisecond))

	if len(r.Stats) > 0 {
		p.heading("mailboxes")
		for _, s := range r.Stats {
			p.line("%-10s received=%-6d enqueued=%-6d withdrawn=%d",
				s.Owner, r.Received[s.Owner], s.Enqueued, s.Withdrawn)
		}
	}

	if len(r.Violations) == 0 {
		p.ok("all delivery checks passed")
		return
	}
	p.fail("%d violations", len(r.Violations))
	for _, v := range r.Violations {
		p.line("  %s", v)
	}
}
