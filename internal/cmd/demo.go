package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/relay/internal/config"
	"github.com/Iron-Ham/relay/internal/coordination"
	"github.com/Iron-Ham/relay/internal/event"
	"github.com/Iron-Ham/relay/internal/logging"
	"github.com/Iron-Ham/relay/internal/mailbox"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the register/send/broadcast/poll scenario",
	Long: `Run the canonical relay scenario on a fresh hub.

The configured endpoints (default a, b, c) register. The first endpoint sends
a "greet" envelope with payload 42 to the second, then broadcasts "ping" to
everyone else. Every receiver prints what it got, and the sender finally polls
its own mailbox, which must be empty because broadcasts skip the sender.

With --handoff every send waits until its receiver has picked it up.`,
	RunE: runDemoCmd,
}

func init() {
	demoCmd.Flags().Bool("handoff", false, "wait for each envelope to be picked up")
	_ = viper.BindPFlag("demo.handoff", demoCmd.Flags().Lookup("handoff"))
	rootCmd.AddCommand(demoCmd)
}

func runDemoCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	return runDemo(cmd.Context(), cmd.OutOrStdout(), cfg.Demo, logger)
}

// runDemo plays the scenario and writes a transcript to w.
func runDemo(ctx context.Context, w io.Writer, cfg config.DemoConfig, logger *logging.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(cfg.Endpoints) < 2 {
		return fmt.Errorf("demo needs at least two endpoints, got %d", len(cfg.Endpoints))
	}
	out := newPrinter(w)

	bus := event.NewBus()
	bus.SetLogger(logger)
	bus.Subscribe(event.TypeEndpointRegistered, func(e event.Event) {
		out.muted("registered: %s", e.(event.EndpointRegisteredEvent).Endpoint)
	})
	hub := coordination.NewHub(coordination.WithLogger(logger), coordination.WithBus(bus))

	mode := "fire-and-forget"
	if cfg.Handoff {
		mode = "hand-off"
	}
	out.heading("relay demo (%s, %s)", hub.ID(), mode)

	endpoints := make([]*coordination.Endpoint, len(cfg.Endpoints))
	for i, name := range cfg.Endpoints {
		endpoints[i] = hub.Endpoint(name)
		if err := endpoints[i].Register(); err != nil {
			return err
		}
	}
	sender, greeted := endpoints[0], endpoints[1]

	// Receivers run concurrently so hand-off sends can complete.
	rctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var mu sync.Mutex
	inbox := make(map[string][]mailbox.Envelope)
	receivers := pool.New().WithContext(rctx).WithCancelOnError()
	for _, ep := range endpoints[1:] {
		expect := 1 // the ping
		if ep == greeted {
			expect = 2
		}
		receivers.Go(func(ctx context.Context) error {
			for i := 0; i < expect; i++ {
				env, _, err := ep.Receive(ctx, true)
				if err != nil {
					return err
				}
				mu.Lock()
				inbox[ep.Name()] = append(inbox[ep.Name()], env)
				mu.Unlock()
			}
			return nil
		})
	}

	sendErr := func() error {
		if err := sender.Send(ctx, "greet", greeted.Name(), 42, cfg.Handoff); err != nil {
			return err
		}
		out.line("%s -> %s greet 42", sender.Name(), greeted.Name())
		if err := sender.Broadcast(ctx, "ping", nil, cfg.Handoff); err != nil {
			return err
		}
		out.line("%s -> * ping", sender.Name())
		return nil
	}()
	if sendErr != nil {
		cancel()
	}
	if recvErr := receivers.Wait(); sendErr == nil {
		sendErr = recvErr
	}
	if sendErr != nil {
		return sendErr
	}

	for _, ep := range endpoints[1:] {
		out.heading("%s received", ep.Name())
		fmt.Fprint(w, mailbox.Format(inbox[ep.Name()]))
	}

	env, ok, err := sender.Receive(ctx, false)
	if err != nil {
		return err
	}
	if ok {
		out.fail("%s: unexpected %s", sender.Name(), env)
		return fmt.Errorf("sender %s received its own traffic: %s", sender.Name(), env)
	}
	out.ok("%s: no message", sender.Name())
	return nil
}
