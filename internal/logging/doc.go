// Package logging provides structured logging for relay hubs and the relay
// command line.
//
// It wraps Go's log/slog. Every Logger writes either to {dir}/relay.log or to
// stderr, in JSON (default) or logfmt-style text. Child loggers carry
// persistent attributes, so a line written from deep inside a send call
// still identifies its hub and endpoint:
//
//	logger, err := logging.New(logging.Options{Dir: dir, Level: "debug"})
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.WithHub("hub-1").WithEndpoint("worker-2").Info("endpoint registered")
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"endpoint registered","hub":"hub-1","endpoint":"worker-2"}
//
// The level is held in a slog.LevelVar shared by a logger and all of its
// children; SetLevel on any of them changes what every one of them emits.
// This is how the command line applies a reloaded configuration.
//
// All types in this package are safe for concurrent use.
package logging
