package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/tailored-agentic-units/apoteker/chat"
	"github.com/tailored-agentic-units/apoteker/gateway"
	"github.com/tailored-agentic-units/apoteker/observability"
	"github.com/tailored-agentic-units/apoteker/ui"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to config file, JSON or YAML (optional)")
		prompt     = flag.String("prompt", "", "Ask a single question and print the answer instead of starting the chat screen")
		model      = flag.String("model", "", "Gemini model identifier (overrides config)")
		logFile    = flag.String("log", "", "Write logs to this file while the chat screen is running")
		eventsFile = flag.String("events", "", "Append chat and gateway events as JSON lines to this file")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	cfg := chat.DefaultConfig()
	if *configFile != "" {
		loaded, err := chat.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}
	if *model != "" {
		cfg.Gateway.Model = *model
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	interactive := *prompt == ""
	logger, closeLog, err := newLogger(interactive, *logFile, level)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()

	events, closeEvents, err := newEventSink(*eventsFile)
	if err != nil {
		log.Fatalf("Failed to open events file: %v", err)
	}
	defer closeEvents()

	slog.SetDefault(logger)
	observability.RegisterObserver(observability.NameSlog,
		observability.Combine(observability.NewSlogObserver(logger), events))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	apiKey, err := gateway.LookupAPIKey(&cfg.Gateway)
	if err != nil {
		fatal(logger, "missing credentials", err)
	}

	obs, err := observability.GetObserver(cfg.Observer)
	if err != nil {
		fatal(logger, "invalid observer", err)
	}

	gw, err := gateway.NewGemini(ctx, &cfg.Gateway, apiKey, gateway.WithObserver(obs))
	if err != nil {
		fatal(logger, "failed to create gateway", err)
	}

	assistant, err := chat.New(&cfg, gw)
	if err != nil {
		fatal(logger, "failed to create assistant", err)
	}

	logger.Info("session started",
		"session_id", assistant.SessionID(),
		"model", gw.Model(),
		"interactive", interactive)

	if !interactive {
		os.Exit(askOnce(ctx, assistant, *prompt))
	}

	if err := ui.Run(ctx, assistant); err != nil {
		log.Fatalf("Chat screen failed: %v", err)
	}
}

// askOnce sends a single question, prints the answer, and returns the exit
// status: 1 for rejected input, 2 when the model call failed.
func askOnce(ctx context.Context, a *chat.Assistant, prompt string) int {
	result, err := a.Ask(ctx, prompt)
	if err != nil {
		fmt.Fprintln(os.Stderr, chat.UserMessage(err))
		if chat.IsInferenceError(err) {
			return 2
		}
		return 1
	}
	fmt.Println(result.Reply)
	return 0
}

// newLogger writes to stderr in one-shot mode. The chat screen owns the
// terminal, so interactive logs go to logFile or are dropped.
func newLogger(interactive bool, logFile string, level slog.Level) (*slog.Logger, func(), error) {
	opts := &slog.HandlerOptions{Level: level}

	if !interactive {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}, nil
	}
	if logFile == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(f, opts)), func() { f.Close() }, nil
}

// newEventSink opens path for JSON event records. An empty path yields a nil
// observer, which Combine skips.
func newEventSink(path string) (observability.Observer, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return observability.NewSlogObserver(logger), func() { f.Close() }, nil
}

// fatal reports an initialization failure on stderr, even in interactive
// mode, and exits before any input is accepted.
func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
