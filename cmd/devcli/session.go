package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"devcli/internal/charstream"
	"devcli/internal/commands/device"
	"devcli/internal/logger"
	"devcli/internal/output"
	"devcli/internal/service"
	"devcli/internal/testutils"
	"devcli/internal/transcript"
	"devcli/internal/tree"
	"devcli/internal/version"
	"devcli/pkg/clitypes"
)

// newService wires the default device tree to stream using the loaded configuration.
func newService(stream charstream.Stream) (*service.Service, error) {
	dir, err := cfg.Users()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	var opts []device.Option
	if cfg.TestMode {
		opts = append(opts, device.WithPotmeter(func() int { return device.PotmeterMax / 2 }))
	}

	return service.New(service.Config{
		Users:       dir,
		Tree:        device.BuildTree(device.New(opts...)),
		Stream:      stream,
		HistorySize: cfg.HistorySize,
		MaxLine:     cfg.MaxLine,
		Output:      cfg.RendererOptions(),
		Welcome:     cfg.Welcome,
		SessionID:   testutils.NewSessionIDGenerator(cfg.TestMode).Next,
	})
}

func runShell(_ *cobra.Command, _ []string) {
	logger.Info("Starting devcli", "version", version.Version)

	term, err := charstream.OpenTerminal(os.Stdin, os.Stdout)
	if err != nil {
		logger.Fatal("Failed to open terminal", "error", err)
	}

	width, height := term.Size()
	logger.Debug("Terminal opened", "raw", term.IsRaw(), "width", width, "height", height)

	svc, err := newService(term)
	if err != nil {
		_ = term.Close()
		logger.Fatal("Failed to initialize service", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc.Activate()
	runErr := svc.Run(ctx, cfg.PollInterval)
	svc.Deactivate()

	if err := term.Close(); err != nil {
		logger.Error("Failed to restore terminal", "error", err)
	}
	if runErr != nil && ctx.Err() == nil {
		logger.Fatal("Session failed", "error", runErr)
	}
	logger.Info("Session ended", "exit", svc.Exited())
}

func runBatch(cmd *cobra.Command, args []string) {
	scriptPath := args[0]
	logger.Info("Starting devcli batch mode", "version", version.Version, "script", scriptPath)

	data, err := os.ReadFile(scriptPath)
	if err != nil {
		logger.Fatal("Failed to read script", "error", err)
	}
	keys, err := transcript.ParseScript(data)
	if err != nil {
		logger.Fatal("Script validation failed", "error", err)
	}

	stream := charstream.NewBuffer()
	svc, err := newService(stream)
	if err != nil {
		logger.Fatal("Failed to initialize service", "error", err)
	}

	raw := transcript.NewRunner(svc, stream).Run(keys)
	normalizer := transcript.NewNormalizer()
	actual := normalizer.Normalize(raw)

	expectPath, _ := cmd.Flags().GetString("expect")
	if expectPath == "" {
		fmt.Print(actual)
		return
	}

	expected, err := os.ReadFile(expectPath)
	if err != nil {
		logger.Fatal("Failed to read expected transcript", "error", err)
	}
	if !transcript.NewDiffer(normalizer).WriteDiff(os.Stdout, scriptPath, string(expected), actual) {
		os.Exit(1)
	}
}

func runTree(cmd *cobra.Command, _ []string) {
	levelName, _ := cmd.Flags().GetString("level")
	level, err := clitypes.ParseAccessLevel(levelName)
	if err != nil {
		logger.Fatal("Invalid access level", "error", err)
	}

	t := device.BuildTree(device.New())
	var entries []output.Entry
	t.Traverse(t.Root().ID(), func(n *tree.Node, depth int) bool {
		if !level.Allows(n.AccessLevel()) {
			return false
		}
		if depth > 0 {
			entries = append(entries, output.Entry{
				Name:        n.Name(),
				Depth:       depth - 1,
				Directory:   n.IsDirectory(),
				Description: n.Description(),
			})
		}
		return true
	})

	output.NewRenderer(os.Stdout, cfg.RendererOptions()...).Listing(entries)
}
