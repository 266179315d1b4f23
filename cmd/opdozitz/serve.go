package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/opdozitz/internal/game"
	"github.com/vovakirdan/opdozitz/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the level menu.
Results are stored per-server (all users share the same database).
Sessions are silent; sound only plays in local games.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.opdozitz/host_key

Examples:
  opdozitz serve                           # Listen on :23234 with auto-generated key
  opdozitz serve --ssh :2222               # Listen on port 2222
  opdozitz serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "opdozitz-ssh")
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	levels := levelSource()
	all, err := levels.LoadAll()
	if err != nil {
		return fmt.Errorf("cannot list levels: %w", err)
	}

	store := openStore(logger)
	setup := game.Setup{
		Config: cfg,
		Levels: levels,
		Logger: logger,
		// Remote players must not overwrite the server's level files.
		SaveDir: "",
	}
	if store != nil {
		setup.Recorder = store
	}
	game.Configure(setup)

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		Store:       store,
		Levels:      all,
		TickRate:    flagFPS,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Logger:      logger,
	})
	if err != nil {
		if store != nil {
			store.Close()
		}
		return fmt.Errorf("cannot create server: %w", err)
	}

	fmt.Printf("Starting opdozitz SSH server on %s\n", flagSSHAddr)
	fmt.Println("Press Ctrl+C to stop")

	err = server.ListenAndServe()
	if store != nil {
		store.Close()
	}
	return err
}
