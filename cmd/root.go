package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/user/vidnotes/config"
	"github.com/user/vidnotes/deps"
	"github.com/user/vidnotes/logger"
)

var Version = "0.1.0"

var (
	configFile string
	cfg        *config.Config
	// logFile is the open logging.file, closed by closeLogFile.
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "vidnotes",
	Short: "Timestamped notes for YouTube videos",
	Long: `vidnotes plays YouTube videos in mpv and keeps notes per video.
Notes whose content contains a [MM:SS] or [HH:MM:SS] timecode jump the
player to that moment.

Features:
  - Open a video by URL or id and take notes in a terminal UI
  - Stamp the current playback time into a note
  - Edit, delete and clear notes
  - Export a video's notes to a text file`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return initLogging(cmd)
	},
}

// initLogging sends logs to logging.file when set. The open command owns the
// terminal, so without a file its logs are discarded.
func initLogging(cmd *cobra.Command) error {
	if err := closeLogFile(); err != nil {
		return err
	}

	var out io.Writer
	switch {
	case cfg.Logging.File != "":
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		out = f
	case cmd == openCmd:
		out = io.Discard
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Pretty, out)
	return nil
}

// closeLogFile closes the log file opened by initLogging, if any.
func closeLogFile() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	if err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vidnotes version %s\n", Version)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that the system dependencies (mpv, yt-dlp) are installed and available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Checking dependencies...")
		fmt.Println()

		missing := map[string]string{}
		for _, err := range deps.CheckAll(cfg.Player.MpvPath) {
			if depErr, ok := err.(*deps.DependencyError); ok {
				missing[depErr.Name] = depErr.InstallURL
			}
		}

		mpvName := cfg.Player.MpvPath
		for _, name := range []string{mpvName, "yt-dlp"} {
			if url, ok := missing[name]; ok {
				fmt.Printf("✗ %s: NOT FOUND\n", name)
				fmt.Printf("  Install from: %s\n", url)
			} else {
				fmt.Printf("✓ %s: OK\n", name)
			}
		}

		fmt.Println()
		if len(missing) > 0 {
			return fmt.Errorf("%d dependencies missing", len(missing))
		}
		fmt.Println("All dependencies are installed!")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./config.yaml, ~/.config/vidnotes/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(doctorCmd)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if closeErr := closeLogFile(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
