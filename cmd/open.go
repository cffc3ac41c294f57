package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/vidnotes/logger"
	"github.com/user/vidnotes/mpv"
	"github.com/user/vidnotes/player"
	"github.com/user/vidnotes/session"
	"github.com/user/vidnotes/tui"
)

var openCmd = &cobra.Command{
	Use:   "open [video-url-or-id]",
	Short: "Open the note-taking interface",
	Long: `Start the terminal interface. When a YouTube URL or video id is given it is
loaded in mpv right away; otherwise press o inside the interface to open one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var initial string
		if len(args) == 1 {
			initial = args[0]
			if _, err := session.ExtractVideoID(initial); err != nil {
				return fmt.Errorf("%s: %w", initial, err)
			}
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		vars := player.DefaultVars()
		vars.Controls = cfg.Player.Controls
		adapter := player.NewAdapter(
			mpv.NewPlatform(cfg.Player.MpvPath, cfg.Player.ConnectTimeout),
			cfg.Player.SocketPath,
			player.WithVars(vars),
		)
		defer func() {
			if err := adapter.Close(); err != nil {
				logger.Log.Warn().Err(err).Msg("close player")
			}
		}()

		sess := session.New(adapter, store)
		return tui.Run(cmd.Context(), sess, adapter, tui.Options{
			ExportDir:    cfg.Export.Dir,
			LoadTimeout:  cfg.Player.LoadTimeout,
			InitialVideo: initial,
		})
	},
}
