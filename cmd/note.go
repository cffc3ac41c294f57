package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/user/vidnotes/notes"
	"github.com/user/vidnotes/session"
	"github.com/user/vidnotes/tui/forms"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes without the player",
	Long:  `List, add, edit, delete, clear and export the notes stored for a video.`,
}

// videoFlag resolves the --video flag to a video id.
func videoFlag(cmd *cobra.Command) (string, error) {
	raw, _ := cmd.Flags().GetString("video")
	if raw == "" {
		return "", errors.New("--video is required")
	}
	id, err := session.ExtractVideoID(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", raw, err)
	}
	return id, nil
}

// confirm runs form unless --force was given. It reports whether to go ahead.
func confirm(cmd *cobra.Command, form func(*bool) *huh.Form) (bool, error) {
	if force, _ := cmd.Flags().GetBool("force"); force {
		return true, nil
	}
	var ok bool
	if err := form(&ok).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return ok, nil
}

// promptNote fills the missing fields of result with a note form.
func promptNote(header string, result *forms.NoteFormResult) error {
	if strings.TrimSpace(result.Title) != "" && strings.TrimSpace(result.Content) != "" {
		return nil
	}
	if err := forms.NewNoteForm(header, result).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("cancelled")
		}
		return fmt.Errorf("note form failed: %w", err)
	}
	return nil
}

func truncateText(s string, limit int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > limit {
		return string(r[:limit-1]) + "…"
	}
	return s
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the notes of a video",
	Long:  `Display the notes of a video as a table, in the order they were added.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		videoID, err := videoFlag(cmd)
		if err != nil {
			return err
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		list, err := store.List(cmd.Context(), videoID)
		if err != nil {
			return err
		}

		if len(list) == 0 {
			fmt.Printf("No notes for video %s.\n", videoID)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTime\tTitle\tContent")
		fmt.Fprintln(w, "--\t----\t-----\t-------")
		for _, n := range list {
			timeStr := "-"
			if n.HasTimestamp() {
				timeStr = n.TimestampText()
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n.ID, timeStr, truncateText(n.Title, 30), truncateText(n.Content, 50))
		}
		w.Flush()

		fmt.Printf("\n%d note(s) found.\n", len(list))
		return nil
	},
}

var noteAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a note to a video",
	Long: `Add a note to a video. A [MM:SS] or [HH:MM:SS] timecode in the content links the
note to that moment. Missing --title or --content opens a form.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		videoID, err := videoFlag(cmd)
		if err != nil {
			return err
		}

		var in forms.NoteFormResult
		in.Title, _ = cmd.Flags().GetString("title")
		in.Content, _ = cmd.Flags().GetString("content")
		if err := promptNote("New note for "+videoID, &in); err != nil {
			return err
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		note, err := store.Add(cmd.Context(), videoID, notes.Input{Title: in.Title, Content: in.Content})
		if err != nil {
			return err
		}

		if note.HasTimestamp() {
			fmt.Printf("Note added: %s at %s\n", note.ID, note.TimestampText())
		} else {
			fmt.Printf("Note added: %s\n", note.ID)
		}
		return nil
	},
}

var noteEditCmd = &cobra.Command{
	Use:   "edit <note-id>",
	Short: "Edit a note's title and content",
	Long:  `Replace a note's title and content. Flags that are not given keep their current value; with neither flag a form opens pre-filled with the note.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoID, err := videoFlag(cmd)
		if err != nil {
			return err
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		note, found, err := store.Find(cmd.Context(), videoID, args[0])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("note %s: %w", args[0], session.ErrNoteNotFound)
		}

		in := forms.NoteFormResult{Title: note.Title, Content: note.Content}
		titleSet, contentSet := cmd.Flags().Changed("title"), cmd.Flags().Changed("content")
		if titleSet {
			in.Title, _ = cmd.Flags().GetString("title")
		}
		if contentSet {
			in.Content, _ = cmd.Flags().GetString("content")
		}
		if !titleSet && !contentSet {
			if err := forms.NewNoteForm("Edit note", &in).Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Println("Cancelled.")
					return nil
				}
				return fmt.Errorf("note form failed: %w", err)
			}
		}

		if _, err := store.Update(cmd.Context(), videoID, note.ID, notes.Input{Title: in.Title, Content: in.Content}); err != nil {
			return err
		}
		fmt.Printf("Note %s updated.\n", note.ID)
		return nil
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <note-id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoID, err := videoFlag(cmd)
		if err != nil {
			return err
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		note, found, err := store.Find(cmd.Context(), videoID, args[0])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("note %s: %w", args[0], session.ErrNoteNotFound)
		}

		ok, err := confirm(cmd, func(v *bool) *huh.Form {
			return forms.NewConfirmDeleteForm(note.Title, v)
		})
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}

		if _, err := store.Delete(cmd.Context(), videoID, note.ID); err != nil {
			return err
		}
		fmt.Printf("Note %s deleted.\n", note.ID)
		return nil
	},
}

var noteClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every note of a video",
	RunE: func(cmd *cobra.Command, args []string) error {
		videoID, err := videoFlag(cmd)
		if err != nil {
			return err
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		list, err := store.List(cmd.Context(), videoID)
		if err != nil {
			return err
		}

		ok, err := confirm(cmd, func(v *bool) *huh.Form {
			return forms.NewConfirmClearForm(videoID, len(list), v)
		})
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}

		if _, err := store.ClearAll(cmd.Context(), videoID); err != nil {
			return err
		}
		fmt.Printf("Cleared %d note(s) for video %s.\n", len(list), videoID)
		return nil
	},
}

var noteExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the notes of a video to a text file",
	Long:  `Write the notes of a video to youtube-notes-<id>-<ms>.txt in the export directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		videoID, err := videoFlag(cmd)
		if err != nil {
			return err
		}
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = cfg.Export.Dir
		}
		title, _ := cmd.Flags().GetString("title")
		if title == "" {
			title = session.UnknownVideoTitle
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		list, err := store.List(cmd.Context(), videoID)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return errors.New("no notes to export")
		}

		text, err := store.ExportText(cmd.Context(), videoID, title)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
		path := filepath.Join(dir, notes.ExportFilename(videoID, time.Now()))
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}

		fmt.Printf("Exported %d note(s) to %s\n", len(list), path)
		return nil
	},
}

var noteVideosCmd = &cobra.Command{
	Use:   "videos",
	Short: "List videos that have notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		videos, err := store.Videos(cmd.Context())
		if err != nil {
			return err
		}
		if len(videos) == 0 {
			fmt.Println("No videos have notes yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Video ID\tNotes")
		fmt.Fprintln(w, "--------\t-----")
		for _, id := range videos {
			list, err := store.List(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%d\n", id, len(list))
		}
		w.Flush()
		return nil
	},
}

func init() {
	noteCmd.PersistentFlags().String("video", "", "YouTube URL or video id")

	noteAddCmd.Flags().String("title", "", "Note title")
	noteAddCmd.Flags().String("content", "", "Note content; may contain a [MM:SS] timecode")

	noteEditCmd.Flags().String("title", "", "New title")
	noteEditCmd.Flags().String("content", "", "New content")

	noteDeleteCmd.Flags().Bool("force", false, "Delete without asking")
	noteClearCmd.Flags().Bool("force", false, "Clear without asking")

	noteExportCmd.Flags().String("dir", "", "Export directory (default: export.dir)")
	noteExportCmd.Flags().String("title", "", "Video title for the export header")

	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteEditCmd)
	noteCmd.AddCommand(noteDeleteCmd)
	noteCmd.AddCommand(noteClearCmd)
	noteCmd.AddCommand(noteExportCmd)
	noteCmd.AddCommand(noteVideosCmd)

	rootCmd.AddCommand(noteCmd)
}
