package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/vidnotes/pkg/timeutil"
)

var timecodeCmd = &cobra.Command{
	Use:   "timecode",
	Short: "Convert between seconds and timecodes",
}

var timecodeEncodeCmd = &cobra.Command{
	Use:   "encode <seconds>",
	Short: "Print seconds as MM:SS or HH:MM:SS",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid seconds: %s", args[0])
		}
		fmt.Println(timeutil.FormatTimestamp(seconds))
		return nil
	},
}

var timecodeDecodeCmd = &cobra.Command{
	Use:   "decode <timecode>",
	Short: "Print a MM:SS or HH:MM:SS timecode as seconds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds, err := timeutil.ParseTimestamp(args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		fmt.Println(seconds)
		return nil
	},
}

var timecodeExtractCmd = &cobra.Command{
	Use:   "extract <text>...",
	Short: "Print the seconds of the first bracketed timecode in text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds, ok := timeutil.ExtractFirstTimestamp(strings.Join(args, " "))
		if !ok {
			return errors.New("no timecode found")
		}
		fmt.Println(seconds)
		return nil
	},
}

func init() {
	timecodeCmd.AddCommand(timecodeEncodeCmd)
	timecodeCmd.AddCommand(timecodeDecodeCmd)
	timecodeCmd.AddCommand(timecodeExtractCmd)

	rootCmd.AddCommand(timecodeCmd)
}
