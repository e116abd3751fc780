package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cfront/internal/driver"
)

var catCmd = &cobra.Command{
	Use:   "cat [flags] file.c...",
	Short: "Concatenate files as one normalized stream",
	Long:  `Cat streams every file through the character input layer in order and writes the result to stdout: CRLF and lone CR become newlines, spliced lines are joined, every file ends with a newline`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCat,
}

func init() {
	catCmd.Flags().String("manifest", "", "path to cfront.toml")
}

func runCat(cmd *cobra.Command, args []string) error {
	manifestFlag, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return fmt.Errorf("failed to get manifest flag: %w", err)
	}
	manifest, _, err := resolveManifest(manifestFlag)
	if err != nil {
		return err
	}

	if err := driver.Concat(os.Stdout, args, manifest.Stream.PushbackCap); err != nil {
		return fmt.Errorf("cat failed: %w", err)
	}
	return nil
}
