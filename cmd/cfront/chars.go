package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cfront/internal/diagfmt"
	"cfront/internal/driver"
)

var charsCmd = &cobra.Command{
	Use:   "chars [flags] file.c",
	Short: "Dump the normalized character stream of a C source file",
	Long:  `Chars reads a file through the character input layer and prints every delivered character with the position a compiler would attribute to it`,
	Args:  cobra.ExactArgs(1),
	RunE:  runChars,
}

func init() {
	charsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	charsCmd.Flags().String("prelude", "", "file streamed before the main one, like cc -include")
	charsCmd.Flags().String("manifest", "", "path to cfront.toml")
}

func runChars(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	prelude, err := cmd.Flags().GetString("prelude")
	if err != nil {
		return fmt.Errorf("failed to get prelude flag: %w", err)
	}
	manifestFlag, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return fmt.Errorf("failed to get manifest flag: %w", err)
	}

	manifest, _, err := resolveManifest(manifestFlag)
	if err != nil {
		return err
	}

	result, err := driver.Dump(filePath, driver.DumpOptions{
		Prelude:     prelude,
		PushbackCap: manifest.Stream.PushbackCap,
		MaxDepth:    manifest.Include.MaxDepth,
	})
	if err != nil {
		return fmt.Errorf("stream dump failed: %w", err)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatCharsPretty(os.Stdout, result.Chars)
	case "json":
		return diagfmt.FormatCharsJSON(os.Stdout, result.Chars)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
