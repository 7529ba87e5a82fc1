// Package main provides the CLI entry point for figrender.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/ukaji3/figrender-go/pkg/figrender"
	"github.com/ukaji3/figrender-go/pkg/figrender/config"
	"github.com/ukaji3/figrender-go/pkg/figrender/xlsx"
)

var (
	outputPath string
	rootDir    string
	backend    string
	noSave     bool
	show       bool
	view       bool
	dumpConfig bool
	verbose    bool
	pretty     bool
)

var savedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "figrender [figure.yaml]",
		Short: "Render declarative figures to PDF, SVG, PNG or XLSX",
		Long: `figrender renders a figure description (segments, markers, annotations)
to a file whose format follows the output extension. Without a figure file it
renders the built-in P^δ figure.`,
		Args: cobra.MaximumNArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file name; the extension selects the format")
	rootCmd.Flags().StringVar(&rootDir, "root", "", "Directory relative output names resolve against (e.g. a mounted drive)")
	rootCmd.Flags().StringVar(&backend, "backend", "", "Drawing backend: gonum, canvas")
	rootCmd.Flags().BoolVar(&noSave, "no-save", false, "Render without writing the output file")
	rootCmd.Flags().BoolVar(&show, "show", false, "Print a preview when the terminal is interactive")
	rootCmd.Flags().BoolVar(&view, "view", false, "Open a full-screen preview when the terminal is interactive")
	rootCmd.Flags().BoolVar(&dumpConfig, "dump-config", false, "Print the effective figure file as YAML and exit")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug records to stderr")

	inspectCmd := &cobra.Command{
		Use:   "inspect [book.xlsx]",
		Short: "List the charts of a workbook as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.AddCommand(inspectCmd)

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	file := config.Default()
	if len(args) == 1 {
		if _, err := os.Stat(args[0]); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", args[0])
		}
		loaded, err := config.Load(args[0])
		if err != nil {
			return err
		}
		file = *loaded
	}

	// Flags override the figure file
	if cmd.Flags().Changed("output") {
		file.Output.Filename = outputPath
	}
	if cmd.Flags().Changed("root") {
		file.Output.Root = rootDir
	}
	if cmd.Flags().Changed("backend") {
		file.Output.Backend = backend
	}
	if noSave {
		save := false
		file.Output.Save = &save
	}

	if dumpConfig {
		data, err := config.Marshal(file)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	opts, err := file.Options()
	if err != nil {
		return err
	}
	opts.Logger = newLogger(cmd.ErrOrStderr())
	opts.Out = cmd.OutOrStdout()
	opts.Viewer = view

	canvas, err := figrender.Render(file.Figure, file.Style)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	canvas, err = figrender.Finalize(canvas)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if err := figrender.Save(canvas, file.Output.Filename, opts); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	if opts.ShouldSave() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", savedStyle.Render("saved"), file.Output.Filename)
	}

	if show || view {
		if err := figrender.Show(canvas, opts); err != nil {
			return fmt.Errorf("show failed: %w", err)
		}
	}
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	charts, err := xlsx.Inspect(inputPath)
	if err != nil {
		return fmt.Errorf("inspection failed: %w", err)
	}

	var data []byte
	if pretty {
		data, err = json.MarshalIndent(charts, "", "  ")
	} else {
		data, err = json.Marshal(charts)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
