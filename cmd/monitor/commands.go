package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"competitor-monitor-api/client"
)

// errReported marks failures already printed to the user
var errReported = errors.New("failure already reported")

// app holds the global flags shared by every command
type app struct {
	server  string
	output  string
	json    bool
	timeout time.Duration

	// newClient is replaced in tests
	newClient func(server string, timeout time.Duration) (*client.Client, error)
}

func newApp() *app {
	return &app{
		newClient: func(server string, timeout time.Duration) (*client.Client, error) {
			return client.New(client.WithBaseURL(server), client.WithTimeout(timeout))
		},
	}
}

func (a *app) format() string {
	if a.json {
		return formatJSON
	}
	return a.output
}

func (a *app) client() (*client.Client, error) {
	return a.newClient(a.server, a.timeout)
}

// spin shows a spinner on stderr while work runs, only in human mode
func (a *app) spin(cmd *cobra.Command, suffix string) func() {
	if a.format() != formatHuman {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " " + suffix
	s.Start()
	return s.Stop
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "monitor",
		Short: "Competitive analysis from the command line",
		Long: `monitor sends competitor texts, images and websites to a Competitor Monitor
server and prints the structured analysis.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch a.output {
			case formatHuman, formatJSON, formatYAML:
				return nil
			}
			return fmt.Errorf("unknown output format %q (human, json, yaml)", a.output)
		},
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&a.server, "server", client.DefaultBaseURL, "Competitor Monitor server address")
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", formatHuman, "Output format (human, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&a.json, "json", false, "Print the raw JSON response (same as -o json)")
	rootCmd.PersistentFlags().DurationVar(&a.timeout, "timeout", client.DefaultTimeout, "Request timeout")

	rootCmd.AddCommand(
		newHealthCmd(a),
		newTextCmd(a),
		newImageCmd(a),
		newSiteCmd(a),
		newHistoryCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "monitor version %s\n", version)
		},
	}
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			health, err := c.Health(cmd.Context())
			if err != nil {
				printError(cmd.OutOrStdout(), client.UserMessage(err))
				return errReported
			}
			return render(cmd.OutOrStdout(), a.format(), health, func(w io.Writer) {
				printSuccess(w, fmt.Sprintf("%s %s is %s at %s", health.Service, health.Version, health.Status, c.BaseURL()))
			})
		},
	}
}

func newTextCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "text [TEXT|-]",
		Short: "Analyze competitor text",
		Long: `Analyze competitor text. Without an argument, or with "-", the text is read
from standard input.

Examples:
  monitor text "Fast delivery in one day, lowest prices guaranteed"
  cat landing.txt | monitor text -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			c, err := a.client()
			if err != nil {
				return err
			}

			stop := a.spin(cmd, "Analyzing text...")
			result := c.AnalyzeText(cmd.Context(), text)
			stop()

			return report(cmd.OutOrStdout(), a.format(), result, result.Success, result.Error, func(w io.Writer) {
				printAnalysis(w, result.Analysis)
			})
		},
	}
}

func newImageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "image PATH",
		Short: "Analyze a competitor image (JPEG, PNG, GIF or WebP)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			stop := a.spin(cmd, "Analyzing image...")
			result := c.AnalyzeImage(cmd.Context(), args[0])
			stop()

			return report(cmd.OutOrStdout(), a.format(), result, result.Success, result.Error, func(w io.Writer) {
				printImageAnalysis(w, result.Analysis)
			})
		},
	}
}

func newSiteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "site URL",
		Short: "Load a competitor site and analyze it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			stop := a.spin(cmd, "Loading and analyzing site...")
			result := c.ParseSite(cmd.Context(), args[0])
			stop()

			return report(cmd.OutOrStdout(), a.format(), result, result.Success, result.Error, func(w io.Writer) {
				printSite(w, result.Data)
			})
		},
	}
}

func newHistoryCmd(a *app) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			history, err := c.History(cmd.Context())
			if err != nil {
				printError(cmd.OutOrStdout(), client.UserMessage(err))
				return errReported
			}
			return render(cmd.OutOrStdout(), a.format(), history, func(w io.Writer) {
				printHistory(w, history)
			})
		},
	}

	historyCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the request history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			cleared, err := c.ClearHistory(cmd.Context())
			if err != nil {
				printError(cmd.OutOrStdout(), client.UserMessage(err))
				return errReported
			}
			return render(cmd.OutOrStdout(), a.format(), cleared, func(w io.Writer) {
				printSuccess(w, cleared.Message)
			})
		},
	})

	return historyCmd
}

// readText takes the text argument or, for none or "-", standard input
func readText(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read standard input: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", errors.New("no text given")
	}
	return text, nil
}

// report renders an analysis result and turns a failure into errReported
func report(w io.Writer, format string, v any, success bool, failure string, human func(io.Writer)) error {
	if format != formatHuman {
		if err := render(w, format, v, nil); err != nil {
			return err
		}
		if !success {
			return errReported
		}
		return nil
	}

	if !success {
		printError(w, failure)
		return errReported
	}
	human(w)
	return nil
}
