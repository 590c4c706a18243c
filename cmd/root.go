package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/breadcrumbs-tools/bcprobe/internal/client"
	"github.com/breadcrumbs-tools/bcprobe/internal/probe"
	"github.com/spf13/cobra"
	"golang.org/x/net/context"
)

// errHealthCheckFailed marks the one fatal outcome of the scripted sequence:
// the server never answered the initial health check.
var errHealthCheckFailed = errors.New("initial health check failed")

type options struct {
	host    string
	port    int
	apiKey  string
	message string
	tools   bool
	verbose bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "bcprobe",
		Short: "Test client for the breadcrumbs diagnostic HTTP API",
		Long: `bcprobe exercises a breadcrumbs diagnostic server: it performs a health
check, lists the available diagnostic tools, sends canned VPN and network
probes, then drops into an interactive chat loop. With --message it sends a
single message and exits.`,
		// Failed connections are reported by the runner; cobra shouldn't
		// repeat them with a usage dump.
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, out)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.host, "host", "localhost", "server host")
	flags.IntVar(&opts.port, "port", 8181, "server port")
	flags.StringVar(&opts.apiKey, "api-key", "demo-key-123", "API key sent as bearer token")
	flags.StringVar(&opts.message, "message", "", "single message to send (skips the full sequence)")
	flags.BoolVar(&opts.tools, "tools", false, "enable tools for the single message")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose request/response logging")
	return cmd
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	if opts.verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	c := client.New(client.Config{
		BaseURL: fmt.Sprintf("http://%v:%v", opts.host, opts.port),
		APIKey:  opts.apiKey,
	})
	if opts.verbose {
		c = c.WithDebug()
	}
	runner := probe.NewRunner(c, out)

	if opts.message != "" {
		runner.RunSingle(ctx, opts.message, opts.tools)
		return nil
	}
	if code := runner.RunAll(ctx); code != 0 {
		return errHealthCheckFailed
	}
	return nil
}

// Execute runs the root command and returns the intended process exit code.
func Execute(ctx context.Context) int {
	cmd := newRootCmd(os.Stdout)
	cmd.SetArgs(os.Args[1:])
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errHealthCheckFailed) {
			// Health check failures already printed a hint; anything else
			// (bad flags, unexpected args) still needs reporting.
			ancli.PrintErr(fmt.Sprintf("%v\n", err))
		}
		return 1
	}
	return 0
}
