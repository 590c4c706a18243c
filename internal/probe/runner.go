package probe

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/breadcrumbs-tools/bcprobe/internal/client"
	"github.com/breadcrumbs-tools/bcprobe/internal/utils"
)

// Runner drives the API client through the scripted check sequence, the
// single-shot mode and the interactive loop. The input func supplies one
// line of user input per call; it defaults to reading stdin and is swapped
// out in tests.
type Runner struct {
	client  *client.Client
	printer *Printer
	out     io.Writer
	input   func() (string, error)
}

func NewRunner(c *client.Client, out io.Writer) *Runner {
	return &Runner{
		client:  c,
		printer: NewPrinter(out),
		out:     out,
		// One reader for the whole session: piped input arrives many lines
		// per read, so the buffer has to survive across turns.
		input: utils.StdinLineReader().Read,
	}
}

// WithInput replaces the interactive input source.
func (r *Runner) WithInput(input func() (string, error)) *Runner {
	r.input = input
	return r
}

// RunAll performs the full scripted sequence: health check, tool listing,
// VPN probe, network-diagnostics probe, then the interactive loop. The
// returned value is the intended process exit code: 1 when the initial
// health check fails, 0 otherwise. Later failures are printed and the run
// continues.
func (r *Runner) RunAll(ctx context.Context) int {
	fmt.Fprintln(r.out, "Breadcrumbs API Test Client")
	fmt.Fprintln(r.out, strings.Repeat("=", 40))

	r.printer.Step(1, "Testing Health Check...")
	health := r.client.HealthCheck(ctx)
	r.printer.Response("Health Check Response", health.Map())
	if !health.OK() {
		ancli.PrintErr(fmt.Sprintf("server is not responding: %v\n", health.Failure.Message))
		fmt.Fprintf(r.out, "Make sure the breadcrumbs server is running on %v\n", r.client.Config().BaseURL)
		return 1
	}

	r.printer.Step(2, "Testing Tools List...")
	tools := r.client.ListTools(ctx)
	r.printer.Response("Available Tools", tools.Map())

	r.printer.Step(3, "Testing VPN Detection...")
	vpn := r.client.TestVPNDetection(ctx)
	r.printer.Response("VPN Detection Result", vpn.Map())

	r.printer.Step(4, "Testing Network Diagnostics...")
	network := r.client.TestNetworkDiagnostics(ctx)
	r.printer.Response("Network Diagnostics Result", network.Map())

	r.printer.Step(5, "Interactive Mode")
	fmt.Fprintln(r.out, "Enter messages to send to the diagnostic AI (type 'quit' to exit):")
	r.interactive(ctx)
	return 0
}

// RunSingle sends exactly one message and exits. Failures are printed in the
// same response block as successes; the exit code is 0 either way.
func (r *Runner) RunSingle(ctx context.Context, message string, toolsEnabled bool) int {
	cfg := r.client.Config()
	fmt.Fprintln(r.out, "Breadcrumbs API Test Client - Single Message Mode")
	fmt.Fprintf(r.out, "Server: %v\n", cfg.BaseURL)
	fmt.Fprintf(r.out, "API Key: %v\n", cfg.APIKey)
	fmt.Fprintf(r.out, "Message: %v\n", message)
	fmt.Fprintf(r.out, "Tools Enabled: %v\n", toolsEnabled)
	fmt.Fprintln(r.out, strings.Repeat("=", 60))

	res := r.client.SendMessage(ctx, message, client.WithTools(toolsEnabled))
	r.printer.Response("Response", res.Map())
	return 0
}
