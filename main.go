package main

import (
	"context"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/breadcrumbs-tools/bcprobe/cmd"
)

func main() {
	ancli.SetupSlog()
	ctx, cancel := context.WithCancel(context.Background())
	// Interrupt cancels the context, which ends the interactive loop with a
	// farewell instead of killing the process mid-write.
	go func() { shutdown.Monitor(cancel) }()
	code := cmd.Execute(ctx)
	cancel()
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("all checks dispatched, bye bye!\n")
	}
	os.Exit(code)
}
