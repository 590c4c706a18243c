package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/breadcrumbs-tools/bcprobe/internal/client"
	"github.com/breadcrumbs-tools/bcprobe/internal/utils"
)

// interactive reads lines until a quit keyword or interrupt, threading the
// conversation id from each response into the next turn. A failed turn is
// printed and the session continues.
func (r *Runner) interactive(ctx context.Context) {
	conversationID := ""
	for {
		if ctx.Err() != nil {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		fmt.Fprintf(r.out, "\n%v ", ancli.ColoredMessage(ancli.CYAN, ">"))
		msg, err := r.input()
		if err != nil {
			if errors.Is(err, utils.ErrUserInitiatedExit) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			ancli.PrintErr(fmt.Sprintf("failed to read user input: %v\n", err))
			return
		}
		if msg == "" {
			continue
		}

		var opts []client.MessageOption
		if conversationID != "" {
			opts = append(opts, client.WithConversationID(conversationID))
		}
		res := r.client.SendMessage(ctx, msg, opts...)
		if !res.OK() {
			ancli.PrintErr(fmt.Sprintf("%v\n", res.Failure.Message))
			continue
		}

		response, _ := res.Body["response"].(string)
		if response == "" {
			response = "No response"
		}
		fmt.Fprintf(r.out, "\nAI Response: %v\n", response)
		if used := toolsUsed(res.Body); len(used) > 0 {
			fmt.Fprintf(r.out, "Tools used: %v\n", strings.Join(used, ", "))
		}
		// The server owns conversation state: adopt whatever id it returned,
		// dropping the old one when the response carries none.
		conversationID, _ = res.Body["conversation_id"].(string)
	}
}

func toolsUsed(body map[string]any) []string {
	raw, ok := body["tools_used"].([]any)
	if !ok {
		return nil
	}
	used := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			used = append(used, s)
		}
	}
	return used
}
