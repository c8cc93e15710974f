// Package agent implements the interactive AI assistant behind 'cfc assist'.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent runs the assist session: a facilitator model that answers the user by
// consulting a set of experts.
type Agent struct {
	out         io.Writer
	in          *bufio.Scanner
	Facilitator *Expert
	Experts     []*Expert
}

// New creates an Agent over an output writer, an input reader, and the
// experts the facilitator can consult.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		out:         w,
		in:          bufio.NewScanner(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
}

// Start opens the chats for the facilitator and every expert.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

// Run drives the read-ask-print loop. Any prompts given up front are consumed
// before reading from the input; "bye" or end of input ends the session.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.out, "Welcome to cfc assist. Type 'bye' to exit.")
	for {
		fmt.Fprint(a.out, "assist> ")

		var input string
		switch {
		case len(prompts) > 0:
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			fmt.Fprintln(a.out, input)
		case a.in.Scan():
			input = strings.TrimSpace(a.in.Text())
		default:
			// Scan returns false with a nil error on a clean EOF (Ctrl+D).
			return a.in.Err()
		}

		if input == "" {
			continue
		}
		if input == "bye" {
			return nil
		}

		answer, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, answer.Parts[0].Text)
	}
}
