package mcp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/driftwood/internal/git"
	"github.com/gorewood/driftwood/internal/navigate"
	"github.com/gorewood/driftwood/internal/output"
)

// --- Prev tool ---

// PrevInput is the input for the prev tool.
type PrevInput struct {
	Count int `json:"count,omitempty" jsonschema:"how many ancestors to go back (default 1)"`
}

func handlePrev() mcp.ToolHandlerFor[PrevInput, CheckoutResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PrevInput) (*mcp.CallToolResult, CheckoutResult, error) {
		count := input.Count
		if count <= 0 {
			count = 1
		}

		target := fmt.Sprintf("HEAD~%d", count)
		if _, err := git.RunContext(ctx, "checkout", target); err != nil {
			return nil, CheckoutResult{}, fmt.Errorf("checking out %s: %w", target, err)
		}

		result, err := describeHead()
		if err != nil {
			return nil, CheckoutResult{}, err
		}
		return nil, result, nil
	}
}

// --- Next tool ---

// NextInput is the input for the next tool.
type NextInput struct {
	Count   int    `json:"count,omitempty"   jsonschema:"how many steps to advance (default 1)"`
	Towards string `json:"towards,omitempty" jsonschema:"fork policy: newest or oldest"`
}

func handleNext() mcp.ToolHandlerFor[NextInput, CheckoutResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input NextInput) (*mcp.CallToolResult, CheckoutResult, error) {
		count := input.Count
		if count <= 0 {
			count = 1
		}
		towards, err := navigate.ParseTowards(input.Towards)
		if err != nil {
			return nil, CheckoutResult{}, err
		}

		snap, err := openSnapshot()
		if err != nil {
			return nil, CheckoutResult{}, fmt.Errorf("loading graph: %w", err)
		}
		head, ok := snap.Head()
		if !ok {
			return nil, CheckoutResult{}, errors.New("no HEAD present; cannot calculate next commit")
		}

		// Tools never prompt; the fork listing feeds the error message so
		// the caller can pick a towards value and retry.
		var listing bytes.Buffer
		walkPrinter := output.NewPrinter(&listing, false, false).WithStderr(io.Discard)
		in := bufio.NewReader(strings.NewReader(""))
		target, ok, err := navigate.Advance(walkPrinter, in, snap, head, navigate.Options{
			Steps:   count,
			Towards: towards,
		})
		if err != nil {
			return nil, CheckoutResult{}, err
		}
		if !ok {
			return nil, CheckoutResult{}, fmt.Errorf("set towards to \"newest\" or \"oldest\" to pick a child:\n%s",
				strings.TrimRight(listing.String(), "\n"))
		}

		if _, err := git.RunContext(ctx, "checkout", target.String()); err != nil {
			return nil, CheckoutResult{}, fmt.Errorf("checking out %s: %w", target.String(), err)
		}

		result, err := describeHead()
		if err != nil {
			return nil, CheckoutResult{}, err
		}
		return nil, result, nil
	}
}

// describeHead reports the commit HEAD points at after a checkout.
func describeHead() (CheckoutResult, error) {
	head, err := git.Run("rev-parse", "HEAD")
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("resolving HEAD: %w", err)
	}
	subject, err := git.Run("log", "-1", "--format=%s")
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("reading HEAD subject: %w", err)
	}
	return CheckoutResult{CheckedOut: head, Subject: subject}, nil
}
