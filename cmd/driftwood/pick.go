package main

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/gorewood/driftwood/internal/navigate"
	"github.com/gorewood/driftwood/internal/output"
	"github.com/gorewood/driftwood/internal/smartlog"
)

// newPickCmd creates the pick command.
func newPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Check out a commit chosen from the graph",
		Long: `Print the commit graph with each commit numbered, then check out
the commit whose number you enter.

Unlike prev and next this jumps anywhere in the graph in one move, so it
is the quickest way to hop between distant stacks.`,
		Args: cobra.NoArgs,
		RunE: runPick,
	}
}

// runPick executes the pick command.
func runPick(cmd *cobra.Command, args []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	if printer.IsJSON() {
		err := output.NewUserError("pick is interactive and does not support --json")
		printer.Error(err)
		return err
	}

	sess, err := openSession()
	if err != nil {
		printer.Error(err)
		return err
	}
	defer sess.close()

	graph := smartlog.BuildGraph(sess.snap)
	if len(graph.Nodes) == 0 {
		err := output.NewUserError("no commits to pick from")
		printer.Error(err)
		return err
	}

	settings := loadSettings(printer)
	lines := smartlog.Render(graph, smartlog.Options{
		ASCII:   settings.Smartlog.ASCII,
		Color:   useColor(cmd),
		Numbers: true,
	})
	for _, line := range lines {
		printer.Println(line)
	}

	in := bufio.NewReader(cmd.InOrStdin())
	selected, ok, err := navigate.PromptForRange(printer, in, 1, len(graph.Nodes))
	if err != nil {
		printer.Error(err)
		return err
	}
	if !ok {
		return output.NewUserError("selection cancelled")
	}

	node, ok := graph.ByNumber(selected)
	if !ok {
		err := output.NewSystemError("selected commit not found in graph")
		printer.Error(err)
		return err
	}
	return runCheckout(cmd, printer, node.Commit.Hash.String())
}
