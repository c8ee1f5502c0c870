package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/driftwood/internal/output"
	"github.com/gorewood/driftwood/internal/smartlog"
)

// newSmartlogCmd creates the smartlog command.
func newSmartlogCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "smartlog",
		Aliases: []string{"sl"},
		Short:   "Show the commit graph",
		Long: `Show the commits you are working on: the main branch spine plus
every draft stack branching off it, with obsolete commits struck out.

Commits rewritten by amend or rebase stay visible until their
replacements land, so abandoned work is never silently hidden.`,
		Args: cobra.NoArgs,
		RunE: runSmartlog,
	}
}

// runSmartlog executes the smartlog command.
func runSmartlog(cmd *cobra.Command, args []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	sess, err := openSession()
	if err != nil {
		printer.Error(err)
		return err
	}
	defer sess.close()

	graph := smartlog.BuildGraph(sess.snap)

	if printer.IsJSON() {
		commits := make([]map[string]any, 0, len(graph.Nodes))
		for _, node := range graph.Nodes {
			commits = append(commits, map[string]any{
				"hash":     node.Commit.Hash.String(),
				"subject":  node.Commit.Subject,
				"head":     node.Head,
				"public":   node.Public,
				"obsolete": node.Obsolete,
				"branches": node.Branches,
			})
		}
		return printer.Success(map[string]any{"commits": commits})
	}

	settings := loadSettings(printer)
	lines := smartlog.Render(graph, smartlog.Options{
		ASCII: settings.Smartlog.ASCII,
		Color: useColor(cmd),
	})
	for _, line := range lines {
		printer.Println(line)
	}
	return nil
}
