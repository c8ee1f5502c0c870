package main

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/gorewood/driftwood/internal/config"
	"github.com/gorewood/driftwood/internal/navigate"
	"github.com/gorewood/driftwood/internal/output"
)

// newNextCmd creates the next command.
func newNextCmd() *cobra.Command {
	var newest bool
	var oldest bool
	var interactive bool

	cmd := &cobra.Command{
		Use:   "next [count]",
		Short: "Check out a descendant commit",
		Long: `Check out the commit one (or more) steps forward in the graph,
skipping obsolete commits.

A commit with several live children makes the step ambiguous. Pass
--newest or --oldest to resolve forks by committed date, or --interactive
to choose from a menu. Setting next.towards in the config file supplies a
default. Running out of descendants before the count is reached is fine;
the walk stops at the last commit it found.

Examples:
  driftwood next           # Step to the only child
  driftwood next 3 -n      # Three steps, newest child at each fork
  driftwood next -i        # Choose interactively at forks`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNext(cmd, args, newest, oldest, interactive)
		},
	}

	cmd.Flags().BoolVarP(&newest, "newest", "n", false, "Advance towards the newest child at each fork")
	cmd.Flags().BoolVarP(&oldest, "oldest", "o", false, "Advance towards the oldest child at each fork")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Choose between ambiguous children interactively")

	return cmd
}

// runNext executes the next command.
func runNext(cmd *cobra.Command, args []string, newest, oldest, interactive bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	count, err := parseCount(args)
	if err != nil {
		printer.Error(err)
		return err
	}

	settings := loadSettings(printer)
	towards, err := resolveTowards(settings, newest, oldest)
	if err != nil {
		printer.Error(err)
		return err
	}

	sess, err := openSession()
	if err != nil {
		printer.Error(err)
		return err
	}
	defer sess.close()

	head, ok := sess.snap.Head()
	if !ok {
		err := output.NewUserError("No HEAD present; cannot calculate next commit")
		printer.Error(err)
		return err
	}

	// In JSON mode the walk's listings and hints move to the error stream
	// so stdout stays parseable.
	walkPrinter := printer
	if printer.IsJSON() {
		walkPrinter = output.NewPrinter(cmd.ErrOrStderr(), false, false).WithStderr(cmd.ErrOrStderr())
	}

	in := bufio.NewReader(cmd.InOrStdin())
	target, ok, err := navigate.Advance(walkPrinter, in, sess.snap, head, navigate.Options{
		Steps:       count,
		Towards:     towards,
		Interactive: interactive,
	})
	if err != nil {
		printer.Error(err)
		return err
	}
	if !ok {
		// The walk already printed why it could not proceed
		err := output.NewUserError("selection cancelled")
		if printer.IsJSON() {
			printer.Error(err)
		}
		return err
	}

	return checkoutAndRefresh(cmd, printer, target.String())
}

// resolveTowards combines the fork-preference flags with the configured
// default. The flags are mutually exclusive and win over config.
func resolveTowards(settings *config.Settings, newest, oldest bool) (navigate.Towards, error) {
	switch {
	case newest && oldest:
		return navigate.TowardsNone, output.NewUserError("--newest and --oldest cannot be combined")
	case newest:
		return navigate.TowardsNewest, nil
	case oldest:
		return navigate.TowardsOldest, nil
	}
	return navigate.ParseTowards(settings.Next.Towards)
}
