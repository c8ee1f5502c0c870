// Package output provides structured output handling for the driftwood CLI.
//
// This package handles both human-readable and JSON output formats, so every
// command works equally well for human users and for scripts or agents.
//
// # Printer
//
// The Printer is the primary interface for command output. It switches format
// based on the --json flag and TTY detection:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//
//	// For success output
//	printer.Success(map[string]any{"message": "Checked out " + oid})
//
//	// For error output
//	printer.Error(err)
//
//	// For raw output
//	printer.Println("Some text")
//	printer.Print("Formatted: %s\n", value)
//
// # JSON Mode
//
// When JSON mode is enabled (via --json flag), all output is structured:
//
//	// Success: {"message": "...", ...}
//	// Error: {"error": "message", "code": N}
//
// # Exit Codes
//
// The package defines standard exit codes and error types:
//
//	output.ExitSuccess     // 0: Success
//	output.ExitUserError   // 1: User error (bad args, cancelled selection)
//	output.ExitSystemError // 2: System error (git failed, database error)
//	output.ExitConflict    // 3: Conflict (hook exists, state mismatch)
//
// Use the error constructors to create properly-coded errors:
//
//	output.NewUserError("no HEAD present; cannot calculate next commit")
//	output.NewSystemError("git command failed")
//	output.NewCommandExitError(code, "checkout failed")
//
// These errors carry exit codes that are used for both JSON error output
// and the process exit code. NewCommandExitError exists so a failed
// `git checkout` surfaces its own exit code verbatim.
package output
