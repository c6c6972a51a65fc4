package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/linedit/internal/diff"
	"github.com/zjrosen/linedit/internal/editor"
	"github.com/zjrosen/linedit/internal/script"
)

var (
	applyScript string
	applyWrite  bool
	applyDiff   bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <file>",
	Short: "Run an edit script against a file",
	Long: `Apply runs the steps of a YAML edit script against file and prints the
result. Nothing is written unless --write is given; a failing step leaves the
file untouched.

Example script:

  steps:
    - op: insert
      position: 1
      text: "# header"
    - op: replace
      find: foo
      with: bar
    - op: undo`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&applyScript, "script", "s", "", "edit script (YAML)")
	applyCmd.Flags().BoolVarP(&applyWrite, "write", "w", false, "write the result back to the file")
	applyCmd.Flags().BoolVar(&applyDiff, "diff", false, "print a unified diff instead of the result")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	if applyScript == "" {
		return fmt.Errorf("--script is required")
	}
	defer startLogging("linedit-apply")()

	provider, stopTracing, err := startTracing()
	if err != nil {
		return err
	}
	defer stopTracing()

	sc, err := script.ParseFile(applyScript)
	if err != nil {
		return err
	}

	path := args[0]
	session, err := editor.Open(path, sessionOptions(provider.Tracer(), nil))
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	before := session.Lines()

	res, err := script.Run(cmd.Context(), provider.Tracer(), session, sc)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case applyDiff:
		fmt.Fprint(out, diff.Unified(path, path, before, session.Lines(), 3))
	case !applyWrite:
		fmt.Fprint(out, strings.Join(session.Lines(), ""))
	}

	if applyWrite && session.Dirty() {
		if err := session.Save(""); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "applied %d steps to %s (%d lines", res.Applied, path, session.Len())
	if res.Replaced > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), ", %d replacements", res.Replaced)
	}
	if applyWrite {
		fmt.Fprint(cmd.ErrOrStderr(), ", written")
	}
	fmt.Fprintln(cmd.ErrOrStderr(), ")")
	return nil
}
