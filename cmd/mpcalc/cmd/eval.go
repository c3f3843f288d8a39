package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/mpnum/internal/tui"
)

var (
	showKind  bool
	showFlags bool
	evalSet   []string
)

var evalCmd = &cobra.Command{
	Use:   "eval EXPRESSION",
	Short: "Evaluate one expression",
	Long: `Evaluate one expression under the selected context profile.

Examples:
  mpcalc eval 1 / 3
  mpcalc eval -p quad 2 ** 0.5
  mpcalc eval --set precision=200 1 / 7
  mpcalc eval divmod -7 2
  mpcalc eval -- -7 // 2

Flags come before the expression; use -- when it starts with a minus sign.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().BoolVarP(&showKind, "kind", "k", false, "print the kind of the result")
	evalCmd.Flags().BoolVarP(&showFlags, "flags", "f", false, "print the conditions raised")
	evalCmd.Flags().StringSliceVarP(&evalSet, "set", "s", nil, "override a context field, FIELD=VALUE")
	evalCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	for _, kv := range evalSet {
		field, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("--set expects FIELD=VALUE, got %q", kv)
		}
		if _, err := s.Exec(":set " + field + " " + value); err != nil {
			return err
		}
	}

	res, err := s.Eval(strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	line := tui.ResultStyle.Render(res.String())
	if showKind {
		line += " " + tui.KindStyle.Render(res.Kind())
	}
	fmt.Fprintln(out, line)
	if showFlags {
		fmt.Fprintln(out, tui.FlagStyle.Render("flags: "+s.Context().Flags().String()))
	}
	return nil
}
