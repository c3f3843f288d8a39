package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/mpnum/internal/tui"
	"github.com/msto63/mpnum/pkg/precision"
)

var listProfiles bool

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Show the context of a profile",
	Long: `Show the context built from the selected profile, or list the
configured profiles with --list.`,
	Args: cobra.NoArgs,
	RunE: runContext,
}

var ieeeCmd = &cobra.Command{
	Use:   "ieee BITS",
	Short: "Show the IEEE 754 context for 32, 64 or 128 bits",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var bits int
		if _, err := fmt.Sscan(args[0], &bits); err != nil {
			return fmt.Errorf("BITS must be 32, 64 or 128, got %q", args[0])
		}
		ctx, err := precision.IEEE(bits)
		if err != nil {
			return err
		}
		printContext(cmd, fmt.Sprintf("IEEE 754 binary%d", bits), ctx)
		return nil
	},
}

func init() {
	contextCmd.Flags().BoolVarP(&listProfiles, "list", "l", false, "list profiles")
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(ieeeCmd)
}

func runContext(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if listProfiles {
		fmt.Fprintln(out, tui.TitleStyle.Render("Profiles"))
		for _, name := range cfg.ProfileNames() {
			marker := " "
			if name == cfg.General.DefaultProfile {
				marker = "*"
			}
			fmt.Fprintf(out, "  %s %s\n", marker, name)
		}
		return nil
	}

	name := profile
	if name == "" {
		name = cfg.General.DefaultProfile
	}
	ctx, err := cfg.Context(name)
	if err != nil {
		return err
	}
	printContext(cmd, "Profile "+name, ctx)
	return nil
}

func printContext(cmd *cobra.Command, title string, ctx *precision.Context) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, tui.TitleStyle.Render(title))
	fmt.Fprintln(out, tui.BoxStyle.Render(ctx.String()))
}
