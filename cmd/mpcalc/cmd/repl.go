package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/mpnum/foundation/core/log"
	"github.com/msto63/mpnum/internal/calc"
	"github.com/msto63/mpnum/internal/tui"
	"github.com/msto63/mpnum/pkg/core/version"
)

const banner = "mpcalc %s - type :help for commands, :quit to leave"

var plainRepl bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Start an interactive session. On a terminal the session runs full
screen; with --plain, or when input or output is not a terminal, it reads
one line at a time.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().BoolVar(&plainRepl, "plain", false, "line mode instead of the full-screen session")
	rootCmd.AddCommand(replCmd)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runRepl(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if plainRepl || !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return runPlain(cmd, s)
	}
	return runTUI(s)
}

func runTUI(s *calc.Session) error {
	histPath := cfg.General.HistoryFile
	history, err := tui.LoadHistory(histPath)
	if err != nil {
		logger.Warn("History not loaded", mdwlog.Fields{"path": histPath, "error": err.Error()})
	}

	p := tea.NewProgram(tui.New(s, history), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(tui.Model); ok {
		if err := tui.SaveHistory(histPath, m.History()); err != nil {
			logger.Warn("History not saved", mdwlog.Fields{"path": histPath, "error": err.Error()})
		}
	}
	return nil
}

// runPlain is the line-mode session
func runPlain(cmd *cobra.Command, s *calc.Session) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, tui.TitleStyle.Render(fmt.Sprintf(banner, version.Mpcalc)))

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(calc.Complete)

	histPath := cfg.General.HistoryFile
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		if _, ok := <-sigc; ok {
			ln.Close()
			os.Exit(130)
		}
	}()

	for {
		line, err := ln.Prompt(tui.Prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		if calc.IsQuit(line) {
			return nil
		}

		text, err := s.Exec(line)
		if err != nil {
			printError(err)
			continue
		}
		if text == "" {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			fmt.Fprintln(out, text)
		} else {
			fmt.Fprintln(out, tui.ResultStyle.Render(text))
		}
	}
}
