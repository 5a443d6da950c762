// Package main provides the CLI entrypoint for wpmtest.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/wpmtest/internal/config"
	"github.com/verte-zerg/wpmtest/internal/corpus"
	"github.com/verte-zerg/wpmtest/internal/history"
	"github.com/verte-zerg/wpmtest/internal/model"
	"github.com/verte-zerg/wpmtest/internal/session"
	"github.com/verte-zerg/wpmtest/internal/stats"
	"github.com/verte-zerg/wpmtest/internal/store"
	"github.com/verte-zerg/wpmtest/internal/tui"
)

const (
	defaultMode        = "sentence"
	defaultDifficulty  = "medium"
	defaultTimeLimit   = 60
	defaultCurveWindow = 5
	defaultTermWidth   = 80
)

var (
	practiceMode       string
	practiceDifficulty string
	practiceTime       int
	practicePassages   string
	practiceWords      string

	statsMode        string
	statsLast        int
	statsCurveWindow int
	statsClear       bool

	debug bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wpmtest",
		Short:         "Timed typing speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogging(os.Stderr)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVar(&practiceMode, "mode", defaultMode, "text mode (sentence or words)")
	rootCmd.Flags().StringVar(&practiceDifficulty, "difficulty", defaultDifficulty, "words difficulty (easy, medium or hard)")
	rootCmd.Flags().IntVar(&practiceTime, "time", defaultTimeLimit, "time limit in seconds")
	rootCmd.Flags().StringVar(&practicePassages, "passages", "", "file with one passage per line")
	rootCmd.Flags().StringVar(&practiceWords, "words", "", "file with one word per line")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func setupLogging(out io.Writer) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, NoColor: true})
}

// logToFile redirects logging away from the terminal while the TUI owns it.
func logToFile(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	setupLogging(f)
	return func() {
		setupLogging(os.Stderr)
		_ = f.Close()
	}, nil
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Practice.Mode)
	applyStringConfig(cmd, "difficulty", &practiceDifficulty, fileCfg.Practice.Difficulty)
	applyIntConfig(cmd, "time", &practiceTime, fileCfg.Practice.TimeLimit)
	applyStringConfig(cmd, "passages", &practicePassages, fileCfg.Practice.Passages)
	applyStringConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)

	cfg, err := buildConfig(practiceMode, practiceDifficulty, practiceTime, practicePassages, practiceWords)
	if err != nil {
		return err
	}

	texts, err := corpus.Load(cfg.PassagesPath, cfg.WordListPath)
	if err != nil {
		return err
	}

	kv, closeStore := openHistoryStore(config.DefaultDBPath())
	defer closeStore()

	restore, err := logToFile(config.DefaultLogPath())
	if err != nil {
		log.Warn().Err(err).Msg("Logging to stderr")
	} else {
		defer restore()
	}

	ctx := context.Background()
	book := history.Open(ctx, kv)
	ctrl := session.New(cfg, texts, session.WithRecorder(book))
	program := tea.NewProgram(tui.NewModel(ctrl, book), tea.WithAltScreen())

	if watched := customCorpusPaths(cfg); len(watched) > 0 {
		watcher, err := corpus.Watch(watched, func() {
			reloaded, err := corpus.Load(cfg.PassagesPath, cfg.WordListPath)
			if err != nil {
				log.Warn().Err(err).Msg("Keeping previous corpus")
				return
			}
			log.Info().Int("passages", len(reloaded.Passages)).Int("words", len(reloaded.Words)).Msg("Corpus reloaded")
			program.Send(tui.CorpusMsg{Corpus: reloaded})
		})
		if err != nil {
			log.Warn().Err(err).Msg("Corpus files will not be reloaded")
		} else {
			defer func() { _ = watcher.Close() }()
		}
	}

	log.Debug().Str("mode", cfg.Mode.String()).Str("difficulty", cfg.Difficulty.String()).Int("time", cfg.TimeLimit).Msg("Starting practice")
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// openHistoryStore opens the results database. When it cannot be opened the
// session still runs, keeping results in memory only.
func openHistoryStore(path string) (history.KV, func()) {
	st, err := store.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to open db, results will not be saved")
		return store.NewMemory(), func() {}
	}
	return st, func() {
		if cerr := st.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("Failed to close db")
		}
	}
}

func customCorpusPaths(cfg model.Config) []string {
	var paths []string
	for _, p := range []string{cfg.PassagesPath, cfg.WordListPath} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func buildConfig(mode, difficulty string, timeLimit int, passages, words string) (model.Config, error) {
	m, err := model.ParseMode(mode)
	if err != nil {
		return model.Config{}, fmt.Errorf("--mode: %w", err)
	}
	d, err := model.ParseDifficulty(difficulty)
	if err != nil {
		return model.Config{}, fmt.Errorf("--difficulty: %w", err)
	}
	if timeLimit <= 0 {
		return model.Config{}, fmt.Errorf("--time must be > 0")
	}
	return model.Config{
		Mode:         m,
		Difficulty:   d,
		TimeLimit:    timeLimit,
		PassagesPath: expandHome(passages),
		WordListPath: expandHome(words),
	}, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		log.Info().Str("path", path).Msg("Created config")
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show test history and personal best",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsMode, "mode", "", "mode filter (sentence or words)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N tests")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsClear, "clear", false, "delete all history and the personal best")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "curve-window", &statsCurveWindow, fileCfg.Stats.CurveWindow)

	cfg, err := buildStatsConfig(statsMode, statsLast, statsCurveWindow)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("Failed to close db")
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	book := history.Open(ctx, st)
	if statsClear {
		if err := book.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		log.Info().Msg("History cleared")
		return nil
	}
	return printStats(cmd.OutOrStdout(), book, cfg, terminalWidth())
}

func printStats(w io.Writer, book *history.Book, cfg model.StatsConfig, width int) error {
	results := stats.FilterResults(book.Results(), cfg)
	if err := stats.RenderSummary(w, results, book.Best()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderCurve(w, results, cfg.CurveWindow, width); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderHistoryTable(w, results); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func buildStatsConfig(mode string, last, window int) (model.StatsConfig, error) {
	if last < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if window <= 0 {
		return model.StatsConfig{}, fmt.Errorf("--curve-window must be > 0")
	}
	cfg := model.StatsConfig{Last: last, CurveWindow: window}
	if mode != "" {
		m, err := model.ParseMode(mode)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("--mode: %w", err)
		}
		cfg.Mode = &m
	}
	return cfg, nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultTermWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wpmtest configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# mode = %q         # sentence or words
# difficulty = %q     # easy, medium or hard (words mode)
# time = %d               # Time limit in seconds
# passages = "~/passages.txt"  # One passage per line, replaces the built-in set
# words = "~/words.txt"        # One word per line, replaces the built-in list

[stats]
# curve-window = %d        # Moving average window for the WPM trend
`,
		defaultMode,
		defaultDifficulty,
		defaultTimeLimit,
		defaultCurveWindow,
	)
}
