package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/linedit/internal/app"
	"github.com/zjrosen/linedit/internal/config"
	"github.com/zjrosen/linedit/internal/editor"
	"github.com/zjrosen/linedit/internal/log"
	"github.com/zjrosen/linedit/internal/pubsub"
	"github.com/zjrosen/linedit/internal/register"
	"github.com/zjrosen/linedit/internal/tracing"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in the prompt.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// localConfigPath is the project-level config file, checked before the
// user config.
const localConfigPath = ".linedit/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	logFile   string

	cfg    config.Config
	cfgErr error
)

var rootCmd = &cobra.Command{
	Use:   "linedit [file]",
	Short: "A line editor with unlimited undo",
	Long: `linedit edits a text file line by line from a command prompt.
Every insert, delete, edit, cut, paste and replace can be undone and redone.
The file is created on first write if it does not exist.`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .linedit/config.yaml, then ~/.config/linedit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also LINEDIT_DEBUG=1)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "debug.log",
		"debug log path")
}

func initConfig() {
	viper.Reset()
	config.SetDefaults(viper.GetViper())
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .linedit/config.yaml (current directory)
		// 2. ~/.config/linedit/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			viper.AddConfigPath(config.Dir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	cfgErr = nil
	if err := viper.ReadInConfig(); err != nil {
		// A missing file means defaults; anything else is reported.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			cfgErr = fmt.Errorf("reading config: %w", err)
			return
		}
	}

	cfg, cfgErr = config.Load(viper.GetViper())
}

// configPath returns the file config commands should edit.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	if cfgFile != "" {
		return cfgFile
	}
	return filepath.Join(config.Dir(), "config.yaml")
}

// startLogging enables debug logging when asked for by flag or environment.
func startLogging(prefix string) func() {
	if !debugFlag && os.Getenv("LINEDIT_DEBUG") == "" {
		return func() {}
	}
	cleanup, err := log.InitWithTeaLog(logFile, prefix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v\n", logFile, err)
		return func() {}
	}
	log.Info(log.CatConfig, "linedit starting", "version", version, "config", viper.ConfigFileUsed())
	return cleanup
}

// startTracing builds the tracer provider from config. The returned stop
// function flushes pending spans.
func startTracing() (*tracing.Provider, func(), error) {
	if !cfg.Tracing.Enabled {
		return tracing.Noop(), func() {}, nil
	}
	provider, err := tracing.NewProvider(cfg.Tracing.Provider())
	if err != nil {
		return nil, nil, fmt.Errorf("starting tracing: %w", err)
	}
	log.Info(log.CatTrace, "tracing enabled", "exporter", cfg.Tracing.Exporter)
	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "tracing shutdown", err)
		}
	}
	return provider, stop, nil
}

func sessionOptions(tracer trace.Tracer, events pubsub.Publisher[editor.Change]) editor.Options {
	var reg register.Register = &register.Memory{}
	if cfg.Clipboard.System {
		reg = register.NewSystem(nil)
	}
	return editor.Options{
		MaxLineLength: cfg.MaxLineLength,
		HistoryLimit:  cfg.HistoryLimit,
		Register:      reg,
		Tracer:        tracer,
		Events:        events,
	}
}

func runApp(_ *cobra.Command, args []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	defer startLogging("linedit")()

	provider, stopTracing, err := startTracing()
	if err != nil {
		return err
	}
	defer stopTracing()

	changes := pubsub.NewBroker[editor.Change]()
	defer changes.Close()
	opts := sessionOptions(provider.Tracer(), changes)

	var session *editor.Session
	if len(args) == 1 {
		session, err = editor.Open(args[0], opts)
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
	} else {
		session = editor.New(opts)
	}

	model := app.New(session, changes, cfg)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
