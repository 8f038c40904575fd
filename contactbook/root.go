package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rhystmorgan/contactbook/internal/book"
	"rhystmorgan/contactbook/internal/config"
	"rhystmorgan/contactbook/internal/views"
)

// cli holds what every command shares once flags are parsed.
type cli struct {
	configPath string
	dataDir    string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
	book   *book.Book
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "contactbook",
		Short: "Contact Book Manager",
		Long: `contactbook keeps a personal contact list in contacts.csv and mirrors
every change into contacts.json for backup and import.

Run without arguments to open the interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(views.NewAppModel(c.book), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("failed to run menu: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVarP(&c.dataDir, "dir", "d", "", "directory holding the contact files")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newAddCmd(c),
		newListCmd(c),
		newSearchCmd(c),
		newUpdateCmd(c),
		newDeleteCmd(c),
		newExportCmd(c),
		newImportCmd(c),
		newFaultsCmd(c),
	)

	return rootCmd
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.dataDir != "" {
		cfg.DataDir = c.dataDir
	}
	if c.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The menu owns the terminal, so it only logs when a file is configured.
	interactive := cmd == cmd.Root()
	logger, err := buildLogger(cfg, interactive)
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.logger = logger
	c.book = book.New(cfg, logger)
	return nil
}

func buildLogger(cfg *config.Config, interactive bool) (*zap.Logger, error) {
	if interactive && cfg.Logging.File == "" {
		return zap.NewNop(), nil
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.DisableStacktrace = level > zapcore.DebugLevel
	if cfg.Logging.File != "" {
		zcfg.OutputPaths = []string{cfg.Logging.File}
		zcfg.ErrorOutputPaths = []string{cfg.Logging.File}
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
