package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ojt-tracker/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	app    *App
	config *config.Config

	breakSpecs []string
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(app *App, cfg *config.Config) *RootCommand {
	root := &RootCommand{
		app:    app,
		config: cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "ojt",
		Short: "A command-line OJT hour tracker",
		Long: `OJT Tracker (ojt) is a command-line application for tracking on-the-job
training hours, with offline-tolerant replication to a remote store.

EXAMPLES:
  ojt in                                        # Clock in now
  ojt break start                               # Start a break
  ojt break end                                 # End the current break
  ojt out                                       # Clock out now
  ojt add 2026-03-13 09:00 17:00 --break 12:00-13:00
                                                # Add a past day by hand
  ojt status                                    # Open session and sync state
  ojt list                                      # All recorded sessions
  ojt sync                                      # Push pending changes

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  Database Configuration:
    OJT_DB_DIR                                  Database directory (default: ~/.ojt)
    OJT_DB_FILENAME                             Database filename (default: ojt.db)

  Remote Store Configuration:
    OJT_REMOTE_URL                              Remote store base URL
    OJT_REMOTE_TOKEN                            Remote store bearer token
    OJT_REMOTE_SESSIONS_TABLE                   Sessions table name (default: work_sessions)

  Validation Configuration:
    OJT_VALIDATION_MIN_WORK_MINUTES             Minimum net work time (default: 15)
    OJT_VALIDATION_BREAK_MIN_MINUTES            Minimum break length (default: 1)
    OJT_VALIDATION_BREAK_MAX_MINUTES            Maximum break length (default: 120)

  Application Configuration:
    OJT_APP_TIMEOUT                             Application timeout (default: 60s)
    OJT_APP_VERBOSE                             Enable verbose output (default: false)

GETTING HELP:
  ojt [command] --help                          # Get help for any specific command`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.getConfigFromFlags()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// SetArgs overrides the arguments parsed by the root command. Used by tests.
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory (overrides OJT_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides OJT_DB_FILENAME)")

	flags.String("remote-url", "", "Remote store base URL (overrides OJT_REMOTE_URL)")
	flags.String("remote-token", "", "Remote store bearer token (overrides OJT_REMOTE_TOKEN)")

	flags.Int("min-work-minutes", 0, "Minimum net work time in minutes (overrides OJT_VALIDATION_MIN_WORK_MINUTES)")
	flags.Int("break-min-minutes", 0, "Minimum break length in minutes (overrides OJT_VALIDATION_BREAK_MIN_MINUTES)")
	flags.Int("break-max-minutes", 0, "Maximum break length in minutes (overrides OJT_VALIDATION_BREAK_MAX_MINUTES)")

	flags.Duration("app-timeout", 0, "Application timeout (overrides OJT_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides OJT_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	inCmd := &cobra.Command{
		Use:   "in",
		Short: "Clock in",
		Long:  "Open a new work session starting now. Fails if a session is already open.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewInCommand(r.app).Execute(ctx, args)
		},
	}

	outCmd := &cobra.Command{
		Use:   "out",
		Short: "Clock out",
		Long:  "Close the open work session now. An open break is ended at the same instant.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewOutCommand(r.app).Execute(ctx, args)
		},
	}

	breakCmd := &cobra.Command{
		Use:   "break",
		Short: "Manage breaks on the open session",
	}
	breakCmd.AddCommand(
		&cobra.Command{
			Use:   "start",
			Short: "Start a break",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := r.commandContext()
				defer cancel()
				return NewBreakCommand(r.app).Start(ctx)
			},
		},
		&cobra.Command{
			Use:   "end",
			Short: "End the current break",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := r.commandContext()
				defer cancel()
				return NewBreakCommand(r.app).End(ctx)
			},
		},
	)

	addCmd := &cobra.Command{
		Use:   "add <date> <time-in> <time-out>",
		Short: "Add a complete session by hand",
		Long: `Add a complete, validated session for a past day.

Times are HH:MM on the given date. Breaks are passed with the repeated
--break flag as HH:MM-HH:MM ranges and must lie inside the session.

Examples:
  ojt add 2026-03-13 09:00 17:00
  ojt add 2026-03-13 09:00 17:00 --break 12:00-13:00 --break 15:00-15:15`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewAddCommand(r.app).Execute(ctx, args, r.breakSpecs)
		},
	}
	addCmd.Flags().StringArrayVar(&r.breakSpecs, "break", nil, "Break range HH:MM-HH:MM, repeatable")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewListCommand(r.app).Execute(ctx, args)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the open session and sync state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewStatusCommand(r.app).Execute(ctx, args)
		},
	}

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Push pending changes to the remote store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewSyncCommand(r.app).Execute(ctx, args)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session",
		Long:  "Delete a session locally and replicate the deletion to the remote store.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewDeleteCommand(r.app).Execute(ctx, args)
		},
	}

	r.cmd.AddCommand(
		inCmd,
		outCmd,
		breakCmd,
		addCmd,
		listCmd,
		statusCmd,
		syncCmd,
		deleteCmd,
	)
}

// commandContext builds the per-command context with the configured timeout
func (r *RootCommand) commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.getAppTimeout())
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()

	if dbDir, _ := flags.GetString("db-dir"); dbDir != "" {
		r.config.Database.Dir = dbDir
	}
	if dbFilename, _ := flags.GetString("db-filename"); dbFilename != "" {
		r.config.Database.Filename = dbFilename
	}

	if remoteURL, _ := flags.GetString("remote-url"); remoteURL != "" {
		r.config.Remote.BaseURL = remoteURL
	}
	if remoteToken, _ := flags.GetString("remote-token"); remoteToken != "" {
		r.config.Remote.Token = remoteToken
	}

	if minWork, _ := flags.GetInt("min-work-minutes"); minWork > 0 {
		r.config.Validation.MinWorkMinutes = minWork
	}
	if breakMin, _ := flags.GetInt("break-min-minutes"); breakMin > 0 {
		r.config.Validation.BreakMinMinutes = breakMin
	}
	if breakMax, _ := flags.GetInt("break-max-minutes"); breakMax > 0 {
		r.config.Validation.BreakMaxMinutes = breakMax
	}

	if appTimeout, _ := flags.GetDuration("app-timeout"); appTimeout > 0 {
		r.config.Application.Timeout = appTimeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Application.Verbose = verbose
	}

	return nil
}
