package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vsrclient/internal/buildinfo"
	"github.com/dmitrijs2005/vsrclient/internal/client/config"
	"github.com/dmitrijs2005/vsrclient/internal/client/models"
	"github.com/dmitrijs2005/vsrclient/internal/logging"
	"github.com/spf13/cobra"
)

// appFactory builds the App once flags and config are resolved.
type appFactory func(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error)

// runner carries the App between cobra's pre-run hook and the commands.
type runner struct {
	factory appFactory
	flagged config.Config
	app     *App
	logger  *logging.ZapLogger
}

// Execute runs the vsrc command line and releases resources afterwards.
func Execute(ctx context.Context, args []string) error {
	r := &runner{factory: NewApp}
	root := r.rootCommand()
	root.SetArgs(args)
	defer r.close()
	return root.ExecuteContext(ctx)
}

func (r *runner) close() {
	if r.app != nil {
		_ = r.app.Close()
		r.app = nil
	}
	if r.logger != nil {
		_ = r.logger.Sync()
	}
}

func (r *runner) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags(), &r.flagged)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	r.logger = logger

	app, err := r.factory(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	app.setOutput(cmd.OutOrStdout())
	app.reader = bufioReader(cmd.InOrStdin())
	r.app = app

	switch cmd.Name() {
	case "register", "login", "logout", "status":
	default:
		app.refreshIdentity(cmd.Context())
	}
	return nil
}

// run adapts an App method to cobra's RunE.
func (r *runner) run(fn func(a *App, ctx context.Context) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		hadSession := r.app.isLoggedIn()
		if err := fn(r.app, cmd.Context()); err != nil {
			return errors.New(describeError(err, hadSession))
		}
		return nil
	}
}

func (r *runner) rootCommand() *cobra.Command {
	r.flagged.LoadDefaults()

	root := &cobra.Command{
		Use:   "vsrc",
		Short: "Terminal client for a very simple REST backend",
		Long: `vsrc talks to a REST backend that serves posts, comments and users.

Run without a subcommand to start the interactive shell. The session token
is kept in a local SQLite file so that later runs stay logged in.`,
		SilenceUsage:      true,
		PersistentPreRunE: r.setup,
		RunE:              r.run(func(a *App, ctx context.Context) error { return a.Repl(ctx) }),
	}
	config.BindFlags(root.PersistentFlags(), &r.flagged)

	root.AddCommand(
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Args:  cobra.NoArgs,
			// no config, database or network needed
			PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
			Run: func(cmd *cobra.Command, _ []string) {
				buildinfo.PrintBuildData(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "repl",
			Short: "Start the interactive shell",
			Args:  cobra.NoArgs,
			RunE:  r.run(func(a *App, ctx context.Context) error { return a.Repl(ctx) }),
		},
		&cobra.Command{
			Use:   "register",
			Short: "Create an account (does not log in)",
			Args:  cobra.NoArgs,
			RunE:  r.run((*App).Register),
		},
		&cobra.Command{
			Use:   "login",
			Short: "Log in and remember the session",
			Args:  cobra.NoArgs,
			RunE:  r.run((*App).Login),
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Forget the saved session",
			Args:  cobra.NoArgs,
			RunE:  r.run((*App).Logout),
		},
		&cobra.Command{
			Use:   "me",
			Short: "Show the identity of the current session",
			Args:  cobra.NoArgs,
			RunE:  r.run((*App).Me),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the local session state",
			Args:  cobra.NoArgs,
			RunE:  r.run((*App).Status),
		},
		r.resourceCommand(models.ResourcePost, "Read and manage posts"),
		r.resourceCommand(models.ResourceComment, "Read and manage comments"),
		r.resourceCommand(models.ResourceUser, "Manage users (admin only)"),
	)
	return root
}

func (r *runner) resourceCommand(res models.Resource, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     string(res),
		Aliases: []string{res.Plural()},
		Short:   short,
	}

	var opts listOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List " + res.Plural() + " one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			opts.collect(c.Flags())
			return r.run(func(a *App, ctx context.Context) error { return a.List(ctx, res, opts) })(c, args)
		},
	}
	bindListFlags(list.Flags(), &opts)

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one " + string(res),
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return r.run(func(a *App, ctx context.Context) error {
				id, err := parseID(args)
				if err != nil {
					return err
				}
				return a.Show(ctx, res, id)
			})(c, args)
		},
	}

	createUse := "create"
	if res == models.ResourceComment {
		createUse = "create [post-id]"
	}
	create := &cobra.Command{
		Use:   createUse,
		Short: "Create a " + string(res),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return r.run(func(a *App, ctx context.Context) error { return a.Create(ctx, res, args) })(c, args)
		},
	}

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a " + string(res),
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return r.run(func(a *App, ctx context.Context) error {
				id, err := parseID(args)
				if err != nil {
					return err
				}
				return a.Edit(ctx, res, id)
			})(c, args)
		},
	}

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + string(res),
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return r.run(func(a *App, ctx context.Context) error {
				id, err := parseID(args)
				if err != nil {
					return err
				}
				return a.Delete(ctx, res, id, yes)
			})(c, args)
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(list, get, create, edit, del)

	switch res {
	case models.ResourcePost:
		var copts listOptions
		comments := &cobra.Command{
			Use:   "comments <post-id>",
			Short: "List the comments of a post",
			Args:  cobra.ExactArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				copts.collect(c.Flags())
				return r.run(func(a *App, ctx context.Context) error {
					id, err := parseID(args)
					if err != nil {
						return err
					}
					return a.Comments(ctx, id, copts)
				})(c, args)
			},
		}
		bindListFlags(comments.Flags(), &copts)
		cmd.AddCommand(comments)

	case models.ResourceUser:
		cmd.AddCommand(&cobra.Command{
			Use:   "promote <id>",
			Short: "Give a user the admin role",
			Args:  cobra.ExactArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				return r.run(func(a *App, ctx context.Context) error {
					id, err := parseID(args)
					if err != nil {
						return err
					}
					return a.Promote(ctx, id)
				})(c, args)
			},
		})
	}
	return cmd
}
