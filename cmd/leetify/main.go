// Command leetify queries the Leetify CS stats API, archives player snapshots
// in SQLite and serves both over a JSON gateway.
//
// Usage:
//
//	leetify profile 76561198283431555
//	leetify matches 76561198283431555
//	leetify match 7c3d1f52-8a4e-4b0f-9d2a-1e6f3b8c9a01
//	leetify match --source faceit 1-2b6c9d4e-0f1a-4c3b-8e7d-5a6b7c8d9e0f
//	leetify validate
//	leetify sync 76561198283431555
//	leetify history 76561198283431555 --limit 10
//	leetify serve
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"leetify-go/internal/constants"
	fxmodules "leetify-go/internal/fx"
	"leetify-go/internal/service"
	"leetify-go/leetify"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "leetify",
		Short:        "Leetify CS stats client",
		Version:      leetify.Version,
		SilenceUsage: true,
	}

	root.AddCommand(profileCmd())
	root.AddCommand(matchesCmd())
	root.AddCommand(matchCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(syncCmd())
	root.AddCommand(historyCmd())
	root.AddCommand(serveCmd())
	return root
}

// withApp builds the fx graph for a one-shot command and fills targets.
// Constructors run only for what targets need, so commands that never touch
// the store never open it.
func withApp(ctx context.Context, fn func() error, targets ...any) error {
	return runApp(ctx, fn, fx.Populate(targets...))
}

// runApp starts the graph, runs fn and stops the graph. A failed shutdown
// (e.g. closing the store) is returned when fn succeeded.
func runApp(ctx context.Context, fn func() error, opts ...fx.Option) (err error) {
	app := fx.New(
		fxmodules.Module,
		fx.NopLogger,
		fx.Options(opts...),
	)
	if err := app.Err(); err != nil {
		return err
	}
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		if stopErr := app.Stop(stopCtx); stopErr != nil && err == nil {
			err = fmt.Errorf("failed to shut down: %w", stopErr)
		}
	}()

	return fn()
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <steam64-or-leetify-id>",
		Short: "Fetch a player's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := leetify.ParsePlayerID(args[0])
			if err != nil {
				return err
			}
			var client *leetify.Client
			return withApp(cmd.Context(), func() error {
				profile, err := client.GetProfile(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), profile)
			}, &client)
		},
	}
}

func matchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matches <steam64-or-leetify-id>",
		Short: "Fetch a player's match history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := leetify.ParsePlayerID(args[0])
			if err != nil {
				return err
			}
			var client *leetify.Client
			return withApp(cmd.Context(), func() error {
				matches, err := client.GetProfileMatches(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), matches)
			}, &client)
		},
	}
}

func matchCmd() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "match <id>",
		Short: "Fetch match details by game id, or by data source id with --source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var client *leetify.Client
			return withApp(cmd.Context(), func() error {
				var (
					match *leetify.MatchDetails
					err   error
				)
				if cmd.Flags().Changed("source") {
					match, err = client.GetMatchByDataSource(cmd.Context(), leetify.ParseDataSource(source), args[0])
				} else {
					match, err = client.GetMatchByGameID(cmd.Context(), args[0])
				}
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), match)
			}, &client)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "data source the id belongs to (faceit, matchmaking)")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check LEETIFY_API_KEY with the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var client *leetify.Client
			return withApp(cmd.Context(), func() error {
				if err := client.ValidateAPIKey(cmd.Context()); err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), map[string]bool{"valid": true})
			}, &client)
		},
	}
}

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync <steam64-or-leetify-id>",
		Short: "Fetch a player's profile and matches and store them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := leetify.ParsePlayerID(args[0])
			if err != nil {
				return err
			}
			var tracker *service.TrackerService
			return withApp(cmd.Context(), func() error {
				result, err := tracker.Sync(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			}, &tracker)
		},
	}
}

func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history <steam64-or-leetify-id>",
		Short: "List a player's stored matches, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := leetify.ParsePlayerID(args[0])
			if err != nil {
				return err
			}
			var tracker *service.TrackerService
			return withApp(cmd.Context(), func() error {
				matches, err := tracker.History(cmd.Context(), id, limit)
				if err != nil {
					return err
				}
				if matches == nil {
					return printJSON(cmd.OutOrStdout(), []any{})
				}
				return printJSON(cmd.OutOrStdout(), matches)
			}, &tracker)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of matches (default 20, max 200)")
	return cmd
}
