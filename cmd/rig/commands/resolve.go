package commands

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/rig/internal/errors"
	"github.com/thoreinstein/rig/pkg/rigconfig"
)

// resolveAsync holds the value of the --async flag.
var resolveAsync bool

func init() {
	resolveCmd.Flags().BoolVar(&resolveAsync, "async", false,
		"use the non-blocking loader and resolver")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [dir...]",
	Short: "Print the resolved rig profile folder",
	Long: `Resolve the rig package and profile named by config/rig.json to an
absolute folder path.

With several project folders they are resolved in parallel and each line
is printed as "<dir><TAB><profile folder>", in argument order.`,
	Example: `  # Current project
  rig resolve

  # Several projects at once
  rig resolve apps/web apps/api

  See Also: rig show, rig lookup`,
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	dirs := args
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	loader := newLoader(cmd)
	folders := make([]string, len(dirs))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, dir := range dirs {
		g.Go(func() error {
			folder, err := resolveProfileFolder(ctx, loader, dir)
			if err != nil {
				return errors.Wrapf(err, "resolving %s", dir)
			}
			folders[i] = folder
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return explain(err)
	}

	out := cmd.OutOrStdout()
	for i, folder := range folders {
		if len(dirs) == 1 {
			fmt.Fprintln(out, folder)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", dirs[i], folder)
	}
	return nil
}

func resolveProfileFolder(ctx context.Context, loader *rigconfig.Loader, dir string) (string, error) {
	opts := rigconfig.LoadOptions{ProjectFolderPath: dir}
	if !resolveAsync {
		cfg, err := loader.Load(opts)
		if err != nil {
			return "", err
		}
		return cfg.GetResolvedProfileFolder()
	}

	var loaded rigconfig.LoadResult
	select {
	case loaded = <-loader.LoadAsync(ctx, opts):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	if loaded.Err != nil {
		return "", loaded.Err
	}

	select {
	case resolved := <-loaded.Config.GetResolvedProfileFolderAsync(ctx):
		return resolved.Path, resolved.Err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
