package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rosinstall-gen/internal/app"
)

type depsOptions struct {
	Catalog catalogOptions
	Kinds   []string
}

func newDepsCommand() *cobra.Command {
	opts := depsOptions{}
	cmd := &cobra.Command{
		Use:   "deps [package...]",
		Short: "List packages and their transitive dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeps(cmd.Context(), cmd, args, opts, false)
		},
	}
	addCatalogFlags(cmd, &opts.Catalog)
	cmd.Flags().StringSliceVar(&opts.Kinds, "kinds", nil, "Dependency kinds or presets to follow")
	return cmd
}

func newDependsOnCommand() *cobra.Command {
	opts := depsOptions{}
	cmd := &cobra.Command{
		Use:   "depends-on package...",
		Short: "List packages that transitively depend on the given packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeps(cmd.Context(), cmd, args, opts, true)
		},
	}
	addCatalogFlags(cmd, &opts.Catalog)
	cmd.Flags().StringSliceVar(&opts.Kinds, "kinds", nil, "Dependency kinds or presets to follow")
	return cmd
}

func runDeps(ctx context.Context, cmd *cobra.Command, args []string, opts depsOptions, reverse bool) error {
	service := newAppService()
	req := app.DepsRequest{
		Source:   resolveCatalogSource(cmd, opts.Catalog),
		Packages: packageArgs(args, "packages"),
		Kinds:    resolveStrings(cmd, opts.Kinds, "kinds", "kinds"),
	}
	var (
		result app.DepsResult
		err    error
	)
	if reverse {
		result, err = service.DependsOn(ctx, req)
	} else {
		result, err = service.Deps(ctx, req)
	}
	if err != nil {
		return err
	}
	return printNames(cmd.OutOrStdout(), result.Packages)
}

func printNames(out io.Writer, names []string) error {
	for _, name := range names {
		if _, err := fmt.Fprintln(out, name); err != nil {
			return err
		}
	}
	return nil
}
