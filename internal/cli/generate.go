package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rosinstall-gen/internal/app"
	"rosinstall-gen/internal/types"
)

type generateOptions struct {
	Catalog catalogOptions
	Kinds   []string
	Devel   bool
	NoDeps  bool
	Output  string
}

func newGenerateCommand() *cobra.Command {
	opts := generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate [package[@devel|@latest|@<version>]...]",
		Short: "Write a rosinstall manifest for packages and their dependencies",
		Long:  `Write a rosinstall manifest for packages and their dependencies.

A package may name its own source: name@devel uses the development branch,
name@latest (or name@master) the release repository's master branch and
name@<version> the release tag of that version.  Dependencies follow --devel.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), cmd, args, opts)
		},
	}
	addCatalogFlags(cmd, &opts.Catalog)
	cmd.Flags().StringSliceVar(&opts.Kinds, "kinds", nil, "Dependency kinds or presets to follow (default, compile, all, build, run, ...)")
	cmd.Flags().BoolVar(&opts.Devel, "devel", false, "Pin development branches instead of release tags")
	cmd.Flags().BoolVar(&opts.NoDeps, "no-deps", false, "Emit only the requested packages")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Manifest output path (default stdout)")

	_ = viper.BindPFlag("kinds", cmd.Flags().Lookup("kinds"))
	_ = viper.BindPFlag("devel", cmd.Flags().Lookup("devel"))
	_ = viper.BindPFlag("no_deps", cmd.Flags().Lookup("no-deps"))
	_ = viper.BindPFlag("manifest_output", cmd.Flags().Lookup("output"))
	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, args []string, opts generateOptions) error {
	variant := types.ManifestVariantRelease
	if resolveBool(cmd, opts.Devel, "devel", "devel") {
		variant = types.ManifestVariantDevel
	}
	service := newAppService()
	result, err := service.Generate(ctx, app.GenerateRequest{
		Source:           resolveCatalogSource(cmd, opts.Catalog),
		Packages:         packageArgs(args, "packages"),
		Kinds:            resolveStrings(cmd, opts.Kinds, "kinds", "kinds"),
		Variant:          variant,
		SkipDependencies: resolveBool(cmd, opts.NoDeps, "no_deps", "no-deps"),
		OutputPath:       resolveString(cmd, opts.Output, "manifest_output", "output"),
		Stdout:           cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	if result.OutputPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d entries for %s to %s (digest %s)\n",
			result.Count, result.Distribution, result.OutputPath, result.Digest)
	}
	return nil
}
