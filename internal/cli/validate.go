package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rosinstall-gen/internal/app"
)

type validateOptions struct {
	Catalog catalogOptions
	Strict  bool
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate [distribution...]",
		Short: "Load distributions and report dependencies without catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), cmd, args, opts)
		},
	}
	addCatalogFlags(cmd, &opts.Catalog)
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail when any dependency has no catalog entry")
	_ = viper.BindPFlag("strict", cmd.Flags().Lookup("strict"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, args []string, opts validateOptions) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		Source:        resolveCatalogSource(cmd, opts.Catalog),
		Distributions: args,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, report := range result.Reports {
		fmt.Fprintf(out, "%s: %d packages, %d dangling\n", report.Name, report.Packages, len(report.Dangling))
		for _, ref := range report.Dangling {
			fmt.Fprintf(out, "  %s -> %s (%s)\n", ref.From, ref.Name, ref.Kind)
		}
	}
	if dangling := result.Dangling(); dangling > 0 && resolveBool(cmd, opts.Strict, "strict", "strict") {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%d dependencies have no catalog entry", dangling))
	}
	return nil
}
