package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rosinstall-gen/internal/app"
)

type importOptions struct {
	Workspace []string
	Name      string
	Output    string
	Base      string
	Branch    string
	URLPrefix string
}

func newImportCommand() *cobra.Command {
	opts := importOptions{}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Write a distribution file describing the packages of a workspace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Workspace, "workspace", []string{"src"}, "Workspace root(s)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Distribution name (defaults to the base name or workspace)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "distribution.yaml", "Output path for the distribution file")
	cmd.Flags().StringVar(&opts.Base, "base", "", "Distribution file the workspace packages are layered on")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Pin imported packages to a branch instead of their version tag")
	cmd.Flags().StringVar(&opts.URLPrefix, "url-prefix", "", "Repository URL prefix for packages without a repository url")

	_ = viper.BindPFlag("workspace", cmd.Flags().Lookup("workspace"))
	_ = viper.BindPFlag("import_name", cmd.Flags().Lookup("name"))
	_ = viper.BindPFlag("import_output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("import_base", cmd.Flags().Lookup("base"))
	_ = viper.BindPFlag("import_branch", cmd.Flags().Lookup("branch"))
	_ = viper.BindPFlag("url_prefix", cmd.Flags().Lookup("url-prefix"))
	return cmd
}

func runImport(ctx context.Context, cmd *cobra.Command, opts importOptions) error {
	service := newAppService()
	result, err := service.Import(ctx, app.ImportRequest{
		Workspace: resolveStrings(cmd, opts.Workspace, "workspace", "workspace"),
		Name:      resolveString(cmd, opts.Name, "import_name", "name"),
		Output:    resolveString(cmd, opts.Output, "import_output", "output"),
		Base:      resolveString(cmd, opts.Base, "import_base", "base"),
		Branch:    resolveString(cmd, opts.Branch, "import_branch", "branch"),
		URLPrefix: resolveString(cmd, opts.URLPrefix, "url_prefix", "url-prefix"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d packages into %s (%d total, %d dangling)\n",
		len(result.Imported), result.OutputPath, result.Total, result.Dangling)
	return nil
}
