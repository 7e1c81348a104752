package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rosinstall-gen/internal/app"
	"rosinstall-gen/internal/shared"
	"rosinstall-gen/internal/types"
)

// catalogOptions are the flags every catalog backed command shares.
type catalogOptions struct {
	Index            string
	Distribution     string
	File             string
	User             string
	APIKey           string
	Token            string
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

func addCatalogFlags(cmd *cobra.Command, opts *catalogOptions) {
	cmd.Flags().StringVar(&opts.Index, "index", "", "Distribution index path or http(s) URL")
	cmd.Flags().StringVarP(&opts.Distribution, "distribution", "d", "", "Distribution name (e.g., hydro)")
	cmd.Flags().StringVar(&opts.File, "distribution-file", "", "Load a single distribution file instead of the index")
	cmd.Flags().StringVar(&opts.User, "index-user", "", "Index basic auth user (defaults to api)")
	cmd.Flags().StringVar(&opts.APIKey, "index-api-key", "", "Index basic auth password/API key")
	cmd.Flags().StringVar(&opts.Token, "index-token", "", "Index bearer token (overrides basic auth)")
	cmd.Flags().IntVar(&opts.HTTPTimeoutSec, "http-timeout", 60, "HTTP timeout in seconds (0 = default)")
	cmd.Flags().IntVar(&opts.HTTPRetries, "http-retries", 3, "HTTP retries (0 = default)")
	cmd.Flags().IntVar(&opts.HTTPRetryDelayMs, "http-retry-delay-ms", 200, "HTTP retry base delay in ms (0 = default)")

	_ = viper.BindPFlag("index", cmd.Flags().Lookup("index"))
	_ = viper.BindPFlag("distribution", cmd.Flags().Lookup("distribution"))
	_ = viper.BindPFlag("distribution_file", cmd.Flags().Lookup("distribution-file"))
	_ = viper.BindPFlag("index_user", cmd.Flags().Lookup("index-user"))
	_ = viper.BindPFlag("index_api_key", cmd.Flags().Lookup("index-api-key"))
	_ = viper.BindPFlag("index_token", cmd.Flags().Lookup("index-token"))
	_ = viper.BindPFlag("http_timeout_sec", cmd.Flags().Lookup("http-timeout"))
	_ = viper.BindPFlag("http_retries", cmd.Flags().Lookup("http-retries"))
	_ = viper.BindPFlag("http_retry_delay_ms", cmd.Flags().Lookup("http-retry-delay-ms"))
}

func resolveCatalogSource(cmd *cobra.Command, opts catalogOptions) app.CatalogSource {
	return app.CatalogSource{
		Config: types.CatalogConfig{
			IndexURL:         resolveString(cmd, opts.Index, "index", "index"),
			User:             resolveString(cmd, opts.User, "index_user", "index-user"),
			APIKey:           resolveString(cmd, opts.APIKey, "index_api_key", "index-api-key"),
			Token:            resolveString(cmd, opts.Token, "index_token", "index-token"),
			HTTPTimeoutSec:   resolveInt(cmd, opts.HTTPTimeoutSec, "http_timeout_sec", "http-timeout"),
			HTTPRetries:      resolveInt(cmd, opts.HTTPRetries, "http_retries", "http-retries"),
			HTTPRetryDelayMs: resolveInt(cmd, opts.HTTPRetryDelayMs, "http_retry_delay_ms", "http-retry-delay-ms"),
		},
		Distribution: resolveString(cmd, opts.Distribution, "distribution", "distribution"),
		File:         resolveString(cmd, opts.File, "distribution_file", "distribution-file"),
	}
}

// packageArgs returns the positional package names, falling back to the
// configured package list.
func packageArgs(args []string, key string) []string {
	if packages := shared.SplitList(args); len(packages) > 0 {
		return packages
	}
	return shared.SplitList(viper.GetStringSlice(key))
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
