package types

// CatalogConfig carries everything the catalog loader needs.  It is filled
// by the CLI from flags, config file and environment and passed down
// explicitly.
type CatalogConfig struct {
	// IndexURL is a local path or http(s) URL of the distribution index.
	IndexURL string

	// User and APIKey authenticate with basic auth.  Token, when set, is
	// sent as a bearer token instead.
	User   string
	APIKey string
	Token  string

	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}
