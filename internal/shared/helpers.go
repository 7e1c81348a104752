// Package shared provides small helpers used by the adapters, policies and
// CLI of rosinstall-gen.
package shared

import (
	"fmt"
	"strings"
)

// maxErrorBody bounds how much of a response body ends up in an error.
const maxErrorBody = 256

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

// HTTPStatusErrorWithBody creates a formatted error that includes the
// response body, truncated, for non-2xx HTTP responses.
func HTTPStatusErrorWithBody(status int, url string, body string) error {
	body = strings.TrimSpace(body)
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	if body == "" {
		return HTTPStatusError(status, url)
	}
	return fmt.Errorf("status=%d url=%s response=%s", status, url, body)
}

// SplitList flattens comma separated values into trimmed, non-empty items
// in their original order.
func SplitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			item := strings.TrimSpace(part)
			if item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
