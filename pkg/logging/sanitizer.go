// Package logging redacts credentials before they reach log output.
package logging

import (
	"regexp"
)

// RedactedText is the replacement text for sensitive data.
const RedactedText = "[REDACTED]"

var (
	// Matches password=xxx, pwd=xxx, pass=xxx in parameter-style strings
	// (until next delimiter).
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)

	// Matches Bearer tokens, including DataHub PATs (JWT shaped).
	bearerPattern = regexp.MustCompile(`Bearer\s+[A-Za-z0-9-_.]+`)

	// Matches token=xxx query or parameter values.
	tokenPattern = regexp.MustCompile(`(?i)(token|api[_-]?key)=[A-Za-z0-9-_.]{8,}`)

	// Matches user:pass@host credentials in DSNs, e.g. the Snowflake
	// user:password@account/database form.
	dsnCredsPattern = regexp.MustCompile(`(^|://|\s)[^:/\s]+:[^@\s]+@`)
)

// SanitizeDSN removes credentials from a connection string before logging.
func SanitizeDSN(dsn string) string {
	if dsn == "" {
		return ""
	}
	sanitized := dsnCredsPattern.ReplaceAllString(dsn, "${1}"+RedactedText+"@")
	return passwordPattern.ReplaceAllString(sanitized, "${1}="+RedactedText)
}

// SanitizeError sanitizes error messages that might echo credentials, such
// as driver connection failures or catalog HTTP errors.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	sanitized := passwordPattern.ReplaceAllString(err.Error(), "${1}="+RedactedText)
	sanitized = bearerPattern.ReplaceAllString(sanitized, "Bearer "+RedactedText)
	sanitized = tokenPattern.ReplaceAllString(sanitized, "${1}="+RedactedText)
	return dsnCredsPattern.ReplaceAllString(sanitized, "${1}"+RedactedText+"@")
}
