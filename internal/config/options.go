package config

import (
	"strings"
)

// Option describes a single configuration entry: its viper key, the
// corresponding CLI flag name, the compiled default, and a
// human-readable description shown in --help output.
type Option struct {
	Key         string
	Flag        string
	Default     any
	Description string
}

// ServerOptions defines the configuration entries available in server
// mode. Each entry is registered as a viper default and a CLI flag.
// OIDC is optional: with an empty issuer URL the introspection API is
// served without authentication.
var ServerOptions = []Option{
	{Key: keyServerAddress, Flag: toFlag(keyServerAddress), Default: ":8080", Description: "Server listen address"},
	{Key: keyServerAllowedOrigins, Flag: toFlag(keyServerAllowedOrigins), Default: []string{}, Description: "Server allowed CORS origins"},
	{Key: keyServerOIDCIssuerURL, Flag: toFlag(keyServerOIDCIssuerURL), Default: "", Description: "OIDC issuer url (empty disables authentication)"},
	{Key: keyServerOIDCClientID, Flag: toFlag(keyServerOIDCClientID), Default: "datacapturing", Description: "OIDC client id"},
}

// toFlag converts a viper key like "server.oidc.issuer_url" into a
// CLI flag like "oidc-issuer-url" by lower-casing, replacing dots and
// underscores with hyphens, and stripping the "server-" prefix.
func toFlag(key string) string {
	flag := strings.ToLower(key)
	flag = strings.ReplaceAll(flag, ".", "-")
	flag = strings.ReplaceAll(flag, "_", "-")
	return strings.TrimPrefix(flag, "server-")
}
