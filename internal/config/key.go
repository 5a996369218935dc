// Package config provides unified configuration loading from files,
// environment variables, and CLI flags using viper and pflag.
//
// Resolution order (highest wins):
//  1. CLI flags
//  2. Environment variables (prefix DATACAPTURING_)
//  3. Config file (config.yaml in . or /etc/datacapturing/)
//  4. Compiled defaults
package config

// Viper keys for server-mode configuration.
const (
	keyServerAddress        = "server.address"
	keyServerAllowedOrigins = "server.allowed_origins"
	keyServerOIDCIssuerURL  = "server.oidc.issuer_url"
	keyServerOIDCClientID   = "server.oidc.client_id"
)
