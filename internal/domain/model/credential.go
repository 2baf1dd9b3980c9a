package model

import "log/slog"

// Credentials holds the password-grant login for the identity service. Key
// and Secret identify the API client and are sent as basic auth; Country
// scopes the token.
type Credentials struct {
	Username string
	Password string
	Key      string
	Secret   string
	Country  string
}

// LogValue keeps the password and client secret out of structured logs.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", c.Username),
		slog.String("key", c.Key),
		slog.String("country", c.Country),
	)
}

// Token is an opaque bearer token issued by the identity service. It carries
// no expiry; a single run assumes it stays valid throughout.
type Token string

// LogValue redacts the token.
func (t Token) LogValue() slog.Value {
	if t == "" {
		return slog.StringValue("")
	}
	return slog.StringValue("[redacted]")
}
