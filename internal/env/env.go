package env

// Overridden at build time, e.g.
//
//	go build -ldflags "-X github.com/ostafen/envcarve/internal/env.Version=v1.0.0"
var (
	AppName    = "envcarve"
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)
