package config

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultFeedUsername and DefaultFeedPassword are the default Basic
	// auth credentials handed to scoreboard tooling. Override them in any
	// real deployment.
	DefaultFeedUsername = "ccs"
	DefaultFeedPassword = "defaultKey@ccs"
)
