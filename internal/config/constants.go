package config

const (
	// DefaultSettingsPath is where the desk looks for its ini settings file.
	DefaultSettingsPath = "./settings.ini"

	// DefaultDemoDatabasePath is the sqlite file written by cmd/generate_demo.
	DefaultDemoDatabasePath = "./bookstore-demo.db"
)
