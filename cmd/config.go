package cmd

import (
	"fmt"

	"github.com/spf13/viper"
)

// Connection is one entry in the connection registry. Exactly one entry
// must be active unless flags override the registry entirely.
type Connection struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Schema string `mapstructure:"schema"`
	Active bool   `mapstructure:"active"`
}

// ActiveConnection returns the registry entry marked active.
func ActiveConnection() (*Connection, error) {
	var conns []Connection

	if err := viper.UnmarshalKey("connections", &conns); err != nil {
		return nil, fmt.Errorf("failed to parse connections config: %w", err)
	}

	var active *Connection
	count := 0
	for i := range conns {
		if conns[i].Active {
			active = &conns[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active connection found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active connections found (only one can be active)")
	}
	return active, nil
}

// resolveConnection prefers explicit --driver/--dsn flags over the
// registry so one-off invocations need no config file.
func resolveConnection() (*Connection, error) {
	if flagDSN != "" && flagDriver != "" {
		return &Connection{
			Name:   "cli",
			Driver: flagDriver,
			DSN:    flagDSN,
			Schema: flagSchema,
			Active: true,
		}, nil
	}
	conn, err := ActiveConnection()
	if err != nil {
		return nil, err
	}
	if flagSchema != "" {
		conn.Schema = flagSchema
	}
	return conn, nil
}
