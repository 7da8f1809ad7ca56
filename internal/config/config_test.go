package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  ServerConfig
		wantErr bool
	}{
		{name: "valid", config: ServerConfig{Address: ":8080"}, wantErr: false},
		{name: "empty address", config: ServerConfig{Address: ""}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDatabaseConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  DatabaseConfig
		wantErr bool
	}{
		{
			name:    "valid",
			config:  DatabaseConfig{Host: "localhost", Port: 5432, Database: "dbgraph"},
			wantErr: false,
		},
		{
			name:    "empty host",
			config:  DatabaseConfig{Host: "", Port: 5432, Database: "dbgraph"},
			wantErr: true,
		},
		{
			name:    "port out of range",
			config:  DatabaseConfig{Host: "localhost", Port: 99999, Database: "dbgraph"},
			wantErr: true,
		},
		{
			name:    "empty database",
			config:  DatabaseConfig{Host: "localhost", Port: 5432, Database: ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSchemaConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  SchemaConfig
		wantErr bool
	}{
		{name: "json with path", config: SchemaConfig{Source: "json", JSONPath: "schema.json"}, wantErr: false},
		{name: "json without path", config: SchemaConfig{Source: "json"}, wantErr: true},
		{name: "postgres", config: SchemaConfig{Source: "postgres"}, wantErr: false},
		{name: "unknown source", config: SchemaConfig{Source: "yaml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoggingConfigValidate(t *testing.T) {
	assert.NoError(t, LoggingConfig{Level: "info"}.Validate())
	assert.NoError(t, LoggingConfig{Level: "DEBUG"}.Validate())
	assert.Error(t, LoggingConfig{Level: "verbose"}.Validate())
}

func TestConfigValidateSkipsDatabaseWhenSourceIsJSON(t *testing.T) {
	cfg := Config{
		Server:   ServerConfig{Address: ":8080"},
		Database: DatabaseConfig{}, // intentionally invalid
		Schema:   SchemaConfig{Source: "json", JSONPath: "schema.json"},
		Logging:  LoggingConfig{Level: "info"},
	}
	require.NoError(t, cfg.Validate())
}

func TestConfigValidateChecksDatabaseWhenSourceIsPostgres(t *testing.T) {
	cfg := Config{
		Server:   ServerConfig{Address: ":8080"},
		Database: DatabaseConfig{}, // invalid: empty host/database
		Schema:   SchemaConfig{Source: "postgres"},
		Logging:  LoggingConfig{Level: "info"},
	}
	require.Error(t, cfg.Validate())
}
