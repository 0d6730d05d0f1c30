package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(cfg *Config)
		wantErr bool
		errMsg  string
	}{
		{name: "valid config", modify: func(*Config) {}},
		{name: "missing listen", modify: func(cfg *Config) { cfg.Server.Listen = "" }, wantErr: true, errMsg: "server.listen is required"},
		{name: "missing timeout", modify: func(cfg *Config) { cfg.Server.Timeout = 0 }, wantErr: true, errMsg: "server.timeout is required"},
		{name: "missing dsn", modify: func(cfg *Config) { cfg.Database.DSN = "" }, wantErr: true, errMsg: "database.dsn is required"},
		{name: "missing user agent", modify: func(cfg *Config) { cfg.HTTP.UserAgent = "" }, wantErr: true, errMsg: "http.user_agent is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEmbeddedSchemaMatchesConfig(t *testing.T) {
	var embedded map[string]any
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &embedded))
	defs, ok := embedded["$defs"].(map[string]any)
	require.True(t, ok)

	generated := GenerateSchema()
	require.NotNil(t, generated)
	for name := range generated.Definitions {
		assert.Contains(t, defs, name, "definition %s is missing in schema.json, run go generate", name)
	}

	root := defs["Config"].(map[string]any)["properties"].(map[string]any)
	for _, section := range []string{"server", "database", "ingestion", "http", "sources", "notify"} {
		assert.Contains(t, root, section)
	}
}
