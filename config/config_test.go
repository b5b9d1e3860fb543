package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/onering/onering"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg: Config{
				API:     APIConfig{BaseURL: onering.DefaultBaseURL},
				Logging: LoggingConfig{Level: "info", Format: "console"},
			},
		},
		{
			name: "missing base url",
			cfg: Config{
				Logging: LoggingConfig{Level: "info", Format: "console"},
			},
			wantErr: "api.base_url is required",
		},
		{
			name: "invalid level",
			cfg: Config{
				API:     APIConfig{BaseURL: onering.DefaultBaseURL},
				Logging: LoggingConfig{Level: "trace", Format: "console"},
			},
			wantErr: "invalid logging level: trace",
		},
		{
			name: "invalid format",
			cfg: Config{
				API:     APIConfig{BaseURL: onering.DefaultBaseURL},
				Logging: LoggingConfig{Level: "debug", Format: "xml"},
			},
			wantErr: "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFs(afero.NewMemMapFs(), "")
	require.NoError(t, err)

	assert.Equal(t, onering.DefaultBaseURL, cfg.API.BaseURL)
	assert.Empty(t, cfg.API.AccessToken)
	assert.Empty(t, cfg.API.CredsJSON)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tmp/onering.yaml", []byte(`
api:
  creds_json: /home/frodo/.onering/creds.json
logging:
  level: debug
  format: json
  color: false
`), 0o644))

	cfg, err := LoadFs(fs, "/tmp/onering.yaml")
	require.NoError(t, err)

	assert.Equal(t, onering.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, "/home/frodo/.onering/creds.json", cfg.API.CredsJSON)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Logging.Color)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := LoadFs(afero.NewMemMapFs(), "/nope/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}

func TestLoadInvalidFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tmp/bad.yaml", []byte("logging:\n  level: loud\n"), 0o644))

	_, err := LoadFs(fs, "/tmp/bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level: loud")
}
