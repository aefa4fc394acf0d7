package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/supportcase/pkg/cli/config"
	"github.com/secmon-lab/supportcase/pkg/domain/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestLoadAppConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    model.PagePolicy
		wantErr error
	}{
		{
			name:    "empty file uses defaults",
			content: "",
			want:    model.PagePolicy{DefaultLimit: 10, MaxLimit: 100},
		},
		{
			name: "custom pagination",
			content: `
[pagination]
default_limit = 20
max_limit = 50
`,
			want: model.PagePolicy{DefaultLimit: 20, MaxLimit: 50},
		},
		{
			name: "small max lowers default",
			content: `
[pagination]
max_limit = 5
`,
			want: model.PagePolicy{DefaultLimit: 5, MaxLimit: 5},
		},
		{
			name: "max above hard ceiling",
			content: `
[pagination]
max_limit = 500
`,
			wantErr: config.ErrInvalidConfig,
		},
		{
			name: "default above max",
			content: `
[pagination]
default_limit = 60
max_limit = 50
`,
			wantErr: config.ErrInvalidConfig,
		},
		{
			name:    "broken toml",
			content: `[pagination`,
			wantErr: config.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.LoadAppConfiguration(writeConfig(t, tt.content))
			if tt.wantErr != nil {
				gt.Error(t, err).Is(tt.wantErr)
				return
			}
			gt.NoError(t, err).Required()

			policy, err := cfg.Pagination.PagePolicy()
			gt.NoError(t, err).Required()
			gt.Value(t, policy).Equal(tt.want)
		})
	}
}

func TestLoadAppConfiguration_MissingFile(t *testing.T) {
	_, err := config.LoadAppConfiguration(filepath.Join(t.TempDir(), "nope.toml"))
	gt.Error(t, err).Is(config.ErrInvalidConfig)
}
