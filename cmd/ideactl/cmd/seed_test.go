package cmd

import (
	"testing"

	"github.com/spec-kit/ideaflow/internal/config"
)

func TestCheckSeedTarget(t *testing.T) {
	tests := []struct {
		backend string
		wantErr bool
	}{
		{backend: config.StorageMemory, wantErr: true},
		{backend: config.StorageSQLite},
		{backend: config.StoragePostgres},
		{backend: config.StorageRedis},
	}
	for _, tt := range tests {
		err := checkSeedTarget(tt.backend)
		if (err != nil) != tt.wantErr {
			t.Errorf("checkSeedTarget(%q) error = %v, wantErr %v", tt.backend, err, tt.wantErr)
		}
	}
}
