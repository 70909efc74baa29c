package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SAT_GATEWAY_MOCK", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageBackendFS, cfg.Storage.Backend)
	assert.Equal(t, "downloads", cfg.Storage.Dir)
	assert.Equal(t, "lifecycle_snapshots", cfg.Dynamo.SnapshotTable)
	assert.Equal(t, "request_id-index", cfg.Dynamo.RequestIDIndex)
	assert.Equal(t, 4, cfg.Retriever.Concurrency)
	assert.Equal(t, 5*time.Second, cfg.Poll.InitialInterval)
	assert.True(t, cfg.Gateway.Mock)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		msg  string
	}{
		{name: "bridge without url", env: map[string]string{"SAT_GATEWAY_MOCK": "false"}, msg: "SAT_BRIDGE_URL"},
		{name: "s3 without bucket", env: map[string]string{"SAT_GATEWAY_MOCK": "true", "PACKAGE_STORAGE": "s3"}, msg: "S3_BUCKET"},
		{name: "unknown storage", env: map[string]string{"SAT_GATEWAY_MOCK": "true", "PACKAGE_STORAGE": "ftp"}, msg: "PACKAGE_STORAGE"},
		{name: "zero workers", env: map[string]string{"SAT_GATEWAY_MOCK": "true", "RETRIEVER_CONCURRENCY": "0"}, msg: "RETRIEVER_CONCURRENCY"},
		{name: "bad duration", env: map[string]string{"SAT_GATEWAY_MOCK": "true", "POLL_MAX_INTERVAL": "soon"}, msg: "parse env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
