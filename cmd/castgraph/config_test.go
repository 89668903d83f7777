package main_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/castgraph"
	main "github.com/fwojciec/castgraph/cmd/castgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("reads store settings and categories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "castgraph.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
store: neo4j
uri: bolt://graph:7687
user: neo4j
database: cast
categories:
  - "Category:日本の男性声優"
`), 0644))

		cf, err := main.LoadConfigFile(path)

		require.NoError(t, err)
		assert.Equal(t, "neo4j", cf.Kind)
		assert.Equal(t, "bolt://graph:7687", cf.URI)
		assert.Equal(t, "neo4j", cf.User)
		assert.Equal(t, "cast", cf.Database)
		assert.Equal(t, []string{"Category:日本の男性声優"}, cf.Categories)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.ErrorIs(t, err, main.ErrConfigNotFound)
	})

	t.Run("invalid YAML", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "castgraph.yaml")
		require.NoError(t, os.WriteFile(path, []byte("store: [unclosed"), 0644))

		_, err := main.LoadConfigFile(path)

		assert.Equal(t, castgraph.EINVALID, castgraph.ErrorCode(err))
	})
}

func TestStoreConfig_Merge(t *testing.T) {
	t.Parallel()

	cfg := main.StoreConfig{Kind: "neo4j", URI: "bolt://flag:7687"}
	cfg.Merge(main.StoreConfig{Kind: "postgres", URI: "bolt://file:7687", User: "file-user"})

	assert.Equal(t, main.StoreConfig{Kind: "neo4j", URI: "bolt://flag:7687", User: "file-user"}, cfg)
}

func TestStoreConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     main.StoreConfig
		wantErr bool
	}{
		{"sqlite with path", main.StoreConfig{Kind: "sqlite", DB: "castgraph.db"}, false},
		{"sqlite without path", main.StoreConfig{Kind: "sqlite"}, true},
		{"neo4j with uri", main.StoreConfig{Kind: "neo4j", URI: "bolt://localhost:7687"}, false},
		{"neo4j without uri", main.StoreConfig{Kind: "neo4j"}, true},
		{"postgres with uri", main.StoreConfig{Kind: "postgres", URI: "postgres://localhost/cast"}, false},
		{"unknown store", main.StoreConfig{Kind: "gremlin", URI: "ws://localhost:8182"}, true},
		{"empty", main.StoreConfig{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()

			if tt.wantErr {
				assert.Equal(t, castgraph.EINVALID, castgraph.ErrorCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
