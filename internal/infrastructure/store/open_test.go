package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_LocalBackends(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "creds.json")

	tests := []struct {
		name string
		opts Options
		want any
	}{
		{"default is file", Options{FilePath: path}, &FileStore{}},
		{"file", Options{Backend: BackendFile, FilePath: path}, &FileStore{}},
		{"memory", Options{Backend: BackendMemory}, &MemoryStore{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv, closeFn, err := Open(ctx, tt.opts)
			require.NoError(t, err)
			require.NotNil(t, closeFn)
			defer closeFn()
			assert.IsType(t, tt.want, kv)
			if fileStore, ok := kv.(*FileStore); ok {
				assert.Equal(t, path, fileStore.Path())
			}
		})
	}
}

func TestOpen_Redis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	ctx := context.Background()

	kv, closeFn, err := Open(ctx, Options{Backend: BackendRedis, RedisAddr: mr.Addr()})
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, kv.Set(ctx, "k", []byte("v")))
	assert.True(t, mr.Exists(DefaultRedisPrefix+"k"))
}

func TestOpen_Unknown(t *testing.T) {
	kv, closeFn, err := Open(context.Background(), Options{Backend: "sqlite"})

	assert.ErrorContains(t, err, "sqlite")
	assert.Nil(t, kv)
	assert.NoError(t, closeFn())
}
