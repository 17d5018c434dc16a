package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDefaults(t *testing.T) {
	s := NewStore(NewMemoryKV())

	assert.Empty(t, s.Token())
	assert.Equal(t, DefaultTenantID, s.ActiveTenant())
	assert.Equal(t, RequestContext{TenantID: "demo"}, s.RequestContext())

	require.NoError(t, s.SetToken("tok"))
	require.NoError(t, s.SetActiveTenant("t2"))
	assert.Equal(t, RequestContext{Token: "tok", TenantID: "t2"}, s.RequestContext())

	require.NoError(t, s.ClearToken())
	require.NoError(t, s.ClearActiveTenant())
	assert.Empty(t, s.Token())
	assert.Equal(t, DefaultTenantID, s.ActiveTenant())
}

func TestFileKVPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm", "state.json")

	kv := NewFileKV(path)
	require.NoError(t, kv.Set(keyToken, "tok"))
	require.NoError(t, kv.Set(keyTenant, "t2"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened := NewStore(NewFileKV(path))
	assert.Equal(t, "tok", reopened.Token())
	assert.Equal(t, "t2", reopened.ActiveTenant())

	require.NoError(t, kv.Delete(keyToken))
	assert.Empty(t, reopened.Token())
}

func TestFileKVCorruptReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewStore(NewFileKV(path))
	assert.Empty(t, s.Token())
	assert.Equal(t, DefaultTenantID, s.ActiveTenant())

	require.NoError(t, s.SetToken("tok"))
	assert.Equal(t, "tok", s.Token())
}

func TestDefaultStatePath(t *testing.T) {
	t.Setenv("CRM_STATE_FILE", "/tmp/custom.json")
	p, err := DefaultStatePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.json", p)

	t.Setenv("CRM_STATE_FILE", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err = DefaultStatePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/crm/state.json", p)
}
