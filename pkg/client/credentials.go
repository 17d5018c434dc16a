package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultTenantID is the tenant used until the caller picks another.
const DefaultTenantID = "demo"

// Keys persisted in the KV.
const (
	keyToken     = "auth.token"
	keyTenant    = "auth.tenant"
	keyReminders = "reminders.map"
)

// KV is a small persistent string map.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryKV keeps values in process memory.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string]string{}}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// FileKV stores values as a JSON object in a single file. Writes go to a
// temporary file that is renamed over the original.
type FileKV struct {
	mu   sync.Mutex
	path string
}

// NewFileKV returns a FileKV backed by path.
func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

// DefaultStatePath returns $CRM_STATE_FILE or ~/.config/crm/state.json.
func DefaultStatePath() (string, error) {
	if p := strings.TrimSpace(os.Getenv("CRM_STATE_FILE")); p != "" {
		return p, nil
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "crm", "state.json"), nil
}

func (f *FileKV) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return values, nil
}

func (f *FileKV) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

func (f *FileKV) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		// Corrupt state is discarded on write.
		values = map[string]string{}
	}
	values[key] = value
	return f.save(values)
}

func (f *FileKV) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		values = map[string]string{}
	}
	if _, ok := values[key]; !ok && err == nil {
		return nil
	}
	delete(values, key)
	return f.save(values)
}

// Store owns the persisted credential: the bearer token and the active
// tenant. Reads never fail; a broken KV reads as empty.
type Store struct {
	kv KV
}

// NewStore wraps kv.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Token returns the saved token, or "" when none is saved.
func (s *Store) Token() string {
	v, ok, err := s.kv.Get(keyToken)
	if err != nil || !ok {
		return ""
	}
	return v
}

func (s *Store) SetToken(token string) error {
	return s.kv.Set(keyToken, token)
}

func (s *Store) ClearToken() error {
	return s.kv.Delete(keyToken)
}

// ActiveTenant returns the saved tenant or DefaultTenantID.
func (s *Store) ActiveTenant() string {
	v, ok, err := s.kv.Get(keyTenant)
	if err != nil || !ok || strings.TrimSpace(v) == "" {
		return DefaultTenantID
	}
	return v
}

func (s *Store) SetActiveTenant(tenantID string) error {
	return s.kv.Set(keyTenant, tenantID)
}

func (s *Store) ClearActiveTenant() error {
	return s.kv.Delete(keyTenant)
}

// RequestContext snapshots the credential for one or more calls.
func (s *Store) RequestContext() RequestContext {
	return RequestContext{Token: s.Token(), TenantID: s.ActiveTenant()}
}
