// ABOUTME: Charm KV client for cloud-synced triage memory backups
// ABOUTME: Pushes and pulls full memory snapshots with SSH key auth
package charm

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"

	"github.com/harper/inbox-triage/internal/storage/sqlite"
)

// Key prefixes for synced entity types
const (
	SnapshotPrefix = "snapshot:"
	ContextPrefix  = "context:"
)

// LatestSnapshotKey is the well-known key holding the newest memory snapshot.
const LatestSnapshotKey = SnapshotPrefix + "latest"

// Config holds charm client configuration
type Config struct {
	Host     string
	DBName   string
	AutoSync bool
}

// DefaultConfig returns default configuration for charm client
func DefaultConfig() *Config {
	host := os.Getenv("CHARM_HOST")
	if host == "" {
		host = "charm.2389.dev"
	}
	dbName := os.Getenv("CHARM_DB")
	if dbName == "" {
		dbName = "inbox-triage"
	}
	return &Config{
		Host:     host,
		DBName:   dbName,
		AutoSync: true,
	}
}

var (
	globalClient *Client
	clientOnce   sync.Once
	clientErr    error
	clientMu     sync.Mutex
)

// Client wraps charm KV for backup operations
type Client struct {
	kv     *kv.KV
	config *Config
	mu     sync.Mutex
}

// InitClient initializes the global charm client (thread-safe singleton)
func InitClient() error {
	clientOnce.Do(func() {
		globalClient, clientErr = NewClient(DefaultConfig())
	})
	return clientErr
}

// GetClient returns the global client, initializing if needed
func GetClient() (*Client, error) {
	clientMu.Lock()
	defer clientMu.Unlock()

	// If client was closed, reinitialize
	if globalClient != nil && globalClient.kv == nil {
		clientOnce = sync.Once{}
		globalClient = nil
	}

	if err := InitClient(); err != nil {
		return nil, err
	}
	return globalClient, nil
}

// ResetGlobalClient resets the global client (for testing)
func ResetGlobalClient() {
	clientMu.Lock()
	defer clientMu.Unlock()
	if globalClient != nil {
		_ = globalClient.Close()
	}
	clientOnce = sync.Once{}
	globalClient = nil
	clientErr = nil
}

// NewClient creates a new charm client with the given config
func NewClient(cfg *Config) (*Client, error) {
	// Set CHARM_HOST before opening KV
	os.Setenv("CHARM_HOST", cfg.Host)

	db, err := kv.OpenWithDefaults(cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	c := &Client{
		kv:     db,
		config: cfg,
	}

	// Pull remote data on startup
	if cfg.AutoSync {
		_ = db.Sync()
	}

	return c, nil
}

// Close closes the KV database
func (c *Client) Close() error {
	if c.kv != nil {
		err := c.kv.Close()
		c.kv = nil // Mark as closed so GetClient knows to reinitialize
		return err
	}
	return nil
}

// syncIfEnabled syncs to cloud after writes
func (c *Client) syncIfEnabled() {
	if c.config.AutoSync {
		_ = c.kv.Sync()
	}
}

// ID returns the charm user ID
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}

// Set stores a value with the given key
func (c *Client) Set(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Set([]byte(key), value); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// Get retrieves a value by key
func (c *Client) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.kv.Get([]byte(key))
}

// Delete removes a key
func (c *Client) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Delete([]byte(key)); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// SetJSON marshals and stores a value as JSON
func (c *Client) SetJSON(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.Set(key, data)
}

// GetJSON retrieves and unmarshals a JSON value
func (c *Client) GetJSON(key string, dest interface{}) error {
	data, err := c.Get(key)
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("key not found: %s", key)
	}
	return json.Unmarshal(data, dest)
}

// ListKeys returns all keys with the given prefix
func (c *Client) ListKeys(prefix string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys, err := c.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	var result []string
	for _, key := range keys {
		keyStr := string(key)
		if strings.HasPrefix(keyStr, prefix) {
			result = append(result, keyStr)
		}
	}
	return result, nil
}

// Sync manually triggers a sync with the cloud
func (c *Client) Sync() error {
	return c.kv.Sync()
}

// Reset wipes all local data (nuclear option)
func (c *Client) Reset() error {
	return c.kv.Reset()
}

// GetAuthorizedKeys returns the list of linked devices/keys
func (c *Client) GetAuthorizedKeys() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.AuthorizedKeys()
}

// UnlinkKey removes an authorized key from the account
func (c *Client) UnlinkKey(key string) error {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.UnlinkAuthorizedKey(key)
}

// PushSnapshot uploads a full memory export, both under a timestamped key
// and as the latest snapshot.
func (c *Client) PushSnapshot(snapshot *sqlite.ExportData) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot is nil")
	}

	stamped := SnapshotKey(time.Now().UTC())
	if err := c.SetJSON(stamped, snapshot); err != nil {
		return fmt.Errorf("failed to push snapshot: %w", err)
	}
	if err := c.SetJSON(LatestSnapshotKey, snapshot); err != nil {
		return fmt.Errorf("failed to update latest snapshot: %w", err)
	}
	return nil
}

// PullSnapshot fetches the newest memory snapshot, or nil when none exists.
func (c *Client) PullSnapshot() (*sqlite.ExportData, error) {
	data, err := c.Get(LatestSnapshotKey)
	if err != nil {
		return nil, fmt.Errorf("failed to pull snapshot: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var snapshot sqlite.ExportData
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snapshot, nil
}

// ListSnapshots returns all timestamped snapshot keys.
func (c *Client) ListSnapshots() ([]string, error) {
	keys, err := c.ListKeys(SnapshotPrefix)
	if err != nil {
		return nil, err
	}

	var result []string
	for _, key := range keys {
		if key != LatestSnapshotKey {
			result = append(result, key)
		}
	}
	return result, nil
}

// PushContext mirrors user context entries to the cloud, one key per entry.
// Remote context keys with no local counterpart are pruned so that an entry
// removed on one device disappears everywhere.
func (c *Client) PushContext(entries []sqlite.ExportContext) error {
	local := make(map[string]bool, len(entries))
	for _, entry := range entries {
		local[ContextKey(entry.Key)] = true
		if err := c.SetJSON(ContextKey(entry.Key), entry); err != nil {
			return fmt.Errorf("failed to push context %s: %w", entry.Key, err)
		}
	}

	remote, err := c.ListKeys(ContextPrefix)
	if err != nil {
		return err
	}
	for _, key := range remote {
		if !local[key] {
			if err := c.Delete(key); err != nil {
				return fmt.Errorf("failed to prune context %s: %w", key, err)
			}
		}
	}
	return nil
}

// PullContext fetches all mirrored context entries from the cloud.
func (c *Client) PullContext() ([]sqlite.ExportContext, error) {
	keys, err := c.ListKeys(ContextPrefix)
	if err != nil {
		return nil, err
	}

	entries := make([]sqlite.ExportContext, 0, len(keys))
	for _, key := range keys {
		var entry sqlite.ExportContext
		if err := c.GetJSON(key, &entry); err != nil {
			return nil, fmt.Errorf("failed to pull context %s: %w", key, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SnapshotKey generates a timestamped key for a memory snapshot
func SnapshotKey(at time.Time) string {
	return SnapshotPrefix + at.UTC().Format("2006-01-02T15-04-05Z")
}

// ContextKey generates a key for a synced user context entry
func ContextKey(key string) string {
	return ContextPrefix + key
}
