package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/shashiranjanraj/backoffice/config"
	"github.com/shashiranjanraj/backoffice/pkg/logger"
	"github.com/shashiranjanraj/backoffice/pkg/metrics"
)

// ─── Manager ──────────────────────────────────────────────────────────────────

// Manager holds the configured disks by name plus the default one.
type Manager struct {
	mu          sync.RWMutex
	disks       map[string]Disk
	defaultDisk string
}

// NewManager returns an empty manager whose default disk is def.
func NewManager(def string) *Manager {
	return &Manager{disks: map[string]Disk{}, defaultDisk: def}
}

// Connect boots the disks described by config. The local disk is always
// available; s3 and cloudinary boot only when configured. A default disk
// that fails to boot is an error, other failures are logged and skipped.
func Connect(ctx context.Context) (*Manager, error) {
	m := NewManager(config.StorageDefault())

	local, err := NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())
	if err != nil {
		return nil, err
	}
	m.Register("local", local)

	if config.StorageS3Bucket() != "" {
		d, err := NewS3Disk(ctx, S3Options{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			URL:      config.StorageS3URL(),
		})
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			m.Register("s3", d)
		}
	}

	if config.CloudinaryURL() != "" {
		d, err := NewCloudinaryDisk(config.CloudinaryURL())
		if err != nil {
			logger.Warn("storage: cloudinary disk disabled", "error", err)
		} else {
			m.Register("cloudinary", d)
		}
	}

	if m.defaultDisk == "memory" {
		m.Register("memory", NewMemoryDisk(config.StorageURL()))
	}

	if _, err := m.Disk(m.defaultDisk); err != nil {
		return nil, err
	}
	return m, nil
}

// Register adds d under name, counting its operations in the storage metrics.
func (m *Manager) Register(name string, d Disk) {
	m.mu.Lock()
	m.disks[name] = instrumented{name: name, Disk: d}
	m.mu.Unlock()
}

// Disk returns the named disk.
func (m *Manager) Disk(name string) (Disk, error) {
	m.mu.RLock()
	d, ok := m.disks[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Default returns the disk named by STORAGE_DISK.
func (m *Manager) Default() Disk {
	d, err := m.Disk(m.defaultDisk)
	if err != nil {
		panic(err)
	}
	return d
}

// DefaultName is the name of the default disk.
func (m *Manager) DefaultName() string { return m.defaultDisk }

// Names lists the registered disks.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.disks))
	for n := range m.disks {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Local returns the local disk, used to serve /storage.
func (m *Manager) Local() *LocalDisk {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.disks["local"].(instrumented); ok {
		if l, ok := d.Disk.(*LocalDisk); ok {
			return l
		}
	}
	return nil
}

// ─── Instrumentation ──────────────────────────────────────────────────────────

type instrumented struct {
	name string
	Disk
}

func (d instrumented) Put(ctx context.Context, p string, content []byte) error {
	err := d.Disk.Put(ctx, p, content)
	metrics.RecordStorage(d.name, "put", err)
	return err
}

func (d instrumented) PutStream(ctx context.Context, p string, r io.Reader) error {
	err := d.Disk.PutStream(ctx, p, r)
	metrics.RecordStorage(d.name, "put", err)
	return err
}

func (d instrumented) Delete(ctx context.Context, p string) error {
	err := d.Disk.Delete(ctx, p)
	metrics.RecordStorage(d.name, "delete", err)
	return err
}
