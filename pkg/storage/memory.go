package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// MemoryDisk keeps files in a map. Failures can be injected per operation.
type MemoryDisk struct {
	mu      sync.Mutex
	files   map[string][]byte
	fail    map[string]error
	baseURL string
}

// NewMemoryDisk returns an empty in-process disk.
func NewMemoryDisk(baseURL string) *MemoryDisk {
	return &MemoryDisk{
		files:   map[string][]byte{},
		fail:    map[string]error{},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// FailOn makes every later call of op ("put", "get", "exists", "delete")
// return err. A nil err clears the injected failure.
func (d *MemoryDisk) FailOn(op string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err == nil {
		delete(d.fail, op)
		return
	}
	d.fail[op] = err
}

// Paths lists the stored paths in sorted order.
func (d *MemoryDisk) Paths() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.files))
	for p := range d.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (d *MemoryDisk) Put(_ context.Context, p string, content []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail["put"]; err != nil {
		return err
	}
	d.files[p] = append([]byte(nil), content...)
	return nil
}

func (d *MemoryDisk) PutStream(ctx context.Context, p string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("storage/memory: read: %w", err)
	}
	return d.Put(ctx, p, data)
}

func (d *MemoryDisk) Get(_ context.Context, p string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail["get"]; err != nil {
		return nil, err
	}
	data, ok := d.files[p]
	if !ok {
		return nil, fmt.Errorf("storage/memory: get %s: %w", p, ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

func (d *MemoryDisk) Exists(_ context.Context, p string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail["exists"]; err != nil {
		return false, err
	}
	_, ok := d.files[p]
	return ok, nil
}

func (d *MemoryDisk) Delete(_ context.Context, p string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail["delete"]; err != nil {
		return err
	}
	delete(d.files, p)
	return nil
}

func (d *MemoryDisk) URL(p string) string {
	return d.baseURL + "/" + strings.TrimLeft(p, "/")
}
