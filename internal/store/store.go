// Package store keeps whole-collection JSON documents behind a pluggable backend.
//
// Every read returns the full collection and every write replaces it. Callers that
// read, modify and write a document hold its lock for the whole cycle.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
)

const (
	Products      = "products"
	Orders        = "orders"
	Customers     = "customers"
	InventoryLogs = "inventory_logs"
)

type Backend interface {
	// Read returns ErrNotFound when the document has never been written.
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Name() string
	Close() error
}

type Store struct {
	backend Backend

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(backend Backend) *Store {
	return &Store{
		backend: backend,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (s *Store) BackendName() string {
	return s.backend.Name()
}

func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) lockFor(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

// Lock acquires the named document locks in sorted order and returns a func releasing them.
func (s *Store) Lock(names ...string) func() {
	sorted := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			sorted = append(sorted, n)
		}
	}
	sort.Strings(sorted)

	held := make([]*sync.Mutex, 0, len(sorted))
	for _, n := range sorted {
		l := s.lockFor(n)
		l.Lock()
		held = append(held, l)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

// Load decodes the named document into dst. An absent or blank document yields ErrNotFound,
// an undecodable one a *CorruptionError.
func (s *Store) Load(ctx context.Context, name string, dst any) error {
	data, err := s.backend.Read(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("read %s: %w", name, err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrNotFound
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return &CorruptionError{Name: name, Err: err}
	}
	return nil
}

// Save replaces the named document with doc.
func (s *Store) Save(ctx context.Context, name string, doc any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	if err := s.backend.Write(ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// LoadOrDefault returns def when the document is absent or corrupt. Corruption is logged
// because the next save overwrites whatever was there.
func LoadOrDefault[T any](ctx context.Context, s *Store, name string, def T) (T, error) {
	var doc T
	err := s.Load(ctx, name, &doc)
	if err == nil {
		return doc, nil
	}

	var corrupt *CorruptionError
	switch {
	case errors.Is(err, ErrNotFound):
		return def, nil
	case errors.As(err, &corrupt):
		log.Printf("WARN: %v; using an empty %s collection", corrupt, name)
		return def, nil
	default:
		return def, err
	}
}

// Collection is a typed view of a list document.
type Collection[T any] struct {
	store *Store
	name  string
}

func NewCollection[T any](s *Store, name string) Collection[T] {
	return Collection[T]{store: s, name: name}
}

func (c Collection[T]) Name() string {
	return c.name
}

func (c Collection[T]) All(ctx context.Context) ([]T, error) {
	items, err := LoadOrDefault(ctx, c.store, c.name, []T{})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c Collection[T]) Put(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	return c.store.Save(ctx, c.name, items)
}
