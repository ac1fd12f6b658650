// Package gitstore provides a Git plumbing-based implementation of KeyValueStore.
package gitstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/infra/crypto"
)

// Store implements domain.KeyValueStore using Git plumbing (refs and blobs).
//
// Data structure:
//
//	refs/<namespace>/
//	  kv/
//	    <key>  → blob (value)
//
// Every Set writes a new blob and moves the ref, so old values stay in the
// object database until git gc removes them. With an encryptor the blobs
// hold AES-GCM ciphertext instead of the plain value.
type Store struct {
	repo      *git.Repository
	encryptor *crypto.Encryptor // nil = plaintext blobs
	namespace string            // e.g., "duelist"
	mu        sync.RWMutex
}

// ErrInvalidKey is returned for keys that cannot be used in a ref name.
var ErrInvalidKey = errors.New("invalid key")

// Open opens the repository at path, creating a bare repository if none exists.
func Open(path, namespace string) (*Store, error) {
	repo, err := git.PlainOpen(path)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		if mkErr := os.MkdirAll(path, 0o750); mkErr != nil {
			return nil, fmt.Errorf("create repository directory: %w", mkErr)
		}
		repo, err = git.PlainInit(path, true)
		if err != nil {
			return nil, fmt.Errorf("init git repository: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	return NewWithRepo(repo, namespace), nil
}

// NewWithRepo creates a new Store with an existing repository instance.
func NewWithRepo(repo *git.Repository, namespace string) *Store {
	return &Store{
		repo:      repo,
		namespace: namespace,
	}
}

// WithEncryptor makes the store encrypt values on write and decrypt them on read.
func (s *Store) WithEncryptor(e *crypto.Encryptor) *Store {
	s.encryptor = e
	return s
}

// refPrefix returns the ref prefix for this namespace.
func (s *Store) refPrefix() string {
	return "refs/" + s.namespace + "/kv/"
}

// keyRef returns the ref name for a key.
func (s *Store) keyRef(key string) (plumbing.ReferenceName, error) {
	if !ValidKey(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return plumbing.ReferenceName(s.refPrefix() + key), nil
}

// ValidKey reports whether key can be stored: git refuses some names as a
// ref path component.
func ValidKey(key string) bool {
	if key == "" || strings.HasPrefix(key, ".") || strings.HasSuffix(key, ".lock") {
		return false
	}
	if strings.Contains(key, "..") || strings.Contains(key, "@{") {
		return false
	}
	return !strings.ContainsAny(key, " ~^:?*[\\/\t\n")
}

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	name, err := s.keyRef(key)
	if err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, err := s.repo.Reference(name, true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get key ref: %w", err)
	}

	data, err := s.readBlob(ref.Hash())
	if err != nil {
		return "", false, fmt.Errorf("read value: %w", err)
	}
	if s.encryptor != nil {
		data, err = s.encryptor.Decrypt(data)
		if err != nil {
			return "", false, fmt.Errorf("decrypt value: %w", err)
		}
	}
	return string(data), true, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := s.keyRef(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data := []byte(value)
	if s.encryptor != nil {
		data, err = s.encryptor.Encrypt(data)
		if err != nil {
			return fmt.Errorf("encrypt value: %w", err)
		}
	}

	hash, err := s.writeBlob(data)
	if err != nil {
		return err
	}

	ref := plumbing.NewHashReference(name, hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set key ref: %w", err)
	}
	return nil
}

// Close is a no-op; go-git keeps no open handles between operations.
func (s *Store) Close() error {
	return nil
}

// writeBlob writes data to a blob and returns the hash.
func (s *Store) writeBlob(data []byte) (plumbing.Hash, error) {
	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}

	if _, writeErr := writer.Write(data); writeErr != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", writeErr)
	}
	_ = writer.Close()

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}

	return hash, nil
}

// readBlob reads the full contents of a blob.
func (s *Store) readBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob data: %w", err)
	}
	return data, nil
}

// Ensure Store implements KeyValueStore.
var _ domain.KeyValueStore = (*Store)(nil)
