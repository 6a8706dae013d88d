// Package store implements the persistence layer: a narrow synchronous
// key-value backend plus the product and list collections stored on top of
// it. Every mutation is a whole-collection read-modify-write; the backend is
// the single shared mutable resource and a single local writer is assumed.
package store

import (
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// Collection keys in the backend.
const (
	productsKey = "products"
	listKey     = "listProducts"
)

// ErrKeyNotFound reports that a key has never been written. Callers use it to
// tell a first run apart from a backend failure.
var ErrKeyNotFound = errors.New("store: key not found")

// Backend is the synchronous key-value persistence interface the stores
// depend on. Both methods may fail on backend unavailability; the stores
// catch and degrade, they never escalate.
type Backend interface {
	GetString(key string) (string, error)
	SetString(key, value string) error
	Close() error
}

const boltBucket = "collections"

// BoltBackend stores string values in a single bbolt bucket. bbolt gives the
// ordered, synchronous, crash-tolerant semantics the stores assume.
type BoltBackend struct {
	db *bolt.DB
}

var _ Backend = (*BoltBackend)(nil)

// OpenBolt opens (or creates) the database file and ensures the bucket
// exists.
func OpenBolt(path string) (*BoltBackend, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt database %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create collections bucket")
	}
	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) GetString(key string) (string, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(boltBucket)).Get([]byte(key))
		if v == nil {
			return ErrKeyNotFound
		}
		value = append(value, v...)
		return nil
	})
	if err != nil {
		return "", err
	}
	return string(value), nil
}

func (b *BoltBackend) SetString(key, value string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Put([]byte(key), []byte(value))
	})
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}
