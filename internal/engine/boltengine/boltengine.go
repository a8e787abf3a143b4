// Package boltengine is the alternate storage engine: a single bbolt.DB
// file with one bucket, standing in for the original project's sled
// collaborator. It satisfies the same internal/engine.Engine contract as
// the default log-structured kvs engine.
package boltengine

import (
	stdErrors "errors"
	"path/filepath"
	"unicode/utf8"

	"github.com/iamNilotpal/ignite/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// ErrKeyNotFound mirrors kvs.ErrKeyNotFound's exact text; client/CLI code
// matches on this message regardless of which engine produced it.
var ErrKeyNotFound = stdErrors.New("Key not found")

var bucketName = []byte("ignite")

// Engine wraps a single bbolt database file.
type Engine struct {
	db  *bolt.DB
	log *zap.SugaredLogger
}

// Open opens (creating if necessary) "bolt.db" inside dataDir and ensures
// the single bucket all keys live in exists.
func Open(dataDir string, log *zap.SugaredLogger) (*Engine, error) {
	path := filepath.Join(dataDir, "bolt.db")
	db, err := bolt.Open(path, 0644, nil)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to open bolt database").
			WithPath(path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to create bolt bucket")
	}

	log.Infow("bolt engine opened", "path", path)
	return &Engine{db: db, log: log}, nil
}

// Set inserts or overwrites key with value.
func (e *Engine) Set(key, value string) error {
	return e.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), []byte(value))
	})
}

// Get returns the current value for key, validating it decodes as UTF-8.
// bbolt stores raw bytes rather than text this engine encoded itself, so a
// foreign or corrupted database can surface values that are not valid UTF-8.
func (e *Engine) Get(key string) (string, bool, error) {
	var value []byte
	var found bool

	err := e.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v == nil {
			return nil
		}
		found = true
		value = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return "", false, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to read key").
			WithDetail("key", key)
	}
	if !found {
		return "", false, nil
	}

	if !utf8.Valid(value) {
		return "", false, errors.NewStorageError(
			nil, errors.ErrorCodeUtf8, "stored value is not valid UTF-8",
		).WithDetail("key", key)
	}

	return string(value), true, nil
}

// Remove deletes key, returning ErrKeyNotFound if it was absent beforehand.
func (e *Engine) Remove(key string) error {
	return e.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b.Get([]byte(key)) == nil {
			return ErrKeyNotFound
		}
		return b.Delete([]byte(key))
	})
}

// Close closes the underlying bbolt database.
func (e *Engine) Close() error {
	if err := e.db.Close(); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to close bolt database")
	}
	return nil
}
