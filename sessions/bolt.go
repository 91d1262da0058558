package sessions

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var revokedBucket = []byte("RevokedTokens")

// BoltStore keeps revoked token IDs in an embedded bbolt file, for
// deployments without Redis. Expired entries are swept on each Revoke.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(revokedBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if time.Until(until) <= 0 {
		return nil
	}
	now := time.Now()
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(revokedBucket)
		// sweep expired entries before adding the new one
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if exp, err := time.Parse(time.RFC3339, string(v)); err == nil && exp.Before(now) {
				if err := c.Delete(); err != nil {
					return err
				}
			}
		}
		return b.Put([]byte(tokenID), []byte(until.UTC().Format(time.RFC3339)))
	})
}

func (s *BoltStore) Revoked(_ context.Context, tokenID string) (bool, error) {
	var revoked bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(revokedBucket).Get([]byte(tokenID))
		if v == nil {
			return nil
		}
		exp, err := time.Parse(time.RFC3339, string(v))
		if err != nil {
			revoked = true // unreadable entry stays denied
			return nil
		}
		revoked = time.Now().Before(exp)
		return nil
	})
	return revoked, err
}

func (s *BoltStore) Close() error { return s.db.Close() }
