// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
)

// Database is a thin wrapper around pebble that maps its sentinel errors
// onto the database error space the rest of the code checks against.
type Database struct {
	db *pebble.DB
}

func NewDatabase(dir string) (*Database, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &Database{db: db}, nil
}

func (d *Database) Get(key []byte) ([]byte, error) {
	v, closer, err := d.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	// [v] is only valid until closer.Close()
	value := make([]byte, len(v))
	copy(value, v)
	if err := closer.Close(); err != nil {
		return nil, err
	}
	return value, nil
}

func (d *Database) Put(key []byte, value []byte) error {
	return d.db.Set(key, value, pebble.Sync)
}

func (d *Database) Delete(key []byte) error {
	return d.db.Delete(key, pebble.Sync)
}

// IteratePrefix invokes f for every key/value pair under prefix. Values
// are only valid for the duration of the callback.
func (d *Database) IteratePrefix(prefix []byte, f func(key []byte, value []byte) error) error {
	var upperBound []byte
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] != 0xff {
			upperBound = make([]byte, i+1)
			copy(upperBound, prefix[:i+1])
			upperBound[i]++
			break
		}
	}
	iter, err := d.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound,
	})
	if err != nil {
		return err
	}
	for iter.First(); iter.Valid(); iter.Next() {
		if err := f(iter.Key(), iter.Value()); err != nil {
			_ = iter.Close()
			return err
		}
	}
	return iter.Close()
}

func (d *Database) Close() error {
	return d.db.Close()
}
