// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package cache

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/pinpoint/core"
)

// BadgerCache implements Cache on top of BadgerDB, with native TTL handling.
type BadgerCache struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ Cache = (*BadgerCache)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenCache opens a BadgerDB-backed cache at the specified path.
// Creates the directory if it doesn't exist. With inMemory set, path is
// ignored and nothing touches the disk.
func OpenCache(filePath string, inMemory bool) (*BadgerCache, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BadgerCache{
		db:     db,
		logger: slog.Default().With("component", "badger-cache"),
	}, nil
}

// GetResults returns the cached results for key, or ErrNotFound.
func (c *BadgerCache) GetResults(ctx context.Context, key core.ID) ([]*core.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var results []*core.SearchResult
	err := c.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeKey(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, err := UnmarshalResults(val)
			if err != nil {
				c.logger.Warn("dropping undecodable cache entry", "key", uint64(key), "err", err)
				return ErrCorruptEntry
			}
			results = decoded
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// SetResults stores results under key with the given TTL.
func (c *BadgerCache) SetResults(ctx context.Context, key core.ID, results []*core.SearchResult, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.db.Update(func(tx *badger.Txn) error {
		entry := badger.NewEntry(makeKey(key), MarshalResults(results))
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return tx.SetEntry(entry)
	})
}

// Close closes the underlying database.
func (c *BadgerCache) Close() error {
	return c.db.Close()
}

const keyPrefix = 'r'

func makeKey(key core.ID) []byte {
	bs := make([]byte, 9)
	bs[0] = keyPrefix
	binary.BigEndian.PutUint64(bs[1:], uint64(key))
	return bs
}
