package registry

import (
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bridgeoracle/bridgeoracle-go/types"
)

// Entries are keyed by the raw 256 message bytes under this prefix, with a
// single flag byte as the value.
var messageKeyPrefix = []byte("msg/")

// LevelDBStore is a durable Store backed by goleveldb. LevelDB tolerates
// concurrent readers alongside a writer, matching the registry's
// read-many-check / single-writer-commit contract.
type LevelDBStore struct {
	db *leveldb.DB
}

// OpenLevelDB opens (creating if necessary) a leveldb database at path and
// wraps it as a Store.
func OpenLevelDB(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry db at %s: %w", path, err)
	}
	return &LevelDBStore{db: db}, nil
}

// Get reports the flag stored for msg and whether msg is present.
func (s *LevelDBStore) Get(msg types.Message) (bool, bool, error) {
	value, err := s.db.Get(messageKey(msg), nil)
	if err == leveldb.ErrNotFound {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("registry db get: %w", err)
	}
	return len(value) == 1 && value[0] == 1, true, nil
}

// Put stores the flag for msg.
func (s *LevelDBStore) Put(msg types.Message, verified bool) error {
	value := []byte{0}
	if verified {
		value[0] = 1
	}
	if err := s.db.Put(messageKey(msg), value, nil); err != nil {
		return fmt.Errorf("registry db put: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (s *LevelDBStore) Close() error {
	return s.db.Close()
}

func messageKey(msg types.Message) []byte {
	key := make([]byte, 0, len(messageKeyPrefix)+types.MessageLength)
	key = append(key, messageKeyPrefix...)
	key = append(key, msg[:]...)
	return key
}
