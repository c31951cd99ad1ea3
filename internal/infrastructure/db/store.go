// Package db internal/infrastructure/db/store.go
package db

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v3"
)

// Key prefixes for the two entity kinds plus the email uniqueness index.
// The email index maps an address to the ID of the account holding it and
// is maintained in the same transaction as the account record, which is
// what makes duplicate detection atomic.
const (
	accountPrefix = "account:"
	orderPrefix   = "order:"
	emailPrefix   = "account_email:"

	accountSeqKey = "seq:account"
	orderSeqKey   = "seq:order"

	seqBandwidth = 64
)

// Store wraps a BadgerDB handle together with the ID sequences for both
// entity kinds. Repositories share one Store.
type Store struct {
	db         *badger.DB
	accountSeq *badger.Sequence
	orderSeq   *badger.Sequence
}

// NewStore acquires the entity ID sequences on the given database
func NewStore(badgerDB *badger.DB) (*Store, error) {
	accountSeq, err := badgerDB.GetSequence([]byte(accountSeqKey), seqBandwidth)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire account sequence: %w", err)
	}

	orderSeq, err := badgerDB.GetSequence([]byte(orderSeqKey), seqBandwidth)
	if err != nil {
		_ = accountSeq.Release()
		return nil, fmt.Errorf("failed to acquire order sequence: %w", err)
	}

	return &Store{
		db:         badgerDB,
		accountSeq: accountSeq,
		orderSeq:   orderSeq,
	}, nil
}

// Close releases the ID sequences. The underlying database handle is owned
// by the caller and is not closed here.
func (s *Store) Close() error {
	if err := s.accountSeq.Release(); err != nil {
		return fmt.Errorf("failed to release account sequence: %w", err)
	}
	if err := s.orderSeq.Release(); err != nil {
		return fmt.Errorf("failed to release order sequence: %w", err)
	}
	return nil
}

// NextAccountID assigns a fresh account key. Keys are always > 0.
func (s *Store) NextAccountID() (uint64, error) {
	return nextID(s.accountSeq)
}

// NextOrderID assigns a fresh order key. Keys are always > 0.
func (s *Store) NextOrderID() (uint64, error) {
	return nextID(s.orderSeq)
}

// nextID draws from a sequence, skipping the zero value Badger hands out
// first so that assigned keys are never 0.
func nextID(seq *badger.Sequence) (uint64, error) {
	id, err := seq.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to assign key: %w", err)
	}

	if id == 0 {
		id, err = seq.Next()
		if err != nil {
			return 0, fmt.Errorf("failed to assign key: %w", err)
		}
	}

	return id, nil
}

func accountKey(id uint64) []byte {
	return []byte(accountPrefix + strconv.FormatUint(id, 10))
}

func orderKey(id uint64) []byte {
	return []byte(orderPrefix + strconv.FormatUint(id, 10))
}

func emailKey(email string) []byte {
	return []byte(emailPrefix + email)
}

// isBlank reports whether a string is empty or whitespace only
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// keyExists probes for a key inside an open transaction
func keyExists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
