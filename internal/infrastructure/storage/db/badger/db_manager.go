package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/assetlock-network/lockbridge-daemon/internal/core/domain"
	"github.com/assetlock-network/lockbridge-daemon/internal/core/ports"
)

// DbManager holds all the badgerhold stores in a single data structure.
type DbManager struct {
	Store       *badgerhold.Store
	WalletStore *badgerhold.Store
}

// NewDbManager opens (or creates if not exists) the badger stores on disk.
// It expects a base data dir and an optional logger. It creates a dedicated
// directory for lock operations and for the wallet.
func NewDbManager(baseDbDir string, logger badger.Logger) (*DbManager, error) {
	operationDb, err := createDb(filepath.Join(baseDbDir, "operations"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening operations db: %w", err)
	}

	walletDb, err := createDb(filepath.Join(baseDbDir, "wallet"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening wallet db: %w", err)
	}

	return &DbManager{
		Store:       operationDb,
		WalletStore: walletDb,
	}, nil
}

// WalletRepository implements the DbManager interface
func (d *DbManager) WalletRepository() domain.WalletRepository {
	return NewWalletRepositoryImpl(d)
}

// LockOperationRepository implements the DbManager interface
func (d *DbManager) LockOperationRepository() domain.LockOperationRepository {
	return NewLockOperationRepositoryImpl(d)
}

// Close implements the DbManager interface
func (d *DbManager) Close() {
	d.Store.Close()
	d.WalletStore.Close()
}

var _ ports.DbManager = (*DbManager)(nil)

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	_, err := buff.Write(data)
	if err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (db *badgerhold.Store, err error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	db, err = badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})

	return
}
