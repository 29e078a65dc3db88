// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/ava-labs/avalanchego/database"

	"github.com/cfmm-labs/pairpool/pool"
	"github.com/cfmm-labs/pairpool/pricing"
	"github.com/cfmm-labs/pairpool/token"
)

// Key prefixes
const (
	poolPrefix byte = iota
	tokenInfoPrefix
	tokenBalancePrefix
)

// One pool per database, stored under a fixed key.
func PoolKey() []byte {
	return []byte{poolPrefix}
}

func TokenInfoKey(address token.Address) []byte {
	k := make([]byte, 1+len(address))
	k[0] = tokenInfoPrefix
	copy(k[1:], address)
	return k
}

func tokenBalancePrefixKey(address token.Address) []byte {
	k := make([]byte, 1+2+len(address))
	k[0] = tokenBalancePrefix
	binary.BigEndian.PutUint16(k[1:], uint16(len(address)))
	copy(k[3:], address)
	return k
}

func TokenBalanceKey(address token.Address, account token.Address) []byte {
	return append(tokenBalancePrefixKey(address), account...)
}

func appendField(v []byte, field []byte) []byte {
	v = binary.BigEndian.AppendUint16(v, uint16(len(field)))
	return append(v, field...)
}

func readField(v []byte) ([]byte, []byte, error) {
	if len(v) < 2 {
		return nil, nil, ErrCorrupt
	}
	fieldLen := int(binary.BigEndian.Uint16(v))
	v = v[2:]
	if len(v) < fieldLen {
		return nil, nil, ErrCorrupt
	}
	return v[:fieldLen], v[fieldLen:], nil
}

// SaveToken snapshots a token ledger: one info record plus one record per
// non-zero balance. Previously persisted balances are cleared first so
// accounts emptied since the last snapshot do not linger.
func SaveToken(db *Database, t *token.Token) error {
	v := make([]byte, 0, 64)
	v = appendField(v, []byte(t.Name()))
	v = appendField(v, []byte(t.Symbol()))
	v = appendField(v, []byte(t.Metadata()))
	v = append(v, t.Decimals())
	v = appendField(v, []byte(t.Owner()))
	if err := db.Put(TokenInfoKey(t.Address()), v); err != nil {
		return err
	}

	prefix := tokenBalancePrefixKey(t.Address())
	var stale [][]byte
	if err := db.IteratePrefix(prefix, func(key []byte, _ []byte) error {
		k := make([]byte, len(key))
		copy(k, key)
		stale = append(stale, k)
		return nil
	}); err != nil {
		return err
	}
	for _, k := range stale {
		if err := db.Delete(k); err != nil {
			return err
		}
	}

	for account, balance := range t.Balances() {
		if err := db.Put(TokenBalanceKey(t.Address(), account), balance.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func LoadToken(db *Database, address token.Address) (*token.Token, error) {
	v, err := db.Get(TokenInfoKey(address))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrTokenDoesNotExist
		}
		return nil, err
	}
	name, v, err := readField(v)
	if err != nil {
		return nil, err
	}
	symbol, v, err := readField(v)
	if err != nil {
		return nil, err
	}
	metadata, v, err := readField(v)
	if err != nil {
		return nil, err
	}
	if len(v) < 1 {
		return nil, ErrCorrupt
	}
	decimals := v[0]
	owner, _, err := readField(v[1:])
	if err != nil {
		return nil, err
	}

	prefix := tokenBalancePrefixKey(address)
	balances := make(map[token.Address]*big.Int)
	if err := db.IteratePrefix(prefix, func(key []byte, value []byte) error {
		if len(key) < len(prefix) {
			return ErrCorrupt
		}
		account := token.Address(key[len(prefix):])
		balances[account] = new(big.Int).SetBytes(value)
		return nil
	}); err != nil {
		return nil, err
	}

	return token.Load(string(name), string(symbol), string(metadata), decimals, token.Address(owner), balances)
}

// SavePool snapshots the pool record and all three token ledgers. The
// curve ID is recorded so LoadPool can rebuild the same pricing curve
// from the registry.
func SavePool(db *Database, p *pool.Pool, curveID uint8) error {
	v := make([]byte, 0, 128)
	v = append(v, curveID)
	v = binary.BigEndian.AppendUint64(v, p.Fee())
	v = appendField(v, []byte(p.SymbolA()))
	v = appendField(v, []byte(p.SymbolB()))
	v = appendField(v, []byte(p.AssetA().Address()))
	v = appendField(v, []byte(p.AssetB().Address()))
	v = appendField(v, []byte(p.Receipt().Address()))
	v = appendField(v, p.ReserveA().Bytes())
	v = appendField(v, p.ReserveB().Bytes())
	if err := db.Put(PoolKey(), v); err != nil {
		return err
	}

	if err := SaveToken(db, p.AssetA()); err != nil {
		return err
	}
	if err := SaveToken(db, p.AssetB()); err != nil {
		return err
	}
	return SaveToken(db, p.Receipt())
}

func LoadPool(db *Database) (*pool.Pool, error) {
	v, err := db.Get(PoolKey())
	if err != nil {
		return nil, err
	}
	if len(v) < 1+8 {
		return nil, ErrCorrupt
	}
	curveID := v[0]
	fee := binary.BigEndian.Uint64(v[1:9])
	v = v[9:]

	symbolA, v, err := readField(v)
	if err != nil {
		return nil, err
	}
	symbolB, v, err := readField(v)
	if err != nil {
		return nil, err
	}
	assetAAddress, v, err := readField(v)
	if err != nil {
		return nil, err
	}
	assetBAddress, v, err := readField(v)
	if err != nil {
		return nil, err
	}
	receiptAddress, v, err := readField(v)
	if err != nil {
		return nil, err
	}
	reserveABytes, v, err := readField(v)
	if err != nil {
		return nil, err
	}
	reserveBBytes, _, err := readField(v)
	if err != nil {
		return nil, err
	}

	newCurve, ok := pricing.Curves[curveID]
	if !ok {
		return nil, ErrUnknownCurve
	}

	assetA, err := LoadToken(db, token.Address(assetAAddress))
	if err != nil {
		return nil, err
	}
	assetB, err := LoadToken(db, token.Address(assetBAddress))
	if err != nil {
		return nil, err
	}
	receipt, err := LoadToken(db, token.Address(receiptAddress))
	if err != nil {
		return nil, err
	}

	return pool.Load(
		assetA,
		assetB,
		string(symbolA),
		string(symbolB),
		fee,
		newCurve(),
		receipt,
		new(big.Int).SetBytes(reserveABytes),
		new(big.Int).SetBytes(reserveBBytes),
	)
}
