package domain

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// Wallet is the data structure representing the daemon's single-key wallet:
// one signing key pair, one receive/change address, and the set of unspents
// it owns. The slice of unspents keeps ledger insertion order, which is the
// order coin selection consumes them in.
type Wallet struct {
	PrivateKey []byte
	PublicKey  []byte
	Address    string
	Network    string
	Unspents   []Unspent
}

// NewWallet derives the compressed public key and the P2PKH receive address
// for the given private key and returns a wallet with an empty unspent set.
func NewWallet(prvkey *btcec.PrivateKey, net *chaincfg.Params) (*Wallet, error) {
	pubkey := prvkey.PubKey().SerializeCompressed()
	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(pubkey), net)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		PrivateKey: prvkey.Serialize(),
		PublicKey:  pubkey,
		Address:    addr.EncodeAddress(),
		Network:    net.Name,
		Unspents:   make([]Unspent, 0),
	}, nil
}

// NewWalletFromKeyString accepts the wallet private key either as a 32-byte
// hex string or in WIF and returns the derived wallet.
func NewWalletFromKeyString(key string, net *chaincfg.Params) (*Wallet, error) {
	if len(key) == 64 {
		buf, err := hex.DecodeString(key)
		if err != nil {
			return nil, ErrMalformedPrivateKey
		}
		prvkey, _ := btcec.PrivKeyFromBytes(buf)
		return NewWallet(prvkey, net)
	}

	wif, err := btcutil.DecodeWIF(key)
	if err != nil {
		return nil, ErrMalformedPrivateKey
	}
	return NewWallet(wif.PrivKey, net)
}
