package domain

// UnspentKey represent the ID of an Unspent, composed by its txid and vout.
type UnspentKey struct {
	TxID string
	VOut uint32
}

// Unspent is the data structure representing a spendable output of the base
// chain, owned by exactly one wallet. Its value is expressed in the smallest
// unit of the chain.
type Unspent struct {
	TxID         string
	VOut         uint32
	Value        uint64
	ScriptPubKey []byte
	Address      string
	Confirmed    bool
}
