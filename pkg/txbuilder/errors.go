package txbuilder

import "errors"

var (
	// ErrEmptyInputs ...
	ErrEmptyInputs = errors.New("input list must not be empty")
	// ErrZeroLockAmount ...
	ErrZeroLockAmount = errors.New("lock amount must not be zero")
	// ErrZeroInputAmount ...
	ErrZeroInputAmount = errors.New("input amount must not be zero")
	// ErrNullInputScript ...
	ErrNullInputScript = errors.New("input script must not be null")
	// ErrNullSigningKey ...
	ErrNullSigningKey = errors.New("signing key must not be null")
	// ErrNullNetParams ...
	ErrNullNetParams = errors.New("network params must not be null")
	// ErrInvalidInputTxID ...
	ErrInvalidInputTxID = errors.New("input txid must be a 32-byte hash in hex format")
	// ErrInvalidChangeAddress ...
	ErrInvalidChangeAddress = errors.New("change address must be a valid address")
	// ErrInputsChangeMismatch ...
	ErrInputsChangeMismatch = errors.New(
		"sum of input values must equal lock amount plus change",
	)
	// ErrInsufficientFunds is thrown when the change cannot cover the network
	// fee, which would make the transaction unbroadcastable.
	ErrInsufficientFunds = errors.New("change amount must at least cover the network fee")
	// ErrMalformedTransaction ...
	ErrMalformedTransaction = errors.New("malformed serialized asset-lock transaction")
	// ErrMalformedSignatureScript ...
	ErrMalformedSignatureScript = errors.New(
		"signature script must push a DER signature and a compressed public key",
	)
)
