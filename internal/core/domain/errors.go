package domain

import "errors"

var (
	// ErrInsufficientFunds is thrown when the wallet's unspents do not cover
	// the requested amount, or when the change left by coin selection cannot
	// cover the network fee.
	ErrInsufficientFunds = errors.New("wallet does not have enough funds")
	// ErrWalletNotFound ...
	ErrWalletNotFound = errors.New("no wallet found")
	// ErrWalletAlreadyExists ...
	ErrWalletAlreadyExists = errors.New("a wallet already exists")
	// ErrMalformedPrivateKey ...
	ErrMalformedPrivateKey = errors.New("private key must be either a 32-byte hex string or a WIF")
	// ErrOperationNotFound ...
	ErrOperationNotFound = errors.New("no lock operation found")
	// ErrOperationMustBeEmpty is thrown when trying to lock funds on a slot
	// that already holds an in-flight operation.
	ErrOperationMustBeEmpty = errors.New("lock operation must be empty")
	// ErrOperationMustBeLocked is thrown when trying to mark as broadcast an
	// operation that has no transaction yet.
	ErrOperationMustBeLocked = errors.New("lock operation must hold a transaction")
	// ErrOperationMustBeBroadcast is thrown when recording a proof for an
	// operation whose transaction was never broadcast.
	ErrOperationMustBeBroadcast = errors.New("lock operation transaction must be broadcast")
	// ErrOperationMustHaveProof is thrown when recording a payload before the
	// lock proof has been obtained.
	ErrOperationMustHaveProof = errors.New("lock operation must hold a proof")
	// ErrOperationInvalidKind ...
	ErrOperationInvalidKind = errors.New("lock operation kind must be either registration or topup")
)
