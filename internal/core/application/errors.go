package application

import "errors"

var (
	// ErrProofTimeout is returned when no lock attestation is observed within
	// the configured wait timeout. The operation state is left untouched, so
	// the same operation can be retried safely.
	ErrProofTimeout = errors.New("timed out while waiting for the lock proof")
	// ErrProofStreamClosed is returned when the attestation stream terminates
	// without an error before the proof is observed.
	ErrProofStreamClosed = errors.New("proof stream closed before the lock proof was observed")
	// ErrOperationAmountMismatch is returned when resuming an operation with
	// an amount different from the one its transaction already locks.
	ErrOperationAmountMismatch = errors.New("an operation of this kind is already in progress for a different amount")
	// ErrOperationTargetMismatch is returned when resuming a top-up with an
	// identity different from the one already recorded in its payload.
	ErrOperationTargetMismatch = errors.New("a top-up is already in progress for a different identity")
	// ErrWalletKeyMismatch is returned when the configured private key does
	// not match the wallet already stored in the datadir.
	ErrWalletKeyMismatch = errors.New("the provided private key does not match the stored wallet")
)
