package domain

import (
	"time"
)

// OperationKind discriminates the two continuation slots: one for an identity
// registration in progress and one for a top-up in progress.
type OperationKind string

const (
	// OperationKindRegistration ...
	OperationKindRegistration OperationKind = "registration"
	// OperationKindTopUp ...
	OperationKindTopUp OperationKind = "topup"
)

// IsValid returns whether the kind matches one of the two known slots.
func (k OperationKind) IsValid() bool {
	return k == OperationKindRegistration || k == OperationKindTopUp
}

const (
	// OperationStatusCodeEmpty is the status of a freshly created operation.
	OperationStatusCodeEmpty = iota
	// OperationStatusCodeLocked is the status of an operation holding a
	// built and signed asset-lock transaction not yet known to be broadcast.
	OperationStatusCodeLocked
	// OperationStatusCodeBroadcast is the status of an operation whose
	// transaction has been accepted by the base network.
	OperationStatusCodeBroadcast
	// OperationStatusCodeProofReady is the status of an operation holding the
	// cryptographic proof of its lock.
	OperationStatusCodeProofReady
	// OperationStatusCodePayloadReady is the status of an operation holding
	// the platform-side payload generated after the proof, ready for
	// submission to the platform layer.
	OperationStatusCodePayloadReady
)

// OperationStatus represents the different statuses that a lock operation can
// assume.
type OperationStatus struct {
	Code int
}

// AssetLockProof is the opaque attestation binding a lock transaction output
// to the requester, obtained from the attestation stream. Immutable once
// obtained.
type AssetLockProof struct {
	TxID      string
	OutIndex  uint32
	BlockHash string
	Signature []byte
}

// RegistrationPayload holds the operation-specific data generated after the
// proof is obtained, like freshly generated identity key material, so that a
// crash before platform submission does not force re-locking funds.
type RegistrationPayload struct {
	Target      string
	PublicKeys  [][]byte
	PrivateKeys [][]byte
}

// LockOperation is the continuation state of an in-flight lock-and-register
// or lock-and-top-up flow. It is persisted after every mutation and cleared
// only once the downstream platform operation succeeds. The one-time key it
// carries is owned by the slot alone and must never enter the wallet's own
// key material.
type LockOperation struct {
	Kind        OperationKind
	Status      OperationStatus
	Amount      uint64
	Transaction []byte
	TxID        string
	OneTimeKey  []byte
	Proof       *AssetLockProof
	Payload     *RegistrationPayload
	CreatedAt   int64
	UpdatedAt   int64
}

// NewLockOperation returns an empty operation for the given slot.
func NewLockOperation(kind OperationKind) *LockOperation {
	now := time.Now().Unix()
	return &LockOperation{
		Kind:      kind,
		Status:    OperationStatus{Code: OperationStatusCodeEmpty},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Lock brings an Empty operation to the Locked status with the serialized
// asset-lock transaction, its id and the one-time private key needed later to
// claim the lock proof.
func (o *LockOperation) Lock(
	amount uint64, transaction []byte, txID string, oneTimeKey []byte,
) (bool, error) {
	if o.Status.Code >= OperationStatusCodeLocked {
		return true, nil
	}

	o.Amount = amount
	o.Transaction = transaction
	o.TxID = txID
	o.OneTimeKey = oneTimeKey
	o.Status.Code = OperationStatusCodeLocked
	o.UpdatedAt = time.Now().Unix()
	return true, nil
}

// MarkBroadcast brings the operation from the Locked to the Broadcast status
// once the base network has accepted (or is known to already hold) its
// transaction.
func (o *LockOperation) MarkBroadcast() (bool, error) {
	if o.Status.Code >= OperationStatusCodeBroadcast {
		return true, nil
	}

	if o.Status.Code != OperationStatusCodeLocked {
		return false, ErrOperationMustBeLocked
	}

	o.Status.Code = OperationStatusCodeBroadcast
	o.UpdatedAt = time.Now().Unix()
	return true, nil
}

// RecordProof brings the operation from the Broadcast to the ProofReady
// status with the obtained lock proof.
func (o *LockOperation) RecordProof(proof *AssetLockProof) (bool, error) {
	if o.Status.Code >= OperationStatusCodeProofReady {
		return true, nil
	}

	if o.Status.Code != OperationStatusCodeBroadcast {
		return false, ErrOperationMustBeBroadcast
	}

	o.Proof = proof
	o.Status.Code = OperationStatusCodeProofReady
	o.UpdatedAt = time.Now().Unix()
	return true, nil
}

// RecordPayload brings the operation from the ProofReady to the PayloadReady
// status with the platform-side data generated after the proof. Recording a
// payload on an operation without a proof is rejected, so that a persisted
// payload always implies a persisted proof.
func (o *LockOperation) RecordPayload(payload *RegistrationPayload) (bool, error) {
	if o.Status.Code >= OperationStatusCodePayloadReady {
		return true, nil
	}

	if o.Status.Code != OperationStatusCodeProofReady {
		return false, ErrOperationMustHaveProof
	}

	o.Payload = payload
	o.Status.Code = OperationStatusCodePayloadReady
	o.UpdatedAt = time.Now().Unix()
	return true, nil
}

// IsEmpty returns whether the operation slot holds no in-flight flow.
func (o *LockOperation) IsEmpty() bool {
	return o.Status.Code == OperationStatusCodeEmpty
}

// IsLocked returns whether the operation holds a signed transaction.
func (o *LockOperation) IsLocked() bool {
	return o.Status.Code >= OperationStatusCodeLocked
}

// IsBroadcast returns whether the operation transaction is known to the base
// network.
func (o *LockOperation) IsBroadcast() bool {
	return o.Status.Code >= OperationStatusCodeBroadcast
}

// HasProof returns whether the lock proof has been obtained.
func (o *LockOperation) HasProof() bool {
	return o.Status.Code >= OperationStatusCodeProofReady
}

// HasPayload returns whether the platform-side payload has been generated.
func (o *LockOperation) HasPayload() bool {
	return o.Status.Code >= OperationStatusCodePayloadReady
}
