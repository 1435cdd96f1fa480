// SPDX-FileCopyrightText: 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package context

import "errors"

// RegistryError is returned by the identifier registry and the UE state
// machine. Callers decide per procedure whether the peer is told.
type RegistryError string

func (e RegistryError) Error() string { return string(e) }

const (
	ErrAlreadyExists     = RegistryError("peer already exists")
	ErrUnknownPeer       = RegistryError("unknown peer")
	ErrDuplicateUe       = RegistryError("duplicate UE")
	ErrNotFound          = RegistryError("not found")
	ErrConflict          = RegistryError("identifier conflict")
	ErrIdMismatch        = RegistryError("identifier mismatch")
	ErrInvalidState      = RegistryError("invalid state")
	ErrInvalidTransition = RegistryError("invalid state transition")
	ErrPeerLimit         = RegistryError("maximum number of peers reached")
	ErrUeLimit           = RegistryError("maximum number of UEs reached")
	ErrRegistryNotEmpty  = RegistryError("registry not empty")
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindProtocolViolation
	KindResourceExhaustion
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindProtocolViolation:
		return "ProtocolViolation"
	case KindResourceExhaustion:
		return "ResourceExhaustion"
	case KindNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// KindOf classifies err. NotFound is an expected race and is not logged as
// an error by handlers.
func KindOf(err error) ErrorKind {
	var regErr RegistryError
	if !errors.As(err, &regErr) {
		return KindUnknown
	}
	switch regErr {
	case ErrNotFound, ErrUnknownPeer:
		return KindNotFound
	case ErrPeerLimit, ErrUeLimit:
		return KindResourceExhaustion
	case ErrAlreadyExists, ErrDuplicateUe, ErrConflict, ErrIdMismatch,
		ErrInvalidState, ErrInvalidTransition:
		return KindProtocolViolation
	default:
		return KindUnknown
	}
}
