// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package message

import (
	"github.com/omec-project/aper"
	"github.com/omec-project/n2gw/context"
	"github.com/omec-project/ngap/ngapType"
)

// Used in IE RRC Establishment Cause field for cause types
const (
	EstablishmentCauseEmergency          = 0
	EstablishmentCauseHighPriorityAccess = 1
	EstablishmentCauseMT_Access          = 2
	EstablishmentCauseMO_Signalling      = 3
	EstablishmentCauseMO_Data            = 4
	EstablishmentCauseMPS_PriorityAccess = 8
	EstablishmentCauseMCS_PriorityAccess = 9
)

const (
	MaxNumOfTAIForPaging = 16
	MaxNumOfServedGuami  = 256
	MaxNumOfSlice        = 1024
	SecurityKeyLength    = 32 // octets, 256 bits
)

// Default UE security capabilities advertised in Initial Context Setup
// Request: NEA0/1/2 and NIA1/2 for NR, the same set for E-UTRA.
var (
	defaultNrEncryptionAlgorithms    = uint16Bits(0xe000)
	defaultNrIntegrityAlgorithms     = uint16Bits(0x6000)
	defaultEutraEncryptionAlgorithms = uint16Bits(0xe000)
	defaultEutraIntegrityAlgorithms  = uint16Bits(0x6000)
)

func uint16Bits(v uint16) aper.BitString {
	return aper.BitString{Bytes: []byte{byte(v >> 8), byte(v)}, BitLength: 16}
}

func BuildCause(present int, value aper.Enumerated) *ngapType.Cause {
	cause := new(ngapType.Cause)
	cause.Present = present
	switch present {
	case ngapType.CausePresentRadioNetwork:
		cause.RadioNetwork = &ngapType.CauseRadioNetwork{Value: value}
	case ngapType.CausePresentTransport:
		cause.Transport = &ngapType.CauseTransport{Value: value}
	case ngapType.CausePresentNas:
		cause.Nas = &ngapType.CauseNas{Value: value}
	case ngapType.CausePresentProtocol:
		cause.Protocol = &ngapType.CauseProtocol{Value: value}
	case ngapType.CausePresentMisc:
		cause.Misc = &ngapType.CauseMisc{Value: value}
	default:
		return nil
	}
	return cause
}

// ReleaseCauseToNgap maps the release reason given by the mobility task to
// the cause carried in UE Context Release Command.
func ReleaseCauseToNgap(cause context.ReleaseCause) *ngapType.Cause {
	switch cause {
	case context.ReleaseCauseNormal:
		return BuildCause(ngapType.CausePresentNas, ngapType.CauseNasPresentNormalRelease)
	case context.ReleaseCauseUserInactivity:
		return BuildCause(ngapType.CausePresentRadioNetwork, ngapType.CauseRadioNetworkPresentUserInactivity)
	case context.ReleaseCauseRadioConnectionLost:
		return BuildCause(ngapType.CausePresentRadioNetwork,
			ngapType.CauseRadioNetworkPresentRadioConnectionWithUeLost)
	case context.ReleaseCauseUnknownCoreUeId:
		return BuildCause(ngapType.CausePresentRadioNetwork, ngapType.CauseRadioNetworkPresentUnknownLocalUENGAPID)
	case context.ReleaseCauseContextSetupFailed:
		return BuildCause(ngapType.CausePresentRadioNetwork,
			ngapType.CauseRadioNetworkPresentReleaseDueTo5gcGeneratedReason)
	default:
		return BuildCause(ngapType.CausePresentRadioNetwork, ngapType.CauseRadioNetworkPresentUnspecified)
	}
}

// ReleaseCauseFromNgap maps a cause received from the radio node to the
// reason forwarded to the mobility task.
func ReleaseCauseFromNgap(cause *ngapType.Cause) context.ReleaseCause {
	if cause == nil {
		return context.ReleaseCauseNormal
	}
	if cause.Present == ngapType.CausePresentRadioNetwork && cause.RadioNetwork != nil {
		switch cause.RadioNetwork.Value {
		case ngapType.CauseRadioNetworkPresentUserInactivity:
			return context.ReleaseCauseUserInactivity
		case ngapType.CauseRadioNetworkPresentRadioConnectionWithUeLost:
			return context.ReleaseCauseRadioConnectionLost
		case ngapType.CauseRadioNetworkPresentUnknownLocalUENGAPID:
			return context.ReleaseCauseUnknownCoreUeId
		}
	}
	return context.ReleaseCauseNormal
}
