package order

import (
	"fmt"

	"cleanmatex/internal/pkg/errs"
)

// Status represents the workflow state of an order. The default lifecycle is
// a linear chain; tenants may restrict it to a subset through the transition
// validator, which owns the authoritative allowed/blocked decision.
//
// Default chain:
//
//	Draft -> Intake -> Preparation -> Sorting -> Washing -> Drying ->
//	Finishing -> Assembly -> QA -> Packing -> Ready -> OutForDelivery ->
//	Delivered -> Closed
//
// Retail-only orders skip the chain entirely and are created in Closed.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	Draft
	Intake
	Preparation
	Sorting
	Washing
	Drying
	Finishing
	Assembly
	QA
	Packing
	Ready
	OutForDelivery
	Delivered
	Closed
)

// statusChain holds the default linear workflow in order.
var statusChain = []Status{
	Draft, Intake, Preparation, Sorting, Washing, Drying, Finishing,
	Assembly, QA, Packing, Ready, OutForDelivery, Delivered, Closed,
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Draft:          "DRAFT",
		Intake:         "INTAKE",
		Preparation:    "PREPARATION",
		Sorting:        "SORTING",
		Washing:        "WASHING",
		Drying:         "DRYING",
		Finishing:      "FINISHING",
		Assembly:       "ASSEMBLY",
		QA:             "QA",
		Packing:        "PACKING",
		Ready:          "READY",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Closed:         "CLOSED",
	}
}

// StatusFromString resolves a workflow code (e.g. "WASHING") to its Status.
func StatusFromString(code string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == code && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status code", code))
}

// Validate checks that the Status is one of the defined workflow states.
func (s Status) Validate() error {
	if s <= Unknown || s > Closed {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the workflow code for the status.
// Implements fmt.Stringer; safe on any value including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// DefaultNext returns the successor in the default linear chain.
// The second return value is false for Closed and for invalid statuses.
func (s Status) DefaultNext() (Status, bool) {
	for i, status := range statusChain {
		if status == s && i+1 < len(statusChain) {
			return statusChain[i+1], true
		}
	}
	return Unknown, false
}

// IsTerminal reports whether no further transitions exist.
func (s Status) IsTerminal() bool {
	return s == Closed
}

// Stage is the coarse phase an order sits in, derived from its status except
// at creation, where quick-drop orders start in StagePreparing while already
// holding Intake status.
type Stage int

const (
	StageUnknown Stage = iota
	StagePreparing
	StageProcessing
	StageReady
	StageFinished
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageUnknown:    "UNKNOWN",
		StagePreparing:  "PREPARING",
		StageProcessing: "PROCESSING",
		StageReady:      "READY",
		StageFinished:   "FINISHED",
	}
}

// String returns the stage code.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StageFromString resolves a stage code (e.g. "PROCESSING") to its Stage.
func StageFromString(code string) (Stage, error) {
	for stage, str := range getStageStrings() {
		if str == code && stage != StageUnknown {
			return stage, nil
		}
	}
	return StageUnknown, errs.NewValueIsInvalidErrorWithCause("stage",
		fmt.Errorf("%q is not a valid stage code", code))
}

// Validate checks that the Stage is one of the defined phases.
func (s Stage) Validate() error {
	if s <= StageUnknown || s > StageFinished {
		return errs.NewValueIsInvalidErrorWithCause("stage",
			fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// StageFor maps a workflow status to the stage an order enters with it.
func StageFor(status Status) Stage {
	switch {
	case status == Preparation:
		return StagePreparing
	case status >= Draft && status <= Packing:
		return StageProcessing
	case status >= Ready && status <= Delivered:
		return StageReady
	case status == Closed:
		return StageFinished
	default:
		return StageUnknown
	}
}

// QAStatus tracks the quality-assurance verdict for an order. Entering the
// ready state requires QAPassed when the tenant enables the QA gate.
type QAStatus int

const (
	QAPending QAStatus = iota
	QAPassed
	QAFailed
)

func getQAStatusStrings() map[QAStatus]string {
	return map[QAStatus]string{
		QAPending: "PENDING",
		QAPassed:  "PASSED",
		QAFailed:  "FAILED",
	}
}

// String returns the QA verdict code.
func (s QAStatus) String() string {
	if str, ok := getQAStatusStrings()[s]; ok {
		return str
	}
	return "PENDING"
}

// QAStatusFromString resolves a QA verdict code to its QAStatus.
func QAStatusFromString(code string) (QAStatus, error) {
	for status, str := range getQAStatusStrings() {
		if str == code {
			return status, nil
		}
	}
	return QAPending, errs.NewValueIsInvalidErrorWithCause("qa status",
		fmt.Errorf("%q is not a valid qa status code", code))
}
