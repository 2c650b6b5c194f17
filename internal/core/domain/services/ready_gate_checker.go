package services

import (
	"fmt"

	"cleanmatex/internal/core/domain/model/issue"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/core/domain/model/tenant"
)

// Blocker codes reported by the ready gate. The codes are stable identifiers
// that operator tooling matches on; the detail part after the colon is free
// text.
const (
	BlockerRackLocationRequired   = "rack_location_required"
	BlockerAssemblyTaskMissing    = "assembly_task_missing"
	BlockerAssemblyScanIncomplete = "assembly_scan_incomplete"
	BlockerQAStatusPrefix         = "qa_status"
	BlockerOpenIssuesPrefix       = "open_issues"
)

// ReadyGateChecker is a domain service that evaluates whether an order may
// enter the READY state.
//
// Every rule is evaluated on every call. The checker never short-circuits on
// the first failure, so operators always see the complete list of blockers
// instead of fixing them one round-trip at a time.
//
// Business rules:
//   - A rack location must be assigned before an order can be racked as ready
//   - With the assembly gate enabled, an assembly task must exist and every
//     live piece must be scanned
//   - With the QA gate enabled, the QA verdict must be PASSED
//   - With the issue gate enabled, no unresolved quality issue may remain
type ReadyGateChecker struct{}

// NewReadyGateChecker creates a new ReadyGateChecker instance.
func NewReadyGateChecker() ReadyGateChecker {
	return ReadyGateChecker{}
}

// Check evaluates all readiness rules for o and returns the blocker codes for
// every rule that currently fails. An empty slice means the order is clear to
// move to READY.
//
// openIssues carries the unresolved issues currently attached to the order;
// hasAssemblyTask reports whether an assembly task exists for it. Both are
// loaded by the caller so the check itself stays free of I/O.
func (c ReadyGateChecker) Check(
	o *order.Order,
	openIssues []*issue.Issue,
	hasAssemblyTask bool,
	cfg tenant.Settings,
) ([]string, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	var blockers []string

	if o.RackLocation().IsEmpty() {
		blockers = append(blockers, BlockerRackLocationRequired)
	}

	if cfg.RequireAssemblyScan {
		if !hasAssemblyTask {
			blockers = append(blockers, BlockerAssemblyTaskMissing)
		} else if !c.allPiecesScanned(o) {
			blockers = append(blockers, BlockerAssemblyScanIncomplete)
		}
	}

	if cfg.RequireQAPass && o.QAStatus() != order.QAPassed {
		blockers = append(blockers, fmt.Sprintf("%s: %s", BlockerQAStatusPrefix, o.QAStatus()))
	}

	if cfg.BlockOnOpenIssues {
		open := 0
		for _, iss := range openIssues {
			if iss != nil && iss.IsOpen() {
				open++
			}
		}
		if open > 0 {
			blockers = append(blockers, fmt.Sprintf("%s: %d", BlockerOpenIssuesPrefix, open))
		}
	}

	return blockers, nil
}

func (c ReadyGateChecker) allPiecesScanned(o *order.Order) bool {
	for _, item := range o.LiveItems() {
		if !item.AllPiecesScanned() {
			return false
		}
	}
	return true
}
