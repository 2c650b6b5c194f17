package services_test

import (
	"testing"
	"time"

	"cleanmatex/internal/core/domain/model/issue"
	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/core/domain/model/tenant"
	"cleanmatex/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func processingOrder(t *testing.T, quantity int) *order.Order {
	t.Helper()

	o, err := order.NewOrder(order.NewOrderParams{
		ID:         kernel.NewUUID(),
		TenantID:   kernel.NewTenantID(),
		Number:     "2026-000042",
		CustomerID: kernel.NewUUID(),
		BranchID:   kernel.NewUUID(),
		Items: []order.ItemParams{{
			ProductID: kernel.NewUUID(),
			Category:  "WASH_AND_IRON",
			Quantity:  quantity,
			UnitPrice: 2.500,
		}},
	})
	require.NoError(t, err)
	return o
}

func rackOrder(t *testing.T, quantity int) *order.Order {
	t.Helper()

	o := processingOrder(t, quantity)
	rack, err := kernel.NewRackLocation("A-01")
	require.NoError(t, err)
	require.NoError(t, o.SetRackLocation(rack))
	return o
}

func scanAllPieces(t *testing.T, o *order.Order) {
	t.Helper()

	scanned := true
	for _, item := range o.LiveItems() {
		for _, p := range item.LivePieces() {
			_, err := o.UpdatePiece(p.ID(), order.PiecePatch{Scanned: &scanned})
			require.NoError(t, err)
		}
	}
}

func openIssue(t *testing.T, o *order.Order) *issue.Issue {
	t.Helper()

	iss, err := issue.NewIssue(
		kernel.NewUUID(), o.TenantID(), o.ID(), nil,
		"STAIN", "ink stain on collar", "op-7", time.Now(),
	)
	require.NoError(t, err)
	return iss
}

func TestReadyGateChecker(t *testing.T) {
	checker := services.NewReadyGateChecker()

	t.Run("clear order has no blockers", func(t *testing.T) {
		o := rackOrder(t, 2)
		scanAllPieces(t, o)
		o.SetQAStatus(order.QAPassed)

		blockers, err := checker.Check(o, nil, true, tenant.DefaultSettings())

		require.NoError(t, err)
		assert.Empty(t, blockers)
	})

	t.Run("reports every failing rule at once", func(t *testing.T) {
		o := processingOrder(t, 2)
		issues := []*issue.Issue{openIssue(t, o), openIssue(t, o)}

		blockers, err := checker.Check(o, issues, false, tenant.DefaultSettings())

		require.NoError(t, err)
		assert.Equal(t, []string{
			services.BlockerRackLocationRequired,
			services.BlockerAssemblyTaskMissing,
			"qa_status: PENDING",
			"open_issues: 2",
		}, blockers)
	})

	t.Run("unscanned pieces block assembly", func(t *testing.T) {
		o := rackOrder(t, 3)
		o.SetQAStatus(order.QAPassed)

		blockers, err := checker.Check(o, nil, true, tenant.DefaultSettings())

		require.NoError(t, err)
		assert.Equal(t, []string{services.BlockerAssemblyScanIncomplete}, blockers)
	})

	t.Run("failed QA is reported with its verdict", func(t *testing.T) {
		o := rackOrder(t, 1)
		scanAllPieces(t, o)
		o.SetQAStatus(order.QAFailed)

		blockers, err := checker.Check(o, nil, true, tenant.DefaultSettings())

		require.NoError(t, err)
		assert.Equal(t, []string{"qa_status: FAILED"}, blockers)
	})

	t.Run("resolved issues do not block", func(t *testing.T) {
		o := rackOrder(t, 1)
		scanAllPieces(t, o)
		o.SetQAStatus(order.QAPassed)

		iss := openIssue(t, o)
		require.NoError(t, iss.Resolve("treated and rewashed", "op-7", time.Now()))

		blockers, err := checker.Check(o, []*issue.Issue{iss}, true, tenant.DefaultSettings())

		require.NoError(t, err)
		assert.Empty(t, blockers)
	})

	t.Run("disabled gates are skipped", func(t *testing.T) {
		o := rackOrder(t, 2)
		cfg := tenant.Settings{}

		blockers, err := checker.Check(o, []*issue.Issue{openIssue(t, o)}, false, cfg)

		require.NoError(t, err)
		assert.Empty(t, blockers)
	})

	t.Run("invalid order fails the check", func(t *testing.T) {
		var o order.Order

		_, err := checker.Check(&o, nil, true, tenant.DefaultSettings())

		assert.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}
