// Package tenant provides the typed per-tenant configuration for the order
// lifecycle engine. Feature toggles are resolved once per tenant into a
// Settings value and passed explicitly into core operations instead of being
// fetched ad hoc mid-operation.
package tenant

import "time"

// Default turnaround windows applied when category lookup fails or a tenant
// has no configuration row.
const (
	DefaultTurnaround = 24 * time.Hour
	ExpressTurnaround = 12 * time.Hour
)

// Settings is the resolved per-tenant configuration. The zero value disables
// everything; use DefaultSettings for the standard gate set.
type Settings struct {
	// TrackByPiece enables piece-level tracking commands for the tenant.
	TrackByPiece bool

	// RequireAssemblyScan gates the ready transition on an existing assembly
	// task with every piece scanned.
	RequireAssemblyScan bool

	// RequireQAPass gates the ready transition on a passed QA verdict.
	RequireQAPass bool

	// BlockOnOpenIssues gates the ready transition on having no unresolved
	// quality issues.
	BlockOnOpenIssues bool

	// DefaultTurnaround is the fallback ready-by window for normal orders.
	DefaultTurnaround time.Duration

	// ExpressTurnaround is the fallback ready-by window for express orders.
	ExpressTurnaround time.Duration
}

// DefaultSettings returns the configuration applied to tenants without an
// explicit settings row: all quality gates on, standard windows.
func DefaultSettings() Settings {
	return Settings{
		TrackByPiece:        true,
		RequireAssemblyScan: true,
		RequireQAPass:       true,
		BlockOnOpenIssues:   true,
		DefaultTurnaround:   DefaultTurnaround,
		ExpressTurnaround:   ExpressTurnaround,
	}
}
