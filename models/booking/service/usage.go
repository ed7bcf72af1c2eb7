package service

import (
	"github.com/MileWise/milewise-backend/pkg/transfer"
	"github.com/MileWise/milewise-backend/types"
)

// WalletUsage tracks points consumed from wallet entries over the course of a
// single strategy build, keyed by wallet entry ID. Each build owns a fresh
// overlay; the caller's WalletEntry values are never mutated, and two builds
// never observe each other's consumption.
type WalletUsage map[string]float64

// Remaining returns the entry's balance minus whatever this build has already
// reserved against it, floored at zero.
func (u WalletUsage) Remaining(entry *types.WalletEntry) float64 {
	r := entry.Balance - u[entry.ID]
	if r < 0 {
		return 0
	}
	return r
}

// Reserve records consumption of points from a wallet entry.
func (u WalletUsage) Reserve(entryID string, amount float64) {
	if amount <= 0 {
		return
	}
	u[entryID] += amount
}

// walletSource pairs a wallet entry with its catalog resolution. Free-text
// program names are resolved exactly once here, at the boundary, so the
// resolver and builder compare stable ProgramIDs instead of re-running fuzzy
// string matches per flight.
type walletSource struct {
	entry   types.WalletEntry
	program transfer.ProgramID // empty when the name resolved to nothing
}

// matchesProgram reports whether this wallet source belongs to the given
// catalog program. Resolved IDs compare directly; unresolved entries fall
// back to the lenient name matcher against the canonical name so a typo'd
// wallet entry can still participate.
func (w *walletSource) matchesProgram(id transfer.ProgramID, canonicalName string) bool {
	if w.program != "" {
		return w.program == id
	}
	return transfer.NamesMatch(w.entry.Program, canonicalName)
}

// resolveWallet copies the caller-owned entries and resolves each program
// name against the catalog.
func (s *Service) resolveWallet(wallet []types.WalletEntry) []walletSource {
	out := make([]walletSource, 0, len(wallet))
	for _, e := range wallet {
		id, _ := s.graph.ResolveProgram(e.Program)
		out = append(out, walletSource{entry: e, program: id})
	}
	return out
}
