package simulation

import (
	"github.com/shopspring/decimal"
)

// BudgetEntry is the per-category simulation budget.
type BudgetEntry struct {
	Efectivo        decimal.Decimal `json:"efectivo"`
	Credito         decimal.Decimal `json:"credito"`
	AhorroEfectivo  decimal.Decimal `json:"ahorroEfectivo"`
	AhorroCredito   decimal.Decimal `json:"ahorroCredito"`
	NeedsAdjustment bool            `json:"needsAdjustment"`
}

// NetSpend is the actual cash outflow of the entry: the cash amount
// minus the expected cash savings.
func (e BudgetEntry) NetSpend() decimal.Decimal {
	return e.Efectivo.Sub(e.AhorroEfectivo)
}

// Subtotal aggregates the four monetary fields of a set of entries.
type Subtotal struct {
	Efectivo       decimal.Decimal `json:"efectivo"`
	Credito        decimal.Decimal `json:"credito"`
	AhorroEfectivo decimal.Decimal `json:"ahorroEfectivo"`
	AhorroCredito  decimal.Decimal `json:"ahorroCredito"`
}

// Total is the gross budgeted spend of the subtotal.
func (s Subtotal) Total() decimal.Decimal {
	return s.Efectivo.Add(s.Credito)
}

func (s Subtotal) add(e BudgetEntry) Subtotal {
	return Subtotal{
		Efectivo:       s.Efectivo.Add(e.Efectivo),
		Credito:        s.Credito.Add(e.Credito),
		AhorroEfectivo: s.AhorroEfectivo.Add(e.AhorroEfectivo),
		AhorroCredito:  s.AhorroCredito.Add(e.AhorroCredito),
	}
}

// zeroSubtotal has all fields explicitly zero so that JSON output
// renders "0" instead of a null decimal.
func zeroSubtotal() Subtotal {
	return Subtotal{
		Efectivo:       decimal.Zero,
		Credito:        decimal.Zero,
		AhorroEfectivo: decimal.Zero,
		AhorroCredito:  decimal.Zero,
	}
}

// ReconcileInput extends the organizer input with the numbers the
// balance fold needs.
type ReconcileInput struct {
	Input

	Entries     map[ID]BudgetEntry
	TotalIncome decimal.Decimal

	// Hidden maps category and subgroup identifiers to a hidden flag.
	// Hiding is inherited: a category under a hidden subgroup is
	// effectively hidden without its own flag being touched.
	Hidden map[ID]bool
}

// EffectivelyHidden reports whether a category is hidden, either by
// its own flag or inherited from its subgroup.
func (in ReconcileInput) EffectivelyHidden(categoryID ID) bool {
	if in.Hidden[categoryID] {
		return true
	}

	owner := membership(in.Subgroups)
	if subgroupID, ok := owner[categoryID]; ok {
		return in.Hidden[subgroupID]
	}
	return false
}

// Result holds everything the reconciliation fold derives.
type Result struct {
	// Balances is the running cash balance after each category, in
	// traversal order. Hidden categories inherit the prior value.
	Balances map[ID]decimal.Decimal `json:"balances"`

	// SubgroupBalances is the running balance as of the last member
	// of each subgroup.
	SubgroupBalances map[ID]decimal.Decimal `json:"subgroupBalances"`

	// SubgroupSubtotals aggregates the effectively visible members of
	// each subgroup.
	SubgroupSubtotals map[ID]Subtotal `json:"subgroupSubtotals"`

	// Totals aggregates all effectively visible categories.
	Totals Subtotal `json:"totals"`

	// FinalBalance is the running balance after the last row. It may
	// be negative; over-budget is a valid state, not an error.
	FinalBalance decimal.Decimal `json:"finalBalance"`

	// Rows is the display row sequence the balances were computed
	// against, honoring the expand/collapse configuration.
	Rows []Row `json:"rows"`
}

// Reconcile computes running balances, subgroup subtotals and grand
// totals in a single left-to-right fold over the organizer's traversal
// order. Effectively hidden categories do not decrement the running
// balance but still record the current value, so toggling visibility
// never leaves a stale number on screen. Excluded categories are
// absent entirely.
func Reconcile(in ReconcileInput) Result {
	result := Result{
		Balances:          make(map[ID]decimal.Decimal),
		SubgroupBalances:  make(map[ID]decimal.Decimal),
		SubgroupSubtotals: make(map[ID]Subtotal),
		Totals:            zeroSubtotal(),
		Rows:              Organize(in.Input),
	}

	owner := membership(in.Subgroups)
	running := in.TotalIncome

	hidden := func(categoryID ID) bool {
		if in.Hidden[categoryID] {
			return true
		}
		if subgroupID, ok := owner[categoryID]; ok {
			return in.Hidden[subgroupID]
		}
		return false
	}

	for _, row := range traversal(in.Input) {
		if row.Type != RowCategory {
			if row.Type == RowHeader {
				if _, ok := result.SubgroupSubtotals[row.SubgroupID]; !ok {
					result.SubgroupSubtotals[row.SubgroupID] = zeroSubtotal()
					result.SubgroupBalances[row.SubgroupID] = running
				}
			}
			continue
		}

		entry := in.Entries[row.CategoryID]

		if !hidden(row.CategoryID) {
			running = running.Sub(entry.NetSpend())
			result.Totals = result.Totals.add(entry)

			if subgroupID, ok := owner[row.CategoryID]; ok {
				result.SubgroupSubtotals[subgroupID] = result.SubgroupSubtotals[subgroupID].add(entry)
			}
		}

		result.Balances[row.CategoryID] = running

		// The subtotal row always shows the balance after the
		// subgroup's last processed member.
		if subgroupID, ok := owner[row.CategoryID]; ok {
			result.SubgroupBalances[subgroupID] = running
		}
	}

	result.FinalBalance = running
	return result
}
