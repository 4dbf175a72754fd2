package simulation

import (
	"sort"

	"golang.org/x/exp/slices"
)

// TipoGasto is the expense classification of a category.
type TipoGasto string

const (
	TipoGastoFijo     TipoGasto = "Fijo"
	TipoGastoSemiFijo TipoGasto = "Semi Fijo"
	TipoGastoVariable TipoGasto = "Variable"
	TipoGastoEventual TipoGasto = "Eventual"
)

// rank returns the sort value for the classification. Categories
// without a classification sort after all classified ones.
func (t TipoGasto) rank() int {
	switch t {
	case TipoGastoFijo:
		return 1
	case TipoGastoSemiFijo:
		return 2
	case TipoGastoVariable:
		return 3
	case TipoGastoEventual:
		return 4
	default:
		return 5
	}
}

// SortState selects the base sort for categories. The stored category
// order is the tiebreak within equal keys and the whole key for
// SortCustom.
type SortState int

const (
	SortAlphabetical SortState = iota
	SortTipoGasto
	SortTipoGastoDesc
	SortCustom
)

// Category is a budget category as the reconciliation core sees it.
type Category struct {
	ID        ID
	Name      string
	TipoGasto TipoGasto
}

// SameSortGroup reports whether two categories share a sort-group
// classification under the given sort state. Drag-and-drop reorders
// are only valid between categories of the same sort group.
func SameSortGroup(a, b Category, state SortState) bool {
	switch state {
	case SortTipoGasto, SortTipoGastoDesc:
		return a.TipoGasto.rank() == b.TipoGasto.rank()
	default:
		return true
	}
}

// Subgroup is a user-created grouping of categories within one
// simulation. CategoryIDs are ordered; the invariant that a category
// belongs to at most one subgroup is owned by the persistence layer.
type Subgroup struct {
	ID          ID
	Name        string
	CategoryIDs []ID
}

// RowType tags a display row.
type RowType string

const (
	RowHeader   RowType = "header"
	RowCategory RowType = "category"
	RowSubtotal RowType = "subtotal"
)

// Row is one rendered table row.
type Row struct {
	Type       RowType `json:"type"`
	SubgroupID ID      `json:"subgroupId,omitempty"`
	CategoryID ID      `json:"categoryId,omitempty"`
}

// Input is the full configuration the row organizer works on.
type Input struct {
	Categories    []Category
	Subgroups     []Subgroup
	CategoryOrder Order
	SubgroupOrder Order
	SortState     SortState

	// Excluded categories are removed from display and from all
	// derived numbers entirely.
	Excluded IDSet

	// Expanded subgroups emit their member category rows. Header and
	// subtotal rows are emitted regardless.
	Expanded IDSet
}

// Organize produces the ordered, flattened sequence of display rows.
//
// Categories are base-sorted per SortState with the stored category
// order as tiebreak. Subgroup members render contiguously between a
// header and a subtotal row, anchored at the base-sort position of
// their first member; the stored subgroup order then decides the
// relative order of subgroup blocks among the slots they occupy,
// leaving uncategorized categories in place. A subgroup whose every
// member is excluded is suppressed entirely.
func Organize(in Input) []Row {
	return organize(in, false)
}

// traversal is the organizer's order with every subgroup expanded.
// Balance computation uses it so that collapsing a subgroup never
// changes any number.
func traversal(in Input) []Row {
	return organize(in, true)
}

type displayUnit struct {
	subgroup *Subgroup
	category *Category
	members  []Category // base-sorted, excluded members removed
}

func organize(in Input, allExpanded bool) []Row {
	sorted := baseSort(in)
	units := buildUnits(in, sorted)
	units = applySubgroupOrder(units, in.SubgroupOrder)

	rows := make([]Row, 0, len(sorted)+2*len(in.Subgroups))
	for _, unit := range units {
		if unit.category != nil {
			rows = append(rows, Row{Type: RowCategory, CategoryID: unit.category.ID})
			continue
		}

		rows = append(rows, Row{Type: RowHeader, SubgroupID: unit.subgroup.ID})
		if allExpanded || in.Expanded.Contains(unit.subgroup.ID) {
			for _, member := range unit.members {
				rows = append(rows, Row{
					Type:       RowCategory,
					SubgroupID: unit.subgroup.ID,
					CategoryID: member.ID,
				})
			}
		}
		rows = append(rows, Row{Type: RowSubtotal, SubgroupID: unit.subgroup.ID})
	}

	return rows
}

// baseSort returns the non-excluded categories in base order.
func baseSort(in Input) []Category {
	categories := make([]Category, 0, len(in.Categories))
	for _, category := range in.Categories {
		if !in.Excluded.Contains(category.ID) {
			categories = append(categories, category)
		}
	}

	// Alphabetical order is the natural order for identifiers that
	// are not part of the stored category order yet.
	alphabetical := slices.Clone(categories)
	sort.SliceStable(alphabetical, func(i, j int) bool {
		return alphabetical[i].Name < alphabetical[j].Name
	})

	ids := make([]ID, len(alphabetical))
	for i, category := range alphabetical {
		ids[i] = category.ID
	}
	customIndex := make(map[ID]int, len(ids))
	for i, id := range in.CategoryOrder.Normalize(ids) {
		customIndex[id] = i
	}

	sort.SliceStable(categories, func(i, j int) bool {
		a, b := categories[i], categories[j]

		switch in.SortState {
		case SortTipoGasto:
			if a.TipoGasto.rank() != b.TipoGasto.rank() {
				return a.TipoGasto.rank() < b.TipoGasto.rank()
			}
		case SortTipoGastoDesc:
			if a.TipoGasto.rank() != b.TipoGasto.rank() {
				return a.TipoGasto.rank() > b.TipoGasto.rank()
			}
		case SortAlphabetical:
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		}

		return customIndex[a.ID] < customIndex[b.ID]
	})

	return categories
}

// buildUnits walks the base-sorted categories and produces one display
// unit per uncategorized category and one per subgroup with at least
// one remaining member, each anchored where its first member sorts.
func buildUnits(in Input, sorted []Category) []displayUnit {
	owner := membership(in.Subgroups)
	subgroupByID := make(map[ID]*Subgroup, len(in.Subgroups))
	for i := range in.Subgroups {
		subgroupByID[in.Subgroups[i].ID] = &in.Subgroups[i]
	}

	var units []displayUnit
	unitBySubgroup := make(map[ID]int)

	for i := range sorted {
		category := sorted[i]

		subgroupID, grouped := owner[category.ID]
		if !grouped {
			units = append(units, displayUnit{category: &sorted[i]})
			continue
		}

		at, ok := unitBySubgroup[subgroupID]
		if !ok {
			at = len(units)
			unitBySubgroup[subgroupID] = at
			units = append(units, displayUnit{subgroup: subgroupByID[subgroupID]})
		}
		units[at].members = append(units[at].members, category)
	}

	return units
}

// applySubgroupOrder reorders subgroup units among the slots they
// occupy according to the stored subgroup order. Subgroups missing
// from the order keep their anchor order after all ordered ones.
func applySubgroupOrder(units []displayUnit, order Order) []displayUnit {
	var slots []int
	var blocks []displayUnit
	for i, unit := range units {
		if unit.subgroup != nil {
			slots = append(slots, i)
			blocks = append(blocks, unit)
		}
	}

	if len(blocks) < 2 {
		return units
	}

	ids := make([]ID, len(blocks))
	for i, block := range blocks {
		ids[i] = block.subgroup.ID
	}
	index := make(map[ID]int, len(ids))
	for i, id := range order.Normalize(ids) {
		index[id] = i
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		return index[blocks[i].subgroup.ID] < index[blocks[j].subgroup.ID]
	})

	for i, slot := range slots {
		units[slot] = blocks[i]
	}

	return units
}

// membership maps each category to its owning subgroup. Memberships
// are pairwise disjoint; should corrupted input violate that, the
// first subgroup wins.
func membership(subgroups []Subgroup) map[ID]ID {
	owner := make(map[ID]ID)
	for _, subgroup := range subgroups {
		for _, categoryID := range subgroup.CategoryIDs {
			if _, ok := owner[categoryID]; !ok {
				owner[categoryID] = subgroup.ID
			}
		}
	}
	return owner
}
