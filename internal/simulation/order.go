package simulation

import "golang.org/x/exp/slices"

// Order is a user-manipulable total order over identifiers. Orders are
// append-only-safe: identifiers missing from a stored order sort after
// all ordered ones, and identifiers referring to deleted entities are
// ignored.
type Order []ID

// IndexOf returns the position of the identifier, or -1 if it is not
// part of the order.
func (o Order) IndexOf(id ID) int {
	return slices.Index(o, id)
}

// Contains reports whether the identifier is part of the order.
func (o Order) Contains(id ID) bool {
	return o.IndexOf(id) >= 0
}

// Normalize returns the order restricted to known identifiers, with all
// known identifiers that are not yet ordered appended at the end in the
// order they are passed in. The relative order of already-ordered
// identifiers is never disturbed.
func (o Order) Normalize(known []ID) Order {
	knownSet := NewIDSet(known...)
	normalized := make(Order, 0, len(known))
	seen := make(IDSet, len(known))

	for _, id := range o {
		if knownSet.Contains(id) && !seen.Contains(id) {
			normalized = append(normalized, id)
			seen[id] = struct{}{}
		}
	}

	for _, id := range known {
		if !seen.Contains(id) {
			normalized = append(normalized, id)
			seen[id] = struct{}{}
		}
	}

	return normalized
}

// Move reorders the dragged identifier adjacent to the target using
// list-reorder splice semantics: the dragged element is removed and
// ends up at the target's original position, landing after the target
// when it originally sat before it and before the target otherwise.
// All other elements keep their relative order. Dropping an element
// onto itself, or moving with an unknown dragged or target identifier,
// returns the order unchanged.
func (o Order) Move(dragged, target ID) Order {
	di := o.IndexOf(dragged)
	ti := o.IndexOf(target)
	if di < 0 || ti < 0 || di == ti {
		return slices.Clone(o)
	}

	return o.spliceTo(dragged, ti)
}

// MoveBefore reorders the moved identifier directly before the target.
func (o Order) MoveBefore(moved, target ID) Order {
	mi := o.IndexOf(moved)
	ti := o.IndexOf(target)
	if mi < 0 || ti < 0 || mi == ti {
		return slices.Clone(o)
	}

	at := ti
	if mi < ti {
		at = ti - 1
	}
	return o.spliceTo(moved, at)
}

// MoveAfter reorders the moved identifier directly after the target.
func (o Order) MoveAfter(moved, target ID) Order {
	mi := o.IndexOf(moved)
	ti := o.IndexOf(target)
	if mi < 0 || ti < 0 || mi == ti {
		return slices.Clone(o)
	}

	at := ti + 1
	if mi < ti {
		at = ti
	}
	return o.spliceTo(moved, at)
}

// spliceTo removes the element and reinserts it at the given
// post-removal position.
func (o Order) spliceTo(id ID, at int) Order {
	result := make(Order, 0, len(o))
	for _, e := range o {
		if e != id {
			result = append(result, e)
		}
	}

	if at < 0 {
		at = 0
	}
	if at > len(result) {
		at = len(result)
	}

	return slices.Insert(result, at, id)
}
