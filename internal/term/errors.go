package term

import "errors"

// ErrOutOfMemory corresponds to spec.md §7's OutOfMemory error kind.
// Go's slice growth has no recoverable, caller-visible allocation
// failure, so no reserve/dup path in this package actually returns it;
// it is kept defined so the error-handling design has a concrete value
// to name (see DESIGN.md's Open Question decisions).
var ErrOutOfMemory = errors.New("term: allocation failed")

// ErrInvalidSequence corresponds to spec.md §7's Invalid error kind: an
// impossible parser transition. transition's per-state switch is total
// (every state has a default arm back to itself or ground), so this
// path is unreachable in practice; kept as the sentinel a defensive
// caller could check for.
var ErrInvalidSequence = errors.New("term: invalid parser transition")
