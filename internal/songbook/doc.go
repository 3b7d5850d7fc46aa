// Package songbook implements the cached CSV song processor at the core of the service.
//
// The processor is layered:
//
//  1. The parser reads the source file, validates the header up front, and
//     produces typed [models.Song] records with deterministic derived ids.
//  2. The order assigner gives every record a position in a total order,
//     falling back to file order when the source omits or mangles the value.
//  3. The relationship builder recomputes next/previous linkage over the
//     order-sorted sequence.
//  4. [Library] holds the derived snapshot in memory keyed off the source
//     file's modification time, reloading lazily when the file changes.
//  5. The recovery layer wraps every load: a prior snapshot outranks the
//     synthesized placeholder, and the placeholder only appears after a
//     configured number of consecutive failures with nothing cached.
//
// Published snapshots are immutable; a single mutex guards the
// check-staleness, reload, publish sequence.
package songbook
