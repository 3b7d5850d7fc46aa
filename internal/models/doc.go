// Package models defines domain entities and caller-facing value shapes for the songbook service.
//
// The package contains two categories of types:
//
// 1. Canonical records:
//   - [Song] : One parsed source row with derived id, order, and next/previous linkage
//   - [Slot] : The fixed set of instrument slots a song assigns musicians to
//
// 2. Projections returned to callers:
//   - [DropdownEntry] : Flattened, pre-sorted view for list-selection UIs
//   - [SongDetail] : Full song view with the complete slot map and next-song link
//   - [MusicianDetail] : Per-musician song listing with covered slots
//   - [Health] : Cache and fallback state of the processor
//   - [Report] : Advisory consistency report over the current snapshot
//
// All projections are plain values rebuilt wholesale from a snapshot; none of them
// are mutated in place after construction.
package models
