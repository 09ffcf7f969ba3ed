// Package storage provides JSON-based persistence for meet snapshots.
//
// The storage package manages local snapshot files that track a team's
// meets across runs. Snapshots are stored in JSON format, one file per
// team (meets_<key>.json), keyed by a short hash of the team URL.
// The default storage location is ~/.local/share/swim/.
package storage
