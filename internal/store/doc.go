// Package store persists assembled reports in a sqlite database.
//
// The schema lives in embedded migrations applied on Open, so a Store can
// be pointed at a fresh file and is immediately usable. Each row carries
// denormalized summary columns (score, grade, risk level) next to the full
// JSON payload, so listings never decode payloads.
//
// The store is an optional sink behind the CLI; the analysis engine itself
// never touches it.
package store
