// Package cli implements the interactive cardbank shell.
//
// The App wires configuration, logging, the record store and the three
// services, then runs a read-eval-print loop on stdin. It talks to the
// services only; the record store is never touched directly.
//
// Input helpers (GetSimpleText, GetPassword, Confirm) are reached through
// package variables so tests can replace them without a terminal.
package cli
