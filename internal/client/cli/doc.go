// Package cli provides the interactive NutriSync command-line client.
//
// It wires configuration, the local SQLite store, the domain services and
// the sync engine, and runs a REPL on top of them. Every command works
// against the local database; the sync engine moves changes to and from
// the server in the background once the user is signed in.
//
// Key features:
//   - Food log: add, list, delete, protein synthesis hits
//   - Daily goals and local settings
//   - Chat message history
//   - Login / Logout (online with offline fallback), status, sync, resync
//
// With sync disabled the app never dials the server and the account
// commands are unavailable.
package cli
