// Package syncer drives local-first synchronization between the local
// store and the remote backend.
//
// A pass visits entity types in models.SyncOrder. For each type it pushes
// pending and failed records, then pulls every page of changes the backend
// sequenced after the type's cursor and resolves each pulled record against
// its local version with conflict.Resolve. A cursor is the highest backend
// change sequence number seen, so an old edit pushed late is still pulled.
// Cursors are committed together, only after every type finished, so an
// aborted pass changes no bookkeeping and the next pass repeats the same
// work.
//
// At most one pass runs per Coordinator. Concurrent SyncData calls join the
// running pass and receive its result.
package syncer
