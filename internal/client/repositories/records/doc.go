// Package records is the local store adapter: durable storage of
// synchronized entities in SQLite, keyed by sync identity, with soft
// deletes and the queries a sync pass needs (changed since a cursor,
// not yet synced). Every entity type lives in its own table with the same
// shape, so one repository serves all of them.
package records
