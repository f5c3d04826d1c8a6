// Package client is the NutriSync remote client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) for the
//     backend: Register/GetSalt/Login, Ping, and the sync calls Push, Pull
//     and DeleteScope.
//  2. A gRPC implementation (see GRPCClient) that injects the access token
//     via an interceptor, refreshes expired tokens transparently and maps
//     gRPC status codes to sentinel errors.
//
// # Error Handling
//
// Conditions are exposed as sentinel errors that callers match with
// errors.Is: ErrUnavailable (transient), ErrUnauthorized (the session is
// missing or no longer valid), ErrRejected (the backend refused a single
// request) and ErrLocalDataNotAvailable.
//
// Sync calls fail closed: without a session they return ErrUnauthorized
// before touching the network.
//
// GRPCClient is safe for concurrent use. All calls honor context
// cancellation.
package client
