// Package common contains shared constants and sentinel errors used across
// NutriSync components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// AdminKeyHeaderName carries the operator key accepted by the reset
// endpoint when no user session is attached.
const AdminKeyHeaderName = "admin_key"

// DateLayout is the calendar day format used by food entries and goals.
const DateLayout = "2006-01-02"

// MaxMessageBytes caps a single gRPC message in either direction. Client
// and backend both apply it, and a pull page is sized well below it.
const MaxMessageBytes = 16 << 20
