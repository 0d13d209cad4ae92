package constants

// API path prefix shared by the server routes, the static export layout
// and the client-side path resolver.
const APIBasePath = "/api"

// Demo reader identity. This is the only user the store lazily provisions
// a progress record for; every other unknown user gets a not-found.
const DefaultDemoUserID = "demo-user-1"

// Prefix for the per-user local-store key used by the static-mode client
// to persist progress deltas. Full key: <prefix><userId>.
const ProgressStoreKeyPrefix = "keystone:progress:"

// Seeded record identifiers referenced across packages and tests.
const (
	SeedStoryID = "story-1"
)
