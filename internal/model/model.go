package model

// Package model contains pure domain structs shared across layers. No
// database tags or business logic; persistence mapping lives in the
// repository implementations.
