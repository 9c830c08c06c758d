package model

// Package model contains the domain models/data structures.
// They carry no database-specific dependencies or tags and are shared
// across layers (HTTP, service, repository) without coupling to persistence.
