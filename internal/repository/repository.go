package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres for production, memory
// for tests and local runs) inside this directory.

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
