package core

import "github.com/google/uuid"

// IdentifierNew returns a unique name for generated resources that have
// no user-facing name of their own (geometries, instanced nodes).
func IdentifierNew() string {
	return uuid.New().String()
}
