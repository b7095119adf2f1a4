// Package domain defines the core business entities for sitesearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchDocument: A unit of searchable site content
//   - SearchResult: A scored document returned by a query
//   - Product: A catalog entry that is flattened into a SearchDocument
//   - Settings: Runtime configuration with defaults
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
