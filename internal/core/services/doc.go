// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters): the corpus builder feeds
// the search engine, and the search service layers snippets,
// suggestions and related content on top of it.
//
// Services are pure Go with no CGO or external dependencies.
package services
