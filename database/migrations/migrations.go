// Package migrations holds the schema migrations. Each file registers its
// migrations from init(); cmd/backoffice imports this package for the side
// effect so the runner sees them.
package migrations
