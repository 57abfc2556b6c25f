// Package queries contains read-only operations over the storage schema.
// Query handlers bypass the aggregates and read projections straight from
// the database, following the CQRS split: commands go through the domain
// model, queries go through SQL.
package queries
