// Package kernel holds the primitives shared by every aggregate in the
// domain model. Currently that is UUID, the identifier value object used
// for orders, payments, deliveries, and notification records.
package kernel
