// Package kernel holds the value objects shared by every aggregate of the logistics domain.
//
// The package includes:
//   - UUID: identifier of orders, riders, customers and logistics companies
//   - Address: a trimmed, non-blank postal address used for pickup, delivery and rider location
//   - Email: a normalized account e-mail used to look identities up
//   - DomainEvent: the contract aggregates use to record what happened to them
//
// Zero values of these types are invalid; build them through their constructors.
package kernel
