// Package order implements the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root holding the customer, the optional rider and logistics company,
//     the addresses and the lifecycle status
//   - Status: Pending, InProgress, Delivered and Cancelled with their transition rules
//   - Event: the facts recorded on creation, acceptance and every status change
//
// Key business rules:
//   - a new order is Pending and has no rider
//   - only acceptance moves Pending to InProgress and binds the rider, exactly once
//   - the bound rider moves InProgress to Delivered or Cancelled; nothing leaves a terminal status
//   - the customer may cancel while the order is still Pending
package order
