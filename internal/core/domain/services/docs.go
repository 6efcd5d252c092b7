// Package services holds domain services that span more than one aggregate.
//
// The package includes:
//   - OrderAssigner: binds a rider to an order on acceptance and frees the rider when
//     the order reaches a terminal status
package services
