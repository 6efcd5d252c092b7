// Package rider implements the Rider aggregate: an independent courier with an
// availability status and at most one order in hand.
//
// Key business rules:
//   - sign-up requires a licence; new riders are active and Available
//   - Busy holds exactly while a current order is set
//   - inactive riders cannot take orders regardless of availability
//   - riders toggle between Available and OnBreak themselves, never while Busy
package rider
