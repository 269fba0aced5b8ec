// Package user implements the User aggregate for marketplace participants.
//
// A user is either a customer or a transporter. Transporters additionally carry
// availability and an active order counter that the application layer keeps in
// sync with order claims and terminal outcomes.
package user
