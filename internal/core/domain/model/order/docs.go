// Package order contains the customer order aggregate: contents and
// recipient, the requested delivery time, the delivery status lifecycle,
// and the assigned-partner reference set by the assignment engine.
package order
