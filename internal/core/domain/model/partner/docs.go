// Package partner contains the delivery partner aggregate: account
// identity and credentials, the onboarding status machine, the serviced
// areas and daily shift window, the concurrent-order load with its
// capacity ceiling, and the performance metrics snapshot.
package partner
