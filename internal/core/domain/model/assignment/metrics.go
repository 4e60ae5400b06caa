package assignment

// FailureReason is one bucket of the failure breakdown: a recorded
// failure category and how many ledger entries carry it.
type FailureReason struct {
	Reason string
	Count  int
}

// Metrics is the derived summary over the full assignment ledger. It is a
// plain read model, not an aggregate: every evaluation run recomputes it
// wholesale from the ledger and the order history and replaces the single
// stored document. No field is ever incrementally updated.
type Metrics struct {
	// TotalAssigned counts all ledger entries, successes and failures alike.
	TotalAssigned int

	// SuccessRate is successes divided by TotalAssigned, 0 for an empty ledger.
	SuccessRate float64

	// AverageTimeSeconds is the mean creation-to-completion time over all
	// delivered orders. The order history and the ledger are deliberately
	// not joined here; every delivered order contributes.
	AverageTimeSeconds float64

	// FailureReasons buckets failed entries by recorded reason, in
	// first-seen order. Failures without a reason are excluded from the
	// breakdown but still counted in TotalAssigned.
	FailureReasons []FailureReason
}
