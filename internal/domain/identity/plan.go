package identity

// Well-known subscription plan IDs. The plan catalog itself lives in the
// billing context; these are the IDs the ledger logic keys off.
const (
	// PlanFree is the default registration plan with small fixed quotas
	PlanFree = "free"

	// PlanPerInvoice is the time-boxed bundle: a fixed number of invoices
	// valid for 30 days from purchase
	PlanPerInvoice = "per-invoice"

	// PlanUnlimited has no quotas on any record type
	PlanUnlimited = "unlimited"
)
