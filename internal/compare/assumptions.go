package compare

// DefaultAssumptions lists the modeling assumptions rendered in detailed outputs
var DefaultAssumptions = []string{
	"Surcharge applies at the full tier rate once gross income reaches a threshold (no marginal relief)",
	"Rebate is applied before surcharge and cess, and only for residents where the year requires it",
	"Standard deduction is granted to salaried taxpayers only and never exceeds gross income",
	"Section deductions apply under the old regime only",
	"Tax-saving estimates use the old-regime marginal rate at the current taxable income",
	"Ties between regimes are resolved in favour of the new regime",
}
