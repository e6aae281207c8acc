package ai

// Candidate is one value proposal from the oracle: a human-readable label
// describing what was asked for, and the literal value the oracle believes
// answers it.
type Candidate struct {
	// Label describes the value, e.g. "rodné číslo" or "kupní cena".
	Label string

	// Value is the literal text the oracle claims appears in the document.
	Value string

	// Start and End are the byte offsets the oracle claims for the value,
	// or -1 when the oracle does not report positions. Claimed positions
	// are never trusted without re-verification against the document.
	Start int
	End   int
}

// ValueKinds is the label vocabulary suggested to the oracle. It mirrors the
// typed entity families the pattern matcher can validate.
var ValueKinds = []string{
	"birthNumber",
	"iban",
	"bankAccount",
	"amount",
	"rpsn",
	"date",
	"phone",
	"name",
	"address",
	"text",
}
