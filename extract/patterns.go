package extract

import (
	"regexp"

	"github.com/poiesic/pinpoint/core"
)

// Compiled patterns per entity family. Order matters for cross-type overlap
// resolution: specific, checksum-backed formats come before loose ones.
var (
	// Birth number (rodné číslo): NNNNNN/NNN or NNNNNN/NNNN, spaces tolerated
	// around the slash.
	reBirthNumber = regexp.MustCompile(`\b\d{6}\s?/\s?\d{3,4}\b`)

	// IBAN: two letters, two check digits, 11-30 alphanumeric characters,
	// optionally grouped by spaces in blocks of four.
	reIBAN = regexp.MustCompile(`\b[A-Z]{2}\d{2}(?:\s?[0-9A-Z]{4}){2,7}(?:\s?[0-9A-Z]{1,3})?\b`)

	// Domestic bank account: optional prefix, account number, slash, 4-digit
	// bank code.
	reBankAccount = regexp.MustCompile(`\b(?:\d{2,6}-)?\d{2,10}/\d{4}\b`)

	// Amount: grouped digits with an optional decimal part, followed by a
	// currency marker. Non-breaking spaces appear in exported documents.
	reAmount = regexp.MustCompile(`\d{1,3}(?:[ \x{00A0}.]\d{3})*(?:[,.]\d{1,2})?\s?(?:Kč|CZK|EUR|€|USD|\$|,-)`)

	// RPSN and other percentages.
	reRPSN = regexp.MustCompile(`\d{1,3}(?:[,.]\d{1,3})?\s?%`)

	// Dates: numeric d.m.yyyy (spaces after dots tolerated), ISO yyyy-mm-dd,
	// and Czech month names.
	reDateNumeric = regexp.MustCompile(`\b\d{1,2}\.\s?\d{1,2}\.\s?\d{4}\b`)
	reDateISO     = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	reDateCzech   = regexp.MustCompile(`\b\d{1,2}\.\s?(?:ledna|února|března|dubna|května|června|července|srpna|září|října|listopadu|prosince)\s\d{4}\b`)

	// Phone: optional +420 prefix, nine digits in groups of three. The first
	// digit of a Czech subscriber number is 2-7.
	rePhone = regexp.MustCompile(`(?:\+420\s?)?\b[2-7]\d{2}\s?\d{3}\s?\d{3}\b`)

	// Party names: one or two capitalized words after an optional academic
	// title. Loose by design; the low confidence prior reflects that.
	reName = regexp.MustCompile(`(?:(?:Ing|Mgr|JUDr|MUDr|RNDr|Bc|Dr)\.\s)?\p{Lu}\p{Ll}+(?:\s\p{Lu}\p{Ll}+){1,2}`)

	// Addresses: street with house number, postal code (PSČ), city. The
	// street word needs a lowercase tail so abbreviations like "RČ" or "IČ"
	// followed by a slashed number are not mistaken for addresses.
	reAddressFull  = regexp.MustCompile(`\p{Lu}\p{Ll}{2,}(?:\s\p{L}+)*\s\d+(?:/\d+)?,?\s\d{3}\s?\d{2}\s\p{Lu}\p{L}+`)
	reAddressShort = regexp.MustCompile(`\p{Lu}\p{Ll}{2,}(?:\s\p{L}+)*\s\d+/\d+`)
)

// defaultEntries assembles the built-in registry. Confidence values are
// fixed priors: checksum-backed identifiers rank high, loosely patterned
// families low.
func defaultEntries() []Entry {
	return []Entry{
		{
			Type:          core.ValueTypeIBAN,
			Patterns:      []*regexp.Regexp{reIBAN},
			Validate:      validateIBAN,
			Canonical:     canonicalIBAN,
			Confidence:    0.95,
			ContextWindow: 48,
		},
		{
			Type:          core.ValueTypeBirthNumber,
			Patterns:      []*regexp.Regexp{reBirthNumber},
			Validate:      validateBirthNumber,
			Canonical:     canonicalBirthNumber,
			Confidence:    0.95,
			ContextWindow: 48,
		},
		{
			Type:          core.ValueTypeBankAccount,
			Patterns:      []*regexp.Regexp{reBankAccount},
			Validate:      validateBankAccount,
			Canonical:     canonicalBankAccount,
			Confidence:    0.9,
			ContextWindow: 48,
		},
		{
			Type:          core.ValueTypeAmount,
			Patterns:      []*regexp.Regexp{reAmount},
			Validate:      validateAmount,
			Canonical:     canonicalAmount,
			Confidence:    0.85,
			ContextWindow: 64,
		},
		{
			Type:          core.ValueTypeDate,
			Patterns:      []*regexp.Regexp{reDateNumeric, reDateISO, reDateCzech},
			Validate:      validateDate,
			Canonical:     canonicalDate,
			Confidence:    0.85,
			ContextWindow: 48,
		},
		{
			Type:          core.ValueTypeRPSN,
			Patterns:      []*regexp.Regexp{reRPSN},
			Validate:      validateRPSN,
			Canonical:     canonicalRPSN,
			Confidence:    0.85,
			ContextWindow: 64,
		},
		{
			Type:          core.ValueTypePhone,
			Patterns:      []*regexp.Regexp{rePhone},
			Validate:      validatePhone,
			Canonical:     canonicalPhone,
			Confidence:    0.8,
			ContextWindow: 32,
		},
		{
			Type:          core.ValueTypeAddress,
			Patterns:      []*regexp.Regexp{reAddressFull, reAddressShort},
			Validate:      validateAddress,
			Canonical:     canonicalLoose,
			Confidence:    0.6,
			ContextWindow: 64,
		},
		{
			Type:          core.ValueTypeName,
			Patterns:      []*regexp.Regexp{reName},
			Validate:      validateName,
			Canonical:     canonicalLoose,
			Confidence:    0.5,
			ContextWindow: 48,
		},
	}
}
