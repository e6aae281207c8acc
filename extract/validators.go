package extract

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/poiesic/pinpoint/normalize"
)

// --- birth number (rodné číslo) ---

// validateBirthNumber checks the NNNNNN/NNN(N) format and the plausibility of
// the encoded date. Women's birth numbers add 50 to the month; months 21-32
// and 71-82 are legal for numbers issued after 2004.
func validateBirthNumber(s string) bool {
	digits := digitsOnly(s)
	if len(digits) != 9 && len(digits) != 10 {
		return false
	}
	// Nine-digit numbers were only issued before 1954.
	year, _ := strconv.Atoi(digits[0:2])
	if len(digits) == 9 && year >= 54 {
		return false
	}

	month, _ := strconv.Atoi(digits[2:4])
	day, _ := strconv.Atoi(digits[4:6])

	switch {
	case month >= 1 && month <= 12:
	case month >= 51 && month <= 62:
	case month >= 21 && month <= 32:
	case month >= 71 && month <= 82:
	default:
		return false
	}

	return day >= 1 && day <= 31
}

func canonicalBirthNumber(s string) string {
	digits := digitsOnly(s)
	if len(digits) < 7 {
		return digits
	}
	return digits[:6] + "/" + digits[6:]
}

// --- IBAN ---

// validateIBAN implements ISO 7064 MOD 97-10 over the rearranged IBAN.
func validateIBAN(s string) bool {
	cleaned := canonicalIBAN(s)
	if len(cleaned) < 15 || len(cleaned) > 34 {
		return false
	}

	// Move the first 4 characters to the end, then convert letters to
	// digits: A=10, B=11, ..., Z=35.
	rearranged := cleaned[4:] + cleaned[:4]
	var digits strings.Builder
	for _, c := range rearranged {
		switch {
		case c >= '0' && c <= '9':
			digits.WriteRune(c)
		case c >= 'A' && c <= 'Z':
			fmt.Fprintf(&digits, "%d", c-'A'+10)
		default:
			return false
		}
	}

	n := new(big.Int)
	if _, ok := n.SetString(digits.String(), 10); !ok {
		return false
	}
	return new(big.Int).Mod(n, big.NewInt(97)).Int64() == 1
}

func canonicalIBAN(s string) string {
	return strings.ToUpper(strings.Map(dropSpaces, s))
}

// --- domestic bank account ---

// Czech bank codes in active use. A four-digit suffix outside this set is
// not a bank account.
var bankCodes = map[string]bool{
	"0100": true, "0300": true, "0600": true, "0710": true, "0800": true,
	"2010": true, "2060": true, "2070": true, "2100": true, "2200": true,
	"2220": true, "2250": true, "2260": true, "2275": true, "2600": true,
	"2700": true, "3030": true, "3050": true, "3060": true, "3500": true,
	"4000": true, "4300": true, "5500": true, "5800": true, "6000": true,
	"6100": true, "6200": true, "6210": true, "6300": true, "6700": true,
	"6800": true, "7910": true, "7950": true, "7960": true, "7970": true,
	"7990": true, "8030": true, "8040": true, "8060": true, "8090": true,
	"8150": true, "8190": true,
}

// validateBankAccount checks the (prefix-)number/bankCode format: both the
// prefix and the account number must pass the weighted mod-11 check and the
// bank code must be known.
func validateBankAccount(s string) bool {
	cleaned := strings.Map(dropSpaces, s)
	slash := strings.IndexByte(cleaned, '/')
	if slash < 0 || len(cleaned)-slash-1 != 4 {
		return false
	}
	if !bankCodes[cleaned[slash+1:]] {
		return false
	}

	body := cleaned[:slash]
	prefix := ""
	if dash := strings.IndexByte(body, '-'); dash >= 0 {
		prefix = body[:dash]
		body = body[dash+1:]
	}

	if len(body) < 2 || len(body) > 10 || !mod11(body) {
		return false
	}
	if prefix != "" && (len(prefix) > 6 || !mod11(prefix)) {
		return false
	}
	return true
}

// mod11 is the Czech account number check: digit weights are powers of two
// modulo 11, applied from the rightmost digit.
func mod11(digits string) bool {
	weight := 1
	sum := 0
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		sum += int(c-'0') * weight
		weight = weight * 2 % 11
	}
	return sum%11 == 0
}

func canonicalBankAccount(s string) string {
	return strings.Map(dropSpaces, s)
}

// --- amounts ---

func validateAmount(s string) bool {
	_, ok := parseDecimal(s)
	return ok
}

func canonicalAmount(s string) string {
	if v, ok := parseDecimal(s); ok {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return digitsOnly(s)
}

// parseDecimal extracts a numeric value from an amount or percentage string,
// tolerating thousand grouping by spaces or dots and a decimal comma.
func parseDecimal(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ',' || r == '.':
			b.WriteRune('.')
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}

	// Only the last separator can be a decimal point, and only when it is
	// followed by one or two digits; the rest is thousand grouping.
	if last := strings.LastIndexByte(cleaned, '.'); last >= 0 {
		tail := cleaned[last+1:]
		head := strings.ReplaceAll(cleaned[:last], ".", "")
		if len(tail) >= 1 && len(tail) <= 2 {
			cleaned = head + "." + tail
		} else {
			cleaned = head + strings.ReplaceAll(cleaned[last:], ".", "")
		}
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// --- RPSN / percentages ---

func validateRPSN(s string) bool {
	v, ok := parseDecimal(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	return ok && v < 1000
}

func canonicalRPSN(s string) string {
	if v, ok := parseDecimal(strings.TrimSuffix(strings.TrimSpace(s), "%")); ok {
		return strconv.FormatFloat(v, 'f', -1, 64) + "%"
	}
	return strings.TrimSpace(s)
}

// --- dates ---

var czechMonths = map[string]int{
	"ledna": 1, "února": 2, "března": 3, "dubna": 4, "května": 5,
	"června": 6, "července": 7, "srpna": 8, "září": 9, "října": 10,
	"listopadu": 11, "prosince": 12,
}

func validateDate(s string) bool {
	_, _, _, ok := parseDateParts(s)
	return ok
}

func canonicalDate(s string) string {
	if d, m, y, ok := parseDateParts(s); ok {
		return fmt.Sprintf("%02d.%02d.%04d", d, m, y)
	}
	return strings.TrimSpace(s)
}

// parseDateParts recognizes d.m.yyyy, yyyy-mm-dd, and "d. <month name> yyyy".
func parseDateParts(s string) (day, month, year int, ok bool) {
	s = strings.TrimSpace(s)

	if strings.Contains(s, "-") {
		parts := strings.Split(s, "-")
		if len(parts) != 3 {
			return 0, 0, 0, false
		}
		year, _ = strconv.Atoi(parts[0])
		month, _ = strconv.Atoi(parts[1])
		day, _ = strconv.Atoi(parts[2])
		return day, month, year, plausibleDate(day, month, year)
	}

	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '.' || r == ' ' })
	if len(fields) != 3 {
		return 0, 0, 0, false
	}
	day, _ = strconv.Atoi(fields[0])
	if m, isName := czechMonths[strings.ToLower(fields[1])]; isName {
		month = m
	} else {
		month, _ = strconv.Atoi(fields[1])
	}
	year, _ = strconv.Atoi(fields[2])
	return day, month, year, plausibleDate(day, month, year)
}

func plausibleDate(day, month, year int) bool {
	return day >= 1 && day <= 31 && month >= 1 && month <= 12 && year >= 1000 && year <= 2999
}

// --- phone numbers ---

func validatePhone(s string) bool {
	digits := digitsOnly(strings.TrimPrefix(strings.TrimSpace(s), "+420"))
	if len(digits) != 9 {
		return false
	}
	return digits[0] >= '2' && digits[0] <= '7'
}

func canonicalPhone(s string) string {
	return digitsOnly(strings.TrimPrefix(strings.TrimSpace(s), "+420"))
}

// --- names and addresses ---

// Folded words that start capitalized in contract prose but are not names.
var nameBlacklist = map[string]bool{
	"smlouva": true, "smluvni": true, "kupni": true, "cena": true,
	"clanek": true, "strana": true, "prodavajici": true, "kupujici": true,
	"banka": true, "ulice": true, "mesto": true, "datum": true,
}

func validateName(s string) bool {
	words := strings.Fields(s)
	if len(words) < 2 {
		return false
	}
	for _, w := range words {
		folded := normalize.Fold(strings.TrimSuffix(w, "."))
		if nameBlacklist[folded] {
			return false
		}
	}
	return true
}

func validateAddress(s string) bool {
	if len(s) < 8 {
		return false
	}
	return strings.ContainsAny(s, "0123456789")
}

// canonicalLoose folds case and diacritics and collapses whitespace runs.
func canonicalLoose(s string) string {
	return strings.Join(strings.Fields(normalize.Fold(s)), " ")
}

// --- helpers ---

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func dropSpaces(r rune) rune {
	if r == ' ' || r == ' ' || r == '\t' {
		return -1
	}
	return r
}
