// Package document reads the fields of a driver's license from extracted
// text. Fields are found by proximity: a value follows its label on the same
// line or sits on the line below it.
package document

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"voltid/internal/media/vision"
	dErrors "voltid/pkg/domain-errors"
)

// LicenseDetails holds the fields read off a license.
type LicenseDetails struct {
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	DateOfBirth   time.Time  `json:"date_of_birth"`
	LicenseNumber string     `json:"license_number"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
}

type field int

const (
	fieldFirstName field = iota
	fieldLastName
	fieldDateOfBirth
	fieldLicenseNumber
	fieldExpiry
)

// Longer labels come first so "date of expiry" wins over a bare "expiry".
var labels = []struct {
	field field
	words []string
}{
	{fieldFirstName, []string{"first name", "firstname", "given names", "given name", "forenames", "forename"}},
	{fieldLastName, []string{"last name", "lastname", "family name", "surname"}},
	{fieldDateOfBirth, []string{"date of birth", "birth date", "d.o.b", "dob"}},
	{fieldLicenseNumber, []string{"driver's license no", "driving licence no", "licence number", "license number", "licence no", "license no", "dl no", "lic no"}},
	{fieldExpiry, []string{"date of expiry", "expiry date", "exp date", "valid until", "expires", "expiry"}},
}

// Slashed dates read day first; a month-first date is only tried when the
// day-first reading is impossible, so 04/05/1990 is 4 May.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"02.01.2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
}

// Lines returns the line-level text of blocks in reading order. Word blocks
// are only used when the extractor produced no lines.
func Lines(blocks []vision.TextBlock) []string {
	var lines, words []string
	for _, b := range blocks {
		text := strings.TrimSpace(b.Text)
		if text == "" {
			continue
		}
		if b.ParentID == "" {
			lines = append(lines, text)
		} else {
			words = append(words, text)
		}
	}
	if len(lines) == 0 {
		return words
	}
	return lines
}

// ParseLicense extracts the license fields from blocks. First and last name,
// date of birth and license number are required; expiry is optional.
func ParseLicense(blocks []vision.TextBlock) (*LicenseDetails, error) {
	lines := Lines(blocks)
	if len(lines) == 0 {
		return nil, dErrors.New(dErrors.CodeDocumentValidation, "no text could be extracted from the document")
	}

	found := map[field]string{}
	for i, line := range lines {
		f, rest, ok := matchLabel(line)
		if !ok {
			continue
		}
		if _, seen := found[f]; seen {
			continue
		}
		value := rest
		if value == "" && i+1 < len(lines) {
			if _, _, isLabel := matchLabel(lines[i+1]); !isLabel {
				value = strings.TrimSpace(lines[i+1])
			}
		}
		if value != "" {
			found[f] = value
		}
	}

	details := &LicenseDetails{
		FirstName:     found[fieldFirstName],
		LastName:      found[fieldLastName],
		LicenseNumber: strings.ReplaceAll(found[fieldLicenseNumber], " ", ""),
	}
	switch {
	case details.FirstName == "":
		return nil, missing("first name")
	case details.LastName == "":
		return nil, missing("last name")
	case details.LicenseNumber == "":
		return nil, missing("license number")
	}

	dob, ok := parseDate(found[fieldDateOfBirth])
	if !ok {
		return nil, missing("date of birth")
	}
	details.DateOfBirth = dob
	if exp, ok := parseDate(found[fieldExpiry]); ok {
		details.ExpiryDate = &exp
	}
	return details, nil
}

func missing(what string) error {
	return dErrors.New(dErrors.CodeDocumentValidation, "could not read "+what+" from document")
}

// matchLabel reports the field whose label starts line and the text after it.
func matchLabel(line string) (field, string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, l := range labels {
		for _, w := range l.words {
			if len(trimmed) < len(w) || !strings.EqualFold(trimmed[:len(w)], w) {
				continue
			}
			rest := trimmed[len(w):]
			// "DOBSON" is a name, not a "DOB" label.
			if r, _ := utf8.DecodeRuneInString(rest); rest != "" && unicode.IsLetter(r) {
				continue
			}
			return l.field, strings.Trim(rest, " :.-\t"), true
		}
	}
	return 0, "", false
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Expired reports whether now falls after the license's expiry date. The
// license is still valid for the whole of that day.
func (d *LicenseDetails) Expired(now time.Time) bool {
	if d.ExpiryDate == nil {
		return false
	}
	y, m, day := now.UTC().Date()
	return d.ExpiryDate.Before(time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
}

// MatchesName compares the license name with a registered name, ignoring
// case and surrounding space.
func (d *LicenseDetails) MatchesName(firstName, lastName string) bool {
	return strings.EqualFold(strings.TrimSpace(d.FirstName), strings.TrimSpace(firstName)) &&
		strings.EqualFold(strings.TrimSpace(d.LastName), strings.TrimSpace(lastName))
}
