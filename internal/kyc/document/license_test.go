package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltid/internal/media/vision"
	dErrors "voltid/pkg/domain-errors"
)

func lines(texts ...string) []vision.TextBlock {
	blocks := make([]vision.TextBlock, len(texts))
	for i, t := range texts {
		blocks[i] = vision.TextBlock{Text: t}
	}
	return blocks
}

func TestParseLicenseSameLineValues(t *testing.T) {
	details, err := ParseLicense(lines(
		"FEDERAL REPUBLIC DRIVER'S LICENCE",
		"Licence No: ABC 123 456",
		"Surname: OBI",
		"First Name: Ada",
		"Date of Birth: 1990-04-12",
		"Date of Expiry: 02/01/2030",
	))
	require.NoError(t, err)
	assert.Equal(t, "Ada", details.FirstName)
	assert.Equal(t, "OBI", details.LastName)
	assert.Equal(t, "ABC123456", details.LicenseNumber)
	assert.Equal(t, time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC), details.DateOfBirth)
	require.NotNil(t, details.ExpiryDate)
	assert.Equal(t, time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC), *details.ExpiryDate)
	assert.True(t, details.MatchesName("ada", " Obi "))
	assert.False(t, details.MatchesName("Ada", "Okafor"))
}

func TestParseLicenseValueOnNextLine(t *testing.T) {
	details, err := ParseLicense(lines(
		"Given Names",
		"ADA",
		"Family Name",
		"OBI",
		"DOB",
		"12 Apr 1990",
		"License Number",
		"X9981",
	))
	require.NoError(t, err)
	assert.Equal(t, "ADA", details.FirstName)
	assert.Equal(t, "OBI", details.LastName)
	assert.Equal(t, "X9981", details.LicenseNumber)
	assert.Nil(t, details.ExpiryDate)
}

func TestParseLicenseUsesLinesOverWords(t *testing.T) {
	blocks := []vision.TextBlock{
		{ID: "l1", Text: "First Name: Ada"},
		{ID: "w1", ParentID: "l1", Text: "Ada"},
		{ID: "l2", Text: "Last Name: Obi"},
		{ID: "l3", Text: "DOB: 1990-04-12"},
		{ID: "l4", Text: "DL No: Z1"},
	}
	assert.Equal(t, []string{"First Name: Ada", "Last Name: Obi", "DOB: 1990-04-12", "DL No: Z1"}, Lines(blocks))

	_, err := ParseLicense(blocks)
	require.NoError(t, err)
}

func TestParseLicenseMissingFields(t *testing.T) {
	_, err := ParseLicense(nil)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeDocumentValidation))

	_, err = ParseLicense(lines("First Name: Ada", "Surname: Obi", "DOB: 1990-04-12"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeDocumentValidation))
	assert.Equal(t, "could not read license number from document", dErrors.MessageOf(err))

	// A label directly followed by another label has no value.
	_, err = ParseLicense(lines("First Name", "Surname: Obi", "DOB: 1990-04-12", "Licence No: 1"))
	assert.Equal(t, "could not read first name from document", dErrors.MessageOf(err))

	_, err = ParseLicense(lines("First Name: Ada", "Surname: Obi", "DOB: sometime", "Licence No: 1"))
	assert.Equal(t, "could not read date of birth from document", dErrors.MessageOf(err))
}

func TestExpired(t *testing.T) {
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, (&LicenseDetails{ExpiryDate: &past}).Expired(now))
	assert.False(t, (&LicenseDetails{}).Expired(now))
}

func TestExpiredOnLastValidDay(t *testing.T) {
	details, err := ParseLicense(lines(
		"First Name: Ada",
		"Surname: Obi",
		"DOB: 1990-04-12",
		"Licence No: 7",
		"Expiry date: 2026-10-18",
	))
	require.NoError(t, err)

	assert.False(t, details.Expired(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)))
	assert.False(t, details.Expired(time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)))
	assert.False(t, details.Expired(time.Date(2026, 10, 18, 23, 59, 59, 0, time.UTC)))
	assert.True(t, details.Expired(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)))
}

func TestParseDateSlashOrder(t *testing.T) {
	dayFirst, ok := parseDate("04/05/1990")
	require.True(t, ok)
	assert.Equal(t, time.Date(1990, 5, 4, 0, 0, 0, 0, time.UTC), dayFirst)

	monthFirst, ok := parseDate("04/25/1990")
	require.True(t, ok)
	assert.Equal(t, time.Date(1990, 4, 25, 0, 0, 0, 0, time.UTC), monthFirst)

	_, ok = parseDate("13/25/1990")
	assert.False(t, ok)
}

func TestLabelNeedsWordBoundary(t *testing.T) {
	details, err := ParseLicense(lines(
		"Surname",
		"DOBSON",
		"First Name: Ada",
		"DOB: 1990-04-12",
		"Licence No: 7",
	))
	require.NoError(t, err)
	assert.Equal(t, "DOBSON", details.LastName)
}
