package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/apperrors"
)

const (
	maxTickerLength = 32
	maxNameLength   = 200
	dateLayout      = "2006-01-02"
)

var tickerPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9._\-]*$`)

// ValidateID parses a record ID path parameter. IDs are positive integers.
func ValidateID(id string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrInvalidID, id)
	}
	return n, nil
}

// NormalizeTicker trims and upper-cases a ticker.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// ValidateTicker checks a normalized ticker.
func ValidateTicker(ticker string) error {
	switch {
	case ticker == "":
		return apperrors.ErrInvalidTicker
	case len(ticker) > maxTickerLength:
		return fmt.Errorf("%w: must be %d characters or less", apperrors.ErrInvalidTicker, maxTickerLength)
	case !tickerPattern.MatchString(ticker):
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidTicker, ticker)
	}
	return nil
}
