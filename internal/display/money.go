package display

import (
	"github.com/Rhymond/go-money"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
	"github.com/shopspring/decimal"
)

// Formatter knows which ISO currency and locale stand for each display
// currency.
type Formatter struct {
	NativeCode   string
	NativeLocale string
	USDLocale    string
}

// NewFormatter returns a Formatter, filling empty fields with ARS/es-AR and en-US.
func NewFormatter(nativeCode, nativeLocale, usdLocale string) Formatter {
	f := Formatter{NativeCode: nativeCode, NativeLocale: nativeLocale, USDLocale: usdLocale}
	if f.NativeCode == "" {
		f.NativeCode = "ARS"
	}
	if f.NativeLocale == "" {
		f.NativeLocale = "es-AR"
	}
	if f.USDLocale == "" {
		f.USDLocale = "en-US"
	}
	return f
}

// Code returns the ISO code of a display currency.
func (f Formatter) Code(c model.DisplayCurrency) string {
	if c == model.CurrencyUSD {
		return money.USD
	}
	return f.NativeCode
}

// Locale returns the formatting locale of a display currency.
func (f Formatter) Locale(c model.DisplayCurrency) string {
	if c == model.CurrencyUSD {
		return f.USDLocale
	}
	return f.NativeLocale
}

// Money formats v in the given display currency.
func (f Formatter) Money(v decimal.Decimal, c model.DisplayCurrency) string {
	return FormatMoney(v, f.Code(c))
}

// FormatMoney formats v with the symbol and separators of the ISO currency
// code, rounded to the currency's minor unit.
func FormatMoney(v decimal.Decimal, code string) string {
	// money.New is the only way to get a never nil currency
	cur := money.New(0, code).Currency()
	minor := v.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}

// Percent formats a 0-100 ratio with two decimals.
func Percent(v decimal.Decimal) string {
	return v.StringFixed(2) + "%"
}
