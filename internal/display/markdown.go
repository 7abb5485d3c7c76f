package display

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Rhymond/go-money"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.md
var templates embed.FS

// HoldingsMarkdown renders the holdings table in the report's currency.
func (f Formatter) HoldingsMarkdown(r model.HoldingsReport) (string, error) {
	funcs := f.funcs()
	funcs["code"] = func() string { return f.Code(r.Currency) }
	funcs["money"] = func(v decimal.Decimal) string { return f.Money(v, r.Currency) }
	return render("holdings.md", funcs, r)
}

// AllocationMarkdown renders target against actual allocation.
func (f Formatter) AllocationMarkdown(rows []model.AllocationRow) (string, error) {
	return render("allocation.md", f.funcs(), rows)
}

// NetWorthMarkdown renders the net worth breakdown in USD.
func (f Formatter) NetWorthMarkdown(r model.NetWorthReport) (string, error) {
	return render("networth.md", f.funcs(), r)
}

// FlowsMarkdown renders gross and net flows per bucket in both currencies.
func (f Formatter) FlowsMarkdown(r model.FlowReport) (string, error) {
	return render("flows.md", f.funcs(), r)
}

func (f Formatter) funcs() template.FuncMap {
	return template.FuncMap{
		"usd":        func(v decimal.Decimal) string { return FormatMoney(v, money.USD) },
		"native":     func(v decimal.Decimal) string { return FormatMoney(v, f.NativeCode) },
		"nativeCode": func() string { return f.NativeCode },
		"pct":        Percent,
		"signed": func(v decimal.Decimal) string {
			if v.IsPositive() {
				return "+" + Percent(v)
			}
			return Percent(v)
		},
		"period": func(g model.Granularity) string {
			if g == model.GranularityMonth {
				return "month"
			}
			return "year"
		},
		"cell": func(s string) string { return strings.ReplaceAll(s, "|", `\|`) },
	}
}

func render(name string, funcs template.FuncMap, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(funcs).ParseFS(templates, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("error parsing template %q: %w", name, err)
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("error executing template %q: %w", name, err)
	}
	return b.String(), nil
}
