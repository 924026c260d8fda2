package domain

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places kept by every NUMERIC(20,4) money column.
const MoneyScale = 4

// maxMoney is the exclusive magnitude bound of NUMERIC(20,4).
var maxMoney = decimal.New(1, 20-MoneyScale)

// FitsMoneyColumn reports whether d is stored without rounding or overflow.
func FitsMoneyColumn(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale)) && d.Abs().LessThan(maxMoney)
}

// InvalidMoneyField names the first sub-ledger field that does not fit a money column, or "".
// Derived fields are checked as well.
func (b Bills) InvalidMoneyField() string {
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"total", b.Total},
		{"tax", b.Tax},
		{"payed", b.Payed},
		{"totalWithTax", b.TotalWithTax},
		{"balance", b.Balance},
	} {
		if !FitsMoneyColumn(f.value) {
			return f.name
		}
	}
	return ""
}
