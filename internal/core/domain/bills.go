package domain

import "github.com/shopspring/decimal"

// Bills is the {total, tax, totalWithTax, payed, balance} sub-ledger of an invoice.
type Bills struct {
	Total        decimal.Decimal `json:"total"`
	Tax          decimal.Decimal `json:"tax"`
	TotalWithTax decimal.Decimal `json:"totalWithTax"`
	Payed        decimal.Decimal `json:"payed"`
	Balance      decimal.Decimal `json:"balance"`
}

// BillsInput is caller-supplied pricing. Nil values count as zero.
type BillsInput struct {
	Total *decimal.Decimal
	Tax   *decimal.Decimal
	Payed *decimal.Decimal
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// CalculateBills derives totalWithTax and balance from total, tax and payed.
// Payed may exceed totalWithTax, leaving a negative (credit) balance.
func CalculateBills(in BillsInput) Bills {
	total := orZero(in.Total)
	tax := orZero(in.Tax)
	payed := orZero(in.Payed)
	withTax := total.Add(tax)
	return Bills{
		Total:        total,
		Tax:          tax,
		TotalWithTax: withTax,
		Payed:        payed,
		Balance:      withTax.Sub(payed),
	}
}

// CalculatePaymentBills builds the sub-ledger for a bare payment against a party balance.
func CalculatePaymentBills(currentBalance, amount decimal.Decimal) Bills {
	return Bills{
		Total:        decimal.Zero,
		Tax:          decimal.Zero,
		TotalWithTax: decimal.Zero,
		Payed:        amount,
		Balance:      currentBalance.Sub(amount),
	}
}

// IsConsistent reports whether the derived fields agree with total, tax and payed.
func (b Bills) IsConsistent() bool {
	return b.TotalWithTax.Equal(b.Total.Add(b.Tax)) && b.Balance.Equal(b.TotalWithTax.Sub(b.Payed))
}

// SumBills folds the bills of a page of invoices into statement subtotals.
func SumBills(invoices []Invoice) Bills {
	var sum Bills
	for _, inv := range invoices {
		sum.Total = sum.Total.Add(inv.Bills.Total)
		sum.Tax = sum.Tax.Add(inv.Bills.Tax)
		sum.TotalWithTax = sum.TotalWithTax.Add(inv.Bills.TotalWithTax)
		sum.Payed = sum.Payed.Add(inv.Bills.Payed)
		sum.Balance = sum.Balance.Add(inv.Bills.Balance)
	}
	return sum
}
