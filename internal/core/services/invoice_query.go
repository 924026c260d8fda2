package services

import (
	"strings"
	"time"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/dto"
	"github.com/SscSPs/invoice_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// maxFrequencyDays caps the look-back window at roughly a century.
const maxFrequencyDays = 36500

// sentinel returns nil for absent values and the "all" sentinel.
func sentinel(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, domain.AllSentinel) {
		return nil
	}
	return &v
}

// BuildInvoiceFilter turns caller query fields into a typed filter.
// Unknown sort fields fall back to createdAt; page and limit are coerced by limits.
// numericSearch enables exact amount matching when the search term is a number.
func BuildInvoiceFilter(q dto.InvoiceQueryRequest, now time.Time, limits pagination.Limits, numericSearch bool) domain.InvoiceFilter {
	page, limit := limits.Normalize(int(q.Page), int(q.Limit))
	f := domain.InvoiceFilter{
		Search: strings.TrimSpace(q.Search),
		Sort:   domain.DefaultInvoiceSort,
		Page:   page,
		Limit:  limit,
	}

	if q.FrequencyDays > 0 {
		from := now.AddDate(0, 0, -min(int(q.FrequencyDays), maxFrequencyDays))
		f.DateFrom = &from
	}
	if v := sentinel(q.Kind); v != nil {
		k := domain.InvoiceKind(*v)
		f.Kind = &k
	}
	if v := sentinel(q.Status); v != nil {
		st := domain.InvoiceStatus(*v)
		f.Status = &st
	}
	if v := sentinel(q.Shift); v != nil {
		sh := domain.Shift(*v)
		f.Shift = &sh
	}

	if field, ok := domain.ParseInvoiceSortField(strings.TrimSpace(q.SortBy)); ok {
		f.Sort.Field = field
	}
	f.Sort.Desc = !strings.EqualFold(q.SortOrder, "asc")

	if numericSearch && f.Search != "" {
		if amount, err := decimal.NewFromString(f.Search); err == nil {
			f.SearchAmount = &amount
		}
	}
	return f
}
