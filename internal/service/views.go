package service

import (
	"strings"
	"time"

	"brokerbook/internal/dto"
	"brokerbook/internal/model"
)

// nameIndex resolves party ids to display names, falling back to model.UnknownName.
type nameIndex struct {
	suppliers map[int64]string
	buyers    map[int64]string
}

func newNameIndex(suppliers []model.Supplier, buyers []model.Buyer) nameIndex {
	idx := nameIndex{
		suppliers: make(map[int64]string, len(suppliers)),
		buyers:    make(map[int64]string, len(buyers)),
	}
	for _, s := range suppliers {
		idx.suppliers[s.ID] = s.Name
	}
	for _, b := range buyers {
		idx.buyers[b.ID] = b.Name
	}
	return idx
}

func (n nameIndex) supplier(id int64) string {
	if name, ok := n.suppliers[id]; ok {
		return name
	}
	return model.UnknownName
}

func (n nameIndex) buyer(id int64) string {
	if name, ok := n.buyers[id]; ok {
		return name
	}
	return model.UnknownName
}

func (n nameIndex) dealView(d model.Deal) model.DealView {
	return model.DealView{Deal: d, SupplierName: n.supplier(d.SupplierID), BuyerName: n.buyer(d.BuyerID)}
}

// parseDate reads an optional YYYY-MM-DD field. Empty yields def.
func parseDate(fe fieldErrors, field, value string, def time.Time) time.Time {
	if value == "" {
		return def
	}
	t, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		fe.add(field, "must be a date in YYYY-MM-DD format")
		return def
	}
	return t
}

// dateRange holds inclusive calendar-day bounds; zero means unbounded.
type dateRange struct {
	from, to time.Time
}

func parseRange(fe fieldErrors, fromField, from, toField, to string) dateRange {
	return dateRange{
		from: parseDate(fe, fromField, from, time.Time{}),
		to:   parseDate(fe, toField, to, time.Time{}),
	}
}

func (r dateRange) contains(t time.Time) bool {
	day := truncateDay(t)
	if !r.from.IsZero() && day.Before(r.from) {
		return false
	}
	if !r.to.IsZero() && day.After(r.to) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func today() time.Time { return truncateDay(time.Now()) }

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
