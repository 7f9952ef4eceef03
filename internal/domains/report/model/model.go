package model

import (
	"cmp"
	"slices"
	"time"

	orderModel "resto/internal/domains/order/model"
	"resto/shared/constant"
)

const (
	DateLayout = constant.DayFormat

	// MaxRangeDays bounds a single report request.
	MaxRangeDays = 366
	TopItemLimit = 10
)

type Bucket struct {
	Orders  int
	Revenue float64
}

type DaySales struct {
	Date string
	Bucket
}

type MethodSales struct {
	Method string
	Bucket
}

type ItemSales struct {
	MenuItemID string
	Name       string
	Quantity   int
	Revenue    float64
}

type Sales struct {
	From     time.Time
	To       time.Time
	Total    Bucket
	Daily    []DaySales
	ByMethod []MethodSales
	TopItems []ItemSales
}

// Summarize aggregates paid orders. Every day in [from, to] gets a row, including empty ones.
// Item figures come from the line snapshots, so renamed or deleted menu items keep their history.
func Summarize(orders []orderModel.Order, from, to time.Time, loc *time.Location) Sales {
	sales := Sales{From: from, To: to}

	days := map[string]*Bucket{}
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		key := day.Format(DateLayout)
		days[key] = &Bucket{}
		sales.Daily = append(sales.Daily, DaySales{Date: key})
	}

	methods := map[string]*Bucket{}
	items := map[string]*ItemSales{}

	for _, order := range orders {
		if !order.IsPaid || order.Status == orderModel.StatusCancelled {
			continue
		}

		sales.Total.add(order.Total)

		paidAt := order.CreatedAt
		if order.PaidAt != nil {
			paidAt = *order.PaidAt
		}

		if bucket, ok := days[paidAt.In(loc).Format(DateLayout)]; ok {
			bucket.add(order.Total)
		}

		method := "unknown"
		if order.PaymentMethod != nil {
			method = *order.PaymentMethod
		}

		if _, ok := methods[method]; !ok {
			methods[method] = &Bucket{}
		}

		methods[method].add(order.Total)

		for _, line := range order.Items {
			item, ok := items[line.MenuItemID]
			if !ok {
				item = &ItemSales{MenuItemID: line.MenuItemID, Name: line.Name}
				items[line.MenuItemID] = item
			}

			item.Quantity += line.Quantity
			item.Revenue = orderModel.RoundCents(item.Revenue + line.Subtotal())
		}
	}

	for i := range sales.Daily {
		sales.Daily[i].Bucket = *days[sales.Daily[i].Date]
	}

	for method, bucket := range methods {
		sales.ByMethod = append(sales.ByMethod, MethodSales{Method: method, Bucket: *bucket})
	}

	slices.SortFunc(sales.ByMethod, func(a, b MethodSales) int {
		return cmp.Compare(a.Method, b.Method)
	})

	for _, item := range items {
		sales.TopItems = append(sales.TopItems, *item)
	}

	slices.SortFunc(sales.TopItems, func(a, b ItemSales) int {
		if c := cmp.Compare(b.Quantity, a.Quantity); c != 0 {
			return c
		}

		if c := cmp.Compare(b.Revenue, a.Revenue); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	if len(sales.TopItems) > TopItemLimit {
		sales.TopItems = sales.TopItems[:TopItemLimit]
	}

	return sales
}

func (b *Bucket) add(amount float64) {
	b.Orders++
	b.Revenue = orderModel.RoundCents(b.Revenue + amount)
}
