package dto

import (
	"resto/internal/domains/report/model"
)

type SalesRequest struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to"   validate:"required,datetime=2006-01-02"`
}

type BucketResponse struct {
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type DaySalesResponse struct {
	Date string `json:"date"`
	BucketResponse
}

type MethodSalesResponse struct {
	Method string `json:"method"`
	BucketResponse
}

type ItemSalesResponse struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Revenue    float64 `json:"revenue"`
}

type SalesResponse struct {
	From            string                `json:"from"`
	To              string                `json:"to"`
	Total           BucketResponse        `json:"total"`
	Daily           []DaySalesResponse    `json:"daily"`
	ByPaymentMethod []MethodSalesResponse `json:"byPaymentMethod"`
	TopItems        []ItemSalesResponse   `json:"topItems"`
}

func (r *SalesResponse) FromModel(sales model.Sales) {
	r.From = sales.From.Format(model.DateLayout)
	r.To = sales.To.Format(model.DateLayout)
	r.Total = BucketResponse(sales.Total)

	r.Daily = make([]DaySalesResponse, len(sales.Daily))
	for i, day := range sales.Daily {
		r.Daily[i] = DaySalesResponse{Date: day.Date, BucketResponse: BucketResponse(day.Bucket)}
	}

	r.ByPaymentMethod = make([]MethodSalesResponse, len(sales.ByMethod))
	for i, method := range sales.ByMethod {
		r.ByPaymentMethod[i] = MethodSalesResponse{Method: method.Method, BucketResponse: BucketResponse(method.Bucket)}
	}

	r.TopItems = make([]ItemSalesResponse, len(sales.TopItems))
	for i, item := range sales.TopItems {
		r.TopItems[i] = ItemSalesResponse(item)
	}
}
