package dto

import "sudarshan-portal/internal/ledger"

type ChartPoint struct {
	Date     string  `json:"date"`
	Sales    float64 `json:"sales"`
	Purchase float64 `json:"purchase"`
	Expense  float64 `json:"expense"`
}

type Totals struct {
	Sales    float64 `json:"sales"`
	Purchase float64 `json:"purchase"`
	Expense  float64 `json:"expense"`
	Net      float64 `json:"net"`
}

type AnalyticsResponse struct {
	ChartData []ChartPoint `json:"chart_data"`
	Totals    Totals       `json:"totals"`
}

func ToAnalyticsResponse(buckets []ledger.DayBucket, totals ledger.Totals) *AnalyticsResponse {
	points := make([]ChartPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, ChartPoint{
			Date:     b.Date,
			Sales:    b.Sales,
			Purchase: b.Purchase,
			Expense:  b.Expense,
		})
	}
	return &AnalyticsResponse{
		ChartData: points,
		Totals: Totals{
			Sales:    totals.Sales,
			Purchase: totals.Purchase,
			Expense:  totals.Expense,
			Net:      totals.Net,
		},
	}
}
