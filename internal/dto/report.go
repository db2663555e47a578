package dto

import (
	"time"

	"sudarshan-portal/internal/models"
)

type ReportResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Date          time.Time `json:"date"`
	SalesTotal    float64   `json:"sales_total"`
	PurchaseTotal float64   `json:"purchase_total"`
	ExpenseTotal  float64   `json:"expense_total"`
	NetAmount     float64   `json:"net_amount"`
	Insights      string    `json:"insights"`
	ActionPoints  []string  `json:"action_points"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToReportResponse(r *models.DailyReport) ReportResponse {
	points := r.ActionPoints
	if points == nil {
		points = []string{}
	}
	return ReportResponse{
		ID:            r.ID.String(),
		UserID:        r.UserID,
		Date:          r.Date.UTC(),
		SalesTotal:    r.SalesTotal,
		PurchaseTotal: r.PurchaseTotal,
		ExpenseTotal:  r.ExpenseTotal,
		NetAmount:     r.NetAmount,
		Insights:      r.Insights,
		ActionPoints:  points,
		CreatedAt:     r.CreatedAt.UTC(),
	}
}

func ToReportResponses(reports []*models.DailyReport) []ReportResponse {
	out := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, ToReportResponse(r))
	}
	return out
}
