package domain

import (
	clientdomain "github.com/raizsolar/backoffice/internal/client/domain"
)

// Summary is the operator landing-page aggregate.
type Summary struct {
	OpenInvoicesCount int64                 `json:"open_invoices_count"`
	OpenInvoicesValue float64               `json:"open_invoices_value"`
	MonthlyProduction float64               `json:"monthly_production"`
	MonthlyMargin     float64               `json:"monthly_margin"`
	RecentClients     []clientdomain.Client `json:"recent_clients"`
}
