package models

import (
	"regexp"
	"strings"
)

// CallStatus values for an order's feedback call
const (
	CallStatusCompleted    = "completed"
	CallStatusScheduled    = "scheduled"
	CallStatusNotScheduled = "not_scheduled"
)

// ApiOrder is the wire shape returned by the backend's order sync endpoint
type ApiOrder struct {
	OrderID           string   `json:"orderId"`
	CustomerName      string   `json:"customerName"`
	PhoneNumber       string   `json:"phoneNumber"`
	CustomerState     string   `json:"customerState"`
	ProductsPurchased string   `json:"productsPurchased"`
	FulfillmentDate   string   `json:"fulfillmentDate"`
	TotalPrice        ApiPrice `json:"totalPrice"`
	CallStatus        string   `json:"callStatus"` // "Unscheduled" | "Scheduled" | "Completed"
}

// ApiPrice carries an amount with its currency code
type ApiPrice struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// ApiOrderResponse wraps the order sync payload
type ApiOrderResponse struct {
	SyncedNew int        `json:"synced_new"`
	Orders    []ApiOrder `json:"orders"`
}

// Order is the dashboard-facing shape
type Order struct {
	ID            string `json:"id"`
	CustomerName  string `json:"customer_name"`
	Phone         string `json:"phone"`
	Products      string `json:"products"`
	OrderDate     string `json:"order_date"`
	DeliveryDate  string `json:"delivery_date"`
	CallStatus    string `json:"call_status"` // completed | scheduled | not_scheduled
	Total         string `json:"total"`
	ShippingState string `json:"shipping_state,omitempty"`
}

// OrderSummary holds per-status counts for the orders view
type OrderSummary struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Scheduled    int `json:"scheduled"`
	NotScheduled int `json:"not_scheduled"`
}

var (
	leadingHashes  = regexp.MustCompile(`^#+`)
	quantitySuffix = regexp.MustCompile(`(?i)\s*x\d+\s*$`)
	parenQuantity  = regexp.MustCompile(`(?i)\s*\(\d+\)\s*$`)
	productSep     = regexp.MustCompile(`[,;|&+]`)
)

// orderStatusMap narrows backend status strings to the dashboard's closed set.
// Anything outside the map falls back to not_scheduled.
var orderStatusMap = map[string]string{
	"Completed":   CallStatusCompleted,
	"Scheduled":   CallStatusScheduled,
	"Unscheduled": CallStatusNotScheduled,
}

// CleanProductNames strips quantity indicators like "x2" or "(3)" from each
// product in a separator-delimited list and rejoins with ", ".
func CleanProductNames(products string) string {
	if products == "" || products == "N/A" {
		return products
	}

	parts := productSep.Split(products, -1)
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = quantitySuffix.ReplaceAllString(p, "")
		p = parenQuantity.ReplaceAllString(p, "")
		p = strings.TrimSpace(p)
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, ", ")
}

// TransformApiOrder converts the backend wire shape to the dashboard shape
func TransformApiOrder(api ApiOrder) Order {
	id := leadingHashes.ReplaceAllString(api.OrderID, "")
	if id == "" {
		id = "N/A"
	}

	status, ok := orderStatusMap[api.CallStatus]
	if !ok {
		status = CallStatusNotScheduled
	}

	return Order{
		ID:            id,
		CustomerName:  orDefault(api.CustomerName),
		Phone:         orDefault(api.PhoneNumber),
		Products:      CleanProductNames(orDefault(api.ProductsPurchased)),
		OrderDate:     orDefault(api.FulfillmentDate),
		DeliveryDate:  orDefault(api.FulfillmentDate),
		CallStatus:    status,
		Total:         formatTotal(api.TotalPrice),
		ShippingState: orDefault(api.CustomerState),
	}
}

// SummarizeOrders counts orders per call status
func SummarizeOrders(orders []Order) OrderSummary {
	summary := OrderSummary{Total: len(orders)}
	for _, o := range orders {
		switch o.CallStatus {
		case CallStatusCompleted:
			summary.Completed++
		case CallStatusScheduled:
			summary.Scheduled++
		default:
			summary.NotScheduled++
		}
	}
	return summary
}

func formatTotal(price ApiPrice) string {
	if price.Amount == "" {
		return "N/A"
	}
	currency := price.Currency
	if currency == "USD" {
		currency = "$"
	}
	return currency + price.Amount
}

func orDefault(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
