package entity

// Sale is one recorded purchase. UserID is nullable: the legacy schema
// declares no relationship, the column only feeds the salesCount derived
// field in user search.
type Sale struct {
	SaleID          int64   `json:"saleId"`
	PurchaserName   string  `json:"purchaserName"`
	ItemDescription string  `json:"itemDescription"`
	ItemPrice       float64 `json:"itemPrice"`
	PurchaseCount   int     `json:"purchaseCount"`
	MerchantAddress string  `json:"merchantAddress"`
	MerchantName    string  `json:"merchantName"`
	UserID          *int64  `json:"userId,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// SalesMetrics are the three aggregate figures behind /sales/tasks/count.
// They come from independent queries and are not snapshot-consistent with one
// another under concurrent writes.
type SalesMetrics struct {
	TotalSales     int64
	PurchasedItems int64
	GrossRevenue   float64
}
