package repository

// ContainerListFilter filters container listings.
type ContainerListFilter struct {
	Page            int
	PageSize        int
	CustomerID      uint
	RestaurantID    uint
	ContainerTypeID uint
	Status          string
}

// ActivityListFilter filters activity listings.
type ActivityListFilter struct {
	Page         int
	PageSize     int
	UserID       uint
	ContainerID  uint
	RestaurantID uint
	Type         string
}

// RebateListFilter filters rebate listings.
type RebateListFilter struct {
	Page        int
	PageSize    int
	CustomerID  uint
	StaffID     uint
	ContainerID uint
}

// RebateTotals is an aggregation over the rebate ledger.
type RebateTotals struct {
	TotalAmount float64 `json:"total_amount"`
	Count       int64   `json:"count"`
}

// ContainerStatusCounts groups container counts by status.
type ContainerStatusCounts struct {
	Available int64 `json:"available"`
	Active    int64 `json:"active"`
	Returned  int64 `json:"returned"`
	Lost      int64 `json:"lost"`
	Damaged   int64 `json:"damaged"`
}
