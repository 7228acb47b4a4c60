package constants

// User roles
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// Container status values
const (
	ContainerStatusAvailable = "available"
	ContainerStatusActive    = "active"
	ContainerStatusReturned  = "returned"
	ContainerStatusLost      = "lost"
	ContainerStatusDamaged   = "damaged"
)

// Activity types
const (
	ActivityTypeRegistration = "registration"
	ActivityTypeRebate       = "rebate"
	ActivityTypeReturn       = "return"
	ActivityTypeStatusChange = "status_change"
)

// Queue names
const (
	QueueDefault = "default"
)

// Async task types
const (
	TaskStatsRefresh = "stats:refresh"
)

// QR code format pieces. Codes look like AQRO-X7K2MQ-493027.
const (
	QRCodePrefix       = "AQRO"
	QRCodeRandomLength = 6
	QRCodeTimeLength   = 6
)

// DefaultCurrency is the currency rebates are recorded in.
const DefaultCurrency = "PHP"
