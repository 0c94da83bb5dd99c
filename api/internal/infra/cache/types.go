package cache

// shared cache instances
var (
	InvoiceRateLimitsCache = InitStorage()
)
