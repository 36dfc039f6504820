package cache

const (
	KeyProducts    = "products:"
	KeyProductsAll = "products:all"
)
