package constants

const (
	AppStoreService   = "store-service"
	AppProductService = "product-service"
	AppCartService    = "cart-service"
	AppMainMinimart   = "main minimart"
	AudienceShopper   = "audience-shopper"
)
