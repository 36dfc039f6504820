package log

const (
	KeyAppName       = "app"
	KeyRequestID     = "requestId"
	KeyProcess       = "process"
	KeyTag           = "tag"
	KeyToken         = "token"
	KeyConfig        = "config"
	KeyRequest       = "request"
	KeyRequestBody   = "requestBody"
	KeyRequestHeader = "requestHeader"
	KeyRequestHost   = "host"
	KeyRequestIp     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"
	KeyTraceID       = "traceId"
	KeySpanID        = "spanId"
	KeyDbURL         = "dbUrl"
	KeyCacheKey      = "cacheKey"
	KeyUserID        = "userId"
	KeyProductID     = "productId"
	KeyStoreID       = "storeId"
	KeyStoreKey      = "storeKey"
	KeyProduct       = "product"
	KeyStore         = "store"
	KeyStores        = "stores"
	KeyCart          = "cart"
	KeyCartItems     = "cartItems"
	KeyQuantity      = "quantity"
	KeyStoreGroups   = "storeGroups"
	KeyLatitude      = "latitude"
	KeyLongitude     = "longitude"
	KeyPathValues    = "pathValues"
)
