package http

const (
	HeaderContentType = "Content-Type"
	HeaderValueJson   = "application/json"
	HeaderRequestId   = "X-Request-Id"
)

const (
	StoreBaseUrl   = "http://store-service:8080/stores"
	ProductBaseUrl = "http://product-service:8080/products"
	CartBaseUrl    = "http://cart-service:8080/carts"
)
