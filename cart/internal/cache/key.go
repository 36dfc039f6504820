package cache

const (
	KeyCartSessions = "carts:sessions:%s"
)
