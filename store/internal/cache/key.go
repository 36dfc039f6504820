package cache

const (
	KeyStores = "stores:all"
	KeyStore  = "stores:%s"
)
