// pkg/bybit/url.go
package bybit

import "fmt"

// Stream endpoint base URLs.
const (
	StreamMainnet = "wss://stream.bybit.com"
	// StreamMainnetTR serves Turkey users.
	StreamMainnetTR = "wss://stream.bybit-tr.com"
	// StreamMainnetKZ serves Kazakhstan users.
	StreamMainnetKZ = "wss://stream.bybit.kz"
	StreamTestnet   = "wss://stream-testnet.bybit.com"
	StreamDemo      = "wss://stream-demo.bybit.com"
)

// Stream endpoint paths.
const (
	PathPublicSpot    = "/v5/public/spot"
	PathPublicLinear  = "/v5/public/linear"
	PathPublicInverse = "/v5/public/inverse"
	PathPublicOption  = "/v5/public/option"
	PathPrivate       = "/v5/private"
	PathTrade         = "/v5/trade"
)

// PublicStreamURL joins a stream base URL with the public path of a
// category.
func PublicStreamURL(base string, category Category) (string, error) {
	switch category {
	case CategorySpot:
		return base + PathPublicSpot, nil
	case CategoryLinear:
		return base + PathPublicLinear, nil
	case CategoryInverse:
		return base + PathPublicInverse, nil
	case CategoryOption:
		return base + PathPublicOption, nil
	}
	return "", fmt.Errorf("bybit: no public stream for category %q", category)
}

// PrivateStreamURL joins a stream base URL with the private path.
func PrivateStreamURL(base string) string { return base + PathPrivate }
