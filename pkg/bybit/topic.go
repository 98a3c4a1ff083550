// pkg/bybit/topic.go
package bybit

import "fmt"

// TopicOrder is the private order-update topic. It carries no symbol.
const TopicOrder = "order"

const (
	tickerTopicPrefix      = "tickers."
	tradeTopicPrefix       = "publicTrade."
	klineTopicPrefix       = "kline."
	liquidationTopicPrefix = "allLiquidation."
)

// TopicTicker returns the ticker topic for a symbol, e.g. "tickers.BTCUSDT".
func TopicTicker(symbol string) string { return tickerTopicPrefix + symbol }

// TopicTrade returns the public trade topic for a symbol.
func TopicTrade(symbol string) string { return tradeTopicPrefix + symbol }

// TopicKline returns the candle topic for an interval and symbol,
// e.g. "kline.5.BTCUSDT".
func TopicKline(interval Interval, symbol string) string {
	return fmt.Sprintf("%s%s.%s", klineTopicPrefix, interval, symbol)
}

// TopicAllLiquidation returns the liquidation topic for a symbol.
func TopicAllLiquidation(symbol string) string { return liquidationTopicPrefix + symbol }
