// pkg/bybit/incoming.go
package bybit

// Kind labels an inbound message variant. Used for routing and as a
// metric label.
type Kind string

const (
	KindCommandAck     Kind = "command_ack"
	KindTickerSnapshot Kind = "ticker_snapshot"
	KindTickerDelta    Kind = "ticker_delta"
	KindTrade          Kind = "trade"
	KindKline          Kind = "kline"
	KindLiquidation    Kind = "liquidation"
	KindOrder          Kind = "order"
)

// IncomingMessage is implemented by every inbound stream message.
// The set of implementations is closed; Decode is the only producer.
type IncomingMessage interface {
	Kind() Kind
}

func (*CommandAck) Kind() Kind          { return KindCommandAck }
func (*TickerSnapshot) Kind() Kind      { return KindTickerSnapshot }
func (*TickerDelta) Kind() Kind         { return KindTickerDelta }
func (*TradeSnapshot) Kind() Kind       { return KindTrade }
func (*KlineSnapshot) Kind() Kind       { return KindKline }
func (*LiquidationSnapshot) Kind() Kind { return KindLiquidation }
func (*OrderUpdate) Kind() Kind         { return KindOrder }

// CommandAck acknowledges a subscribe, unsubscribe, auth, ping or pong
// command. ReqID echoes the correlation id of the command when one was
// sent. Success is nil for frames that do not carry the field.
type CommandAck struct {
	Op      Op       `json:"op"`
	ReqID   string   `json:"req_id"`
	Success *bool    `json:"success"`
	RetMsg  string   `json:"ret_msg"`
	ConnID  string   `json:"conn_id"`
	Args    []string `json:"args,omitempty"`
}

// OK reports whether the acknowledgement is positive. Frames without a
// success field (pong echoes) count as positive.
func (a *CommandAck) OK() bool {
	return a.Success == nil || *a.Success
}

// TickerSnapshot is the full ticker state of one symbol. Sent once after
// subscription and again after certain exchange-side events.
type TickerSnapshot struct {
	Topic string     `json:"topic"`
	CS    OptUint    `json:"cs"`
	TS    uint64     `json:"ts"`
	Data  TickerData `json:"data"`
}

// TickerData carries every ticker field. Instrument classes that do not
// have a field (spot has no funding, only futures deliver) leave it unset.
type TickerData struct {
	Symbol                 string        `json:"symbol"`
	TickDirection          TickDirection `json:"tickDirection"`
	LastPrice              OptFloat      `json:"lastPrice"`
	PreOpenPrice           OptFloat      `json:"preOpenPrice"`
	PreQty                 OptFloat      `json:"preQty"`
	CurPreListingPhase     *string       `json:"curPreListingPhase"`
	PrevPrice24H           OptFloat      `json:"prevPrice24h"`
	Price24HPcnt           OptFloat      `json:"price24hPcnt"`
	HighPrice24H           OptFloat      `json:"highPrice24h"`
	LowPrice24H            OptFloat      `json:"lowPrice24h"`
	PrevPrice1H            OptFloat      `json:"prevPrice1h"`
	MarkPrice              OptFloat      `json:"markPrice"`
	IndexPrice             OptFloat      `json:"indexPrice"`
	OpenInterest           OptFloat      `json:"openInterest"`
	OpenInterestValue      OptFloat      `json:"openInterestValue"`
	Turnover24H            OptFloat      `json:"turnover24h"`
	Volume24H              OptFloat      `json:"volume24h"`
	FundingRate            OptFloat      `json:"fundingRate"`
	NextFundingTime        OptUint       `json:"nextFundingTime"`
	Bid1Price              OptFloat      `json:"bid1Price"`
	Bid1Size               OptFloat      `json:"bid1Size"`
	Ask1Price              OptFloat      `json:"ask1Price"`
	Ask1Size               OptFloat      `json:"ask1Size"`
	DeliveryTime           OptUint       `json:"deliveryTime"`
	BasisRate              OptFloat      `json:"basisRate"`
	DeliveryFeeRate        OptFloat      `json:"deliveryFeeRate"`
	PredictedDeliveryPrice OptFloat      `json:"predictedDeliveryPrice"`
}

// TickerDelta is an incremental ticker update. Only changed fields are
// present, everything else stays at its sentinel.
type TickerDelta struct {
	Topic string     `json:"topic"`
	CS    OptUint    `json:"cs"`
	TS    uint64     `json:"ts"`
	Data  TickerData `json:"data"`
}

// TradeSnapshot is a batch of public trades, oldest first within the
// batch.
type TradeSnapshot struct {
	ID    string  `json:"id,omitempty"`
	Topic string  `json:"topic"`
	TS    uint64  `json:"ts"`
	Data  []Trade `json:"data"`
}

// Trade is one public trade tick. Field tags follow the compressed wire
// names of the topic. MarkPrice, IndexPrice, MarkIV and IV appear only
// for option instruments.
type Trade struct {
	Time          uint64        `json:"T"`
	Symbol        string        `json:"s"`
	Side          Side          `json:"S"`
	Size          Float         `json:"v"`
	Price         Float         `json:"p"`
	TickDirection TickDirection `json:"L"`
	TradeID       string        `json:"i"`
	BlockTrade    bool          `json:"BT"`
	RPITrade      *bool         `json:"RPI,omitempty"`
	MarkPrice     OptFloat      `json:"mP"`
	IndexPrice    OptFloat      `json:"iP"`
	MarkIV        OptFloat      `json:"mIv"`
	IV            OptFloat      `json:"iv"`
}

// KlineSnapshot is a batch of candles for one symbol and interval.
type KlineSnapshot struct {
	Topic string  `json:"topic"`
	TS    uint64  `json:"ts"`
	Data  []Kline `json:"data"`
}

// Kline is one candle. Confirm is false while the candle is still open.
type Kline struct {
	Start     uint64   `json:"start"`
	End       uint64   `json:"end"`
	Interval  Interval `json:"interval"`
	Open      Float    `json:"open"`
	Close     Float    `json:"close"`
	High      Float    `json:"high"`
	Low       Float    `json:"low"`
	Volume    Float    `json:"volume"`
	Turnover  Float    `json:"turnover"`
	Confirm   bool     `json:"confirm"`
	Timestamp uint64   `json:"timestamp"`
}

// LiquidationSnapshot is a batch of liquidation events.
type LiquidationSnapshot struct {
	Topic string        `json:"topic"`
	TS    uint64        `json:"ts"`
	Data  []Liquidation `json:"data"`
}

// Liquidation is one forced liquidation. Side is the side of the
// liquidation order, opposite to the liquidated position.
type Liquidation struct {
	Time   uint64 `json:"T"`
	Symbol string `json:"s"`
	Side   Side   `json:"S"`
	Size   Float  `json:"v"`
	Price  Float  `json:"p"`
}

// OrderUpdate is a private stream frame with order state changes.
type OrderUpdate struct {
	ID           string  `json:"id"`
	CreationTime uint64  `json:"creationTime"`
	Data         []Order `json:"data"`
}

// Order is one order state inside an OrderUpdate. Optional numeric
// fields use the Opt types because the exchange sends "" where it has
// nothing to report; string-typed enums use "" the same way.
type Order struct {
	Category              Category              `json:"category"`
	OrderID               string                `json:"orderId"`
	OrderLinkID           string                `json:"orderLinkId"`
	IsLeverage            string                `json:"isLeverage"` // "0"/"1", spot margin only
	BlockTradeID          string                `json:"blockTradeId"`
	Symbol                string                `json:"symbol"`
	Price                 Float                 `json:"price"`
	Qty                   Float                 `json:"qty"`
	Side                  Side                  `json:"side"`
	PositionIdx           PositionIdx           `json:"positionIdx"`
	CreateType            CreateType            `json:"createType"`
	OrderStatus           OrderStatus           `json:"orderStatus"`
	CancelType            CancelType            `json:"cancelType"`
	RejectReason          RejectReason          `json:"rejectReason"`
	AvgPrice              OptFloat              `json:"avgPrice"`
	LeavesQty             OptFloat              `json:"leavesQty"`
	LeavesValue           OptFloat              `json:"leavesValue"`
	CumExecQty            Float                 `json:"cumExecQty"`
	CumExecValue          Float                 `json:"cumExecValue"`
	CumExecFee            Float                 `json:"cumExecFee"`
	ClosedPnl             Float                 `json:"closedPnl"`
	FeeCurrency           string                `json:"feeCurrency"`
	TimeInForce           TimeInForce           `json:"timeInForce"`
	OrderType             OrderType             `json:"orderType"`
	StopOrderType         StopOrderType         `json:"stopOrderType"`
	OcoTriggerBy          OcoTriggerBy          `json:"ocoTriggerBy"`
	OrderIV               OptFloat              `json:"orderIv"`
	MarketUnit            string                `json:"marketUnit"`
	SlippageToleranceType SlippageToleranceType `json:"slippageToleranceType"`
	SlippageTolerance     OptFloat              `json:"slippageTolerance"`
	TriggerPrice          OptFloat              `json:"triggerPrice"`
	TakeProfit            OptFloat              `json:"takeProfit"`
	StopLoss              OptFloat              `json:"stopLoss"`
	TpslMode              TpslMode              `json:"tpslMode"`
	TpLimitPrice          OptFloat              `json:"tpLimitPrice"`
	SlLimitPrice          OptFloat              `json:"slLimitPrice"`
	TpTriggerBy           TriggerBy             `json:"tpTriggerBy"`
	SlTriggerBy           TriggerBy             `json:"slTriggerBy"`
	TriggerDirection      TriggerDirection      `json:"triggerDirection"`
	TriggerBy             TriggerBy             `json:"triggerBy"`
	LastPriceOnCreated    OptFloat              `json:"lastPriceOnCreated"`
	ReduceOnly            bool                  `json:"reduceOnly"`
	CloseOnTrigger        bool                  `json:"closeOnTrigger"`
	PlaceType             PlaceType             `json:"placeType"`
	SmpType               SmpType               `json:"smpType"`
	SmpGroup              Int                   `json:"smpGroup"`
	SmpOrderID            string                `json:"smpOrderId"`
	CreatedTime           Uint                  `json:"createdTime"`
	UpdatedTime           Uint                  `json:"updatedTime"`
}
