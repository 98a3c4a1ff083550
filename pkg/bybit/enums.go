// pkg/bybit/enums.go
package bybit

// String-valued enums of the v5 API. The exchange uses "" as the no-value
// sentinel for several of them, so the None constant of those enums is the
// empty string and decodes without error.

// Category is a product category.
type Category string

const (
	CategorySpot    Category = "spot"
	CategoryLinear  Category = "linear"
	CategoryInverse Category = "inverse"
	CategoryOption  Category = "option"
)

// Side is an order or trade direction.
type Side string

const (
	SideBuy  Side = "Buy"
	SideSell Side = "Sell"
)

// TickDirection describes the price movement of the last tick.
// TickDirectionNone is used in ticker deltas when the field is absent.
type TickDirection string

const (
	TickDirectionNone      TickDirection = ""
	TickDirectionPlus      TickDirection = "PlusTick"
	TickDirectionZeroPlus  TickDirection = "ZeroPlusTick"
	TickDirectionMinus     TickDirection = "MinusTick"
	TickDirectionZeroMinus TickDirection = "ZeroMinusTick"
)

// Interval is a candle interval as used in kline topics.
type Interval string

const (
	Interval1m  Interval = "1"
	Interval3m  Interval = "3"
	Interval5m  Interval = "5"
	Interval15m Interval = "15"
	Interval30m Interval = "30"
	Interval1h  Interval = "60"
	Interval2h  Interval = "120"
	Interval4h  Interval = "240"
	Interval6h  Interval = "360"
	Interval12h Interval = "720"
	IntervalDay Interval = "D"
	IntervalWk  Interval = "W"
	IntervalMo  Interval = "M"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusNew                     OrderStatus = "New"
	OrderStatusPartiallyFilled         OrderStatus = "PartiallyFilled"
	OrderStatusUntriggered             OrderStatus = "Untriggered"
	OrderStatusRejected                OrderStatus = "Rejected"
	OrderStatusPartiallyFilledCanceled OrderStatus = "PartiallyFilledCanceled"
	OrderStatusFilled                  OrderStatus = "Filled"
	OrderStatusCancelled               OrderStatus = "Cancelled"
	OrderStatusTriggered               OrderStatus = "Triggered"
	OrderStatusDeactivated             OrderStatus = "Deactivated"
)

// IsOpen reports whether the order is still working on the book or
// waiting for its trigger.
func (s OrderStatus) IsOpen() bool {
	switch s {
	case OrderStatusNew, OrderStatusPartiallyFilled, OrderStatusUntriggered:
		return true
	}
	return false
}

// IsClosed reports whether the order reached a terminal state.
func (s OrderStatus) IsClosed() bool {
	switch s {
	case OrderStatusRejected, OrderStatusPartiallyFilledCanceled,
		OrderStatusFilled, OrderStatusCancelled, OrderStatusTriggered,
		OrderStatusDeactivated:
		return true
	}
	return false
}

// OrderType is the execution type of an order. OrderTypeUnknown is sent
// by the exchange when the real type cannot be determined.
type OrderType string

const (
	OrderTypeMarket  OrderType = "Market"
	OrderTypeLimit   OrderType = "Limit"
	OrderTypeUnknown OrderType = "UNKNOWN"
)

// TimeInForce is an order time-in-force policy.
type TimeInForce string

const (
	TimeInForceGTC      TimeInForce = "GTC"
	TimeInForceIOC      TimeInForce = "IOC"
	TimeInForceFOK      TimeInForce = "FOK"
	TimeInForcePostOnly TimeInForce = "PostOnly"
	TimeInForceRPI      TimeInForce = "RPI"
)

// StopOrderType classifies conditional orders, "" for plain ones.
type StopOrderType string

const (
	StopOrderTypeNone                StopOrderType = ""
	StopOrderTypeTakeProfit          StopOrderType = "TakeProfit"
	StopOrderTypeStopLoss            StopOrderType = "StopLoss"
	StopOrderTypeTrailingStop        StopOrderType = "TrailingStop"
	StopOrderTypeStop                StopOrderType = "Stop"
	StopOrderTypePartialTakeProfit   StopOrderType = "PartialTakeProfit"
	StopOrderTypePartialStopLoss     StopOrderType = "PartialStopLoss"
	StopOrderTypeTpslOrder           StopOrderType = "tpslOrder"
	StopOrderTypeOcoOrder            StopOrderType = "OcoOrder"
	StopOrderTypeMmRateClose         StopOrderType = "MmRateClose"
	StopOrderTypeBidirectionalTpsl   StopOrderType = "BidirectionalTpslOrder"
)

// TriggerBy selects the price used to evaluate a trigger, "" when unset.
type TriggerBy string

const (
	TriggerByNone       TriggerBy = ""
	TriggerByLastPrice  TriggerBy = "LastPrice"
	TriggerByIndexPrice TriggerBy = "IndexPrice"
	TriggerByMarkPrice  TriggerBy = "MarkPrice"
)

// TpslMode is the take-profit/stop-loss mode, "" when unset.
type TpslMode string

const (
	TpslModeNone    TpslMode = ""
	TpslModeFull    TpslMode = "Full"
	TpslModePartial TpslMode = "Partial"
)

// CancelType names the reason an order was cancelled, "" when not cancelled.
type CancelType string

const (
	CancelTypeNone                       CancelType = ""
	CancelTypeUnknown                    CancelType = "UNKNOWN"
	CancelByUser                         CancelType = "CancelByUser"
	CancelByReduceOnly                   CancelType = "CancelByReduceOnly"
	CancelByPrepareLiq                   CancelType = "CancelByPrepareLiq"
	CancelAllBeforeLiq                   CancelType = "CancelAllBeforeLiq"
	CancelByPrepareAdl                   CancelType = "CancelByPrepareAdl"
	CancelAllBeforeAdl                   CancelType = "CancelAllBeforeAdl"
	CancelByAdmin                        CancelType = "CancelByAdmin"
	CancelBySettle                       CancelType = "CancelBySettle"
	CancelByTpSlTsClear                  CancelType = "CancelByTpSlTsClear"
	CancelBySmp                          CancelType = "CancelBySmp"
	CancelByCannotAffordOrderCost        CancelType = "CancelByCannotAffordOrderCost"
	CancelByPmTrialMmOverEquity          CancelType = "CancelByPmTrialMmOverEquity"
	CancelByAccountBlocking              CancelType = "CancelByAccountBlocking"
	CancelByDelivery                     CancelType = "CancelByDelivery"
	CancelByMmpTriggered                 CancelType = "CancelByMmpTriggered"
	CancelByCrossSelfMuch                CancelType = "CancelByCrossSelfMuch"
	CancelByCrossReachMaxTradeNum        CancelType = "CancelByCrossReachMaxTradeNum"
	CancelByDCP                          CancelType = "CancelByDCP"
)

// CreateType names what created an order, "" for categories where the
// exchange omits the field (spot).
type CreateType string

const (
	CreateTypeNone                 CreateType = ""
	CreateByUser                   CreateType = "CreateByUser"
	CreateByAdminClosing           CreateType = "CreateByAdminClosing"
	CreateByFutureSpread           CreateType = "CreateByFutureSpread"
	CreateByStopOrder              CreateType = "CreateByStopOrder"
	CreateByTakeProfit             CreateType = "CreateByTakeProfit"
	CreateByPartialTakeProfit      CreateType = "CreateByPartialTakeProfit"
	CreateByStopLoss               CreateType = "CreateByStopLoss"
	CreateByPartialStopLoss        CreateType = "CreateByPartialStopLoss"
	CreateByTrailingStop           CreateType = "CreateByTrailingStop"
	CreateByLiq                    CreateType = "CreateByLiq"
	CreateByTakeOverPassThrough    CreateType = "CreateByTakeOver_PassThrough"
	CreateByAdlPassThrough         CreateType = "CreateByAdl_PassThrough"
	CreateByBlockPassThrough       CreateType = "CreateByBlock_PassThrough"
	CreateByBlockTradeMovePosition CreateType = "CreateByBlockTradeMovePosition_PassThrough"
	CreateByClosing                CreateType = "CreateByClosing"
	CreateByFGridBot               CreateType = "CreateByFGridBot"
	CloseByFGridBot                CreateType = "CloseByFGridBot"
	CreateByTWAP                   CreateType = "CreateByTWAP"
	CreateByTVSignal               CreateType = "CreateByTVSignal"
	CreateByMmRateClose            CreateType = "CreateByMmRateClose"
	CreateByMartingaleBot          CreateType = "CreateByMartingaleBot"
	CloseByMartingaleBot           CreateType = "CloseByMartingaleBot"
	CreateByIceBerg                CreateType = "CreateByIceBerg"
	CreateByArbitrage              CreateType = "CreateByArbitrage"
	CreateByDdh                    CreateType = "CreateByDdh"
)

// RejectReason is the exchange reject code of an order, "EC_NoError" for
// accepted orders. The set is open-ended, so no constants are enumerated
// beyond the ones code branches on.
type RejectReason string

const (
	RejectReasonNoError           RejectReason = "EC_NoError"
	RejectReasonOthers            RejectReason = "EC_Others"
	RejectReasonPostOnlyWillTrade RejectReason = "EC_PostOnlyWillTakeLiquidity"
)

// SmpType is the self-match-prevention mode, "None" when disabled.
type SmpType string

const (
	SmpTypeNone        SmpType = "None"
	SmpTypeCancelMaker SmpType = "CancelMaker"
	SmpTypeCancelTaker SmpType = "CancelTaker"
	SmpTypeCancelBoth  SmpType = "CancelBoth"
)

// PlaceType marks option/iv-priced orders, "" otherwise.
type PlaceType string

const (
	PlaceTypeNone   PlaceType = ""
	PlaceTypeIV     PlaceType = "iv"
	PlaceTypePrice  PlaceType = "price"
	PlaceTypeOption PlaceType = "option"
)

// OcoTriggerBy is the leg of an OCO pair that fired, "" when not an OCO
// order.
type OcoTriggerBy string

const (
	OcoTriggerByNone    OcoTriggerBy = ""
	OcoTriggerByUnknown OcoTriggerBy = "OcoTriggerByUnknown"
	OcoTriggerByTp      OcoTriggerBy = "OcoTriggerByTp"
	OcoTriggerBySl      OcoTriggerBy = "OcoTriggerBySl"
)

// SlippageToleranceType is the slippage protection mode of a market order.
type SlippageToleranceType string

const (
	SlippageToleranceUnknown  SlippageToleranceType = "UNKNOWN"
	SlippageToleranceTickSize SlippageToleranceType = "TickSize"
	SlippageTolerancePercent  SlippageToleranceType = "Percent"
)

// PositionIdx distinguishes one-way from hedge-mode positions.
type PositionIdx int

const (
	PositionIdxOneWay    PositionIdx = 0
	PositionIdxHedgeBuy  PositionIdx = 1
	PositionIdxHedgeSell PositionIdx = 2
)

// TriggerDirection is the direction a conditional order waits for,
// 0 when the order is not conditional.
type TriggerDirection int

const (
	TriggerDirectionNone TriggerDirection = 0
	TriggerDirectionRise TriggerDirection = 1
	TriggerDirectionFall TriggerDirection = 2
)
