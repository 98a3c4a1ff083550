// pkg/bybit/decode_test.go
package bybit

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeCommandAck(t *testing.T) {
	data := []byte(`{"success":true,"ret_msg":"","conn_id":"c0c928a4-daab-460d-b186-45e90a10a3d4","req_id":"","op":"subscribe"}`)

	msg, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ack, ok := msg.(*CommandAck)
	if !ok {
		t.Fatalf("Decode = %T, want *CommandAck", msg)
	}
	if ack.Op != OpSubscribe {
		t.Errorf("Op = %q, want subscribe", ack.Op)
	}
	if ack.ConnID != "c0c928a4-daab-460d-b186-45e90a10a3d4" {
		t.Errorf("ConnID = %q", ack.ConnID)
	}
	if !ack.OK() {
		t.Error("OK() = false for success:true")
	}
}

func TestDecodeCommandAckFailure(t *testing.T) {
	data := []byte(`{"success":false,"ret_msg":"error:handler not found","conn_id":"x","req_id":"req-7","op":"subscribe"}`)

	msg, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ack := msg.(*CommandAck)
	if ack.OK() {
		t.Error("OK() = true for success:false")
	}
	if ack.ReqID != "req-7" {
		t.Errorf("ReqID = %q, want req-7", ack.ReqID)
	}
	if ack.RetMsg != "error:handler not found" {
		t.Errorf("RetMsg = %q", ack.RetMsg)
	}
}

func TestDecodeTickerDelta(t *testing.T) {
	data := []byte(`{
	    "topic": "tickers.BTCUSDT",
	    "type": "delta",
	    "data": {
	        "symbol": "BTCUSDT",
	        "tickDirection": "PlusTick",
	        "price24hPcnt": "-0.015895",
	        "lastPrice": "63948.50",
	        "turnover24h": "6793884423.5518",
	        "volume24h": "105991.3760",
	        "bid1Price": "63948.40",
	        "bid1Size": "3.439",
	        "ask1Price": "63948.50",
	        "ask1Size": "2.566"
	    },
	    "cs": 195377749067,
	    "ts": 1718995014034
	}`)

	msg, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	delta, ok := msg.(*TickerDelta)
	if !ok {
		t.Fatalf("Decode = %T, want *TickerDelta", msg)
	}
	if delta.Topic != "tickers.BTCUSDT" || delta.TS != 1718995014034 {
		t.Errorf("envelope = %+v", delta)
	}
	if delta.CS != SomeUint(195377749067) {
		t.Errorf("CS = %+v", delta.CS)
	}
	d := delta.Data
	if d.Symbol != "BTCUSDT" || d.TickDirection != TickDirectionPlus {
		t.Errorf("symbol/tickDirection = %q/%q", d.Symbol, d.TickDirection)
	}
	if d.LastPrice != SomeFloat(63948.5) {
		t.Errorf("LastPrice = %+v", d.LastPrice)
	}
	if d.Price24HPcnt != SomeFloat(-0.015895) {
		t.Errorf("Price24HPcnt = %+v", d.Price24HPcnt)
	}
	if d.Bid1Size != SomeFloat(3.439) || d.Ask1Size != SomeFloat(2.566) {
		t.Errorf("sizes = %+v/%+v", d.Bid1Size, d.Ask1Size)
	}
	// Поля, отсутствующие в дельте, остаются не установленными.
	if d.MarkPrice.Set || d.FundingRate.Set || d.NextFundingTime.Set {
		t.Error("absent fields reported as set")
	}
	if d.CurPreListingPhase != nil {
		t.Errorf("CurPreListingPhase = %v, want nil", *d.CurPreListingPhase)
	}
}

func TestDecodeTickerSnapshot(t *testing.T) {
	data := []byte(`{
	    "topic": "tickers.BTCUSDT",
	    "type": "snapshot",
	    "data": {
	        "symbol":"BTCUSDT",
	        "tickDirection":"ZeroPlusTick",
	        "price24hPcnt":"-0.044555",
	        "lastPrice":"84594.40",
	        "prevPrice24h":"88539.30",
	        "highPrice24h":"89389.90",
	        "lowPrice24h":"82055.60",
	        "prevPrice1h":"84307.20",
	        "markPrice":"84594.00",
	        "indexPrice":"84650.47",
	        "openInterest":"52903.75",
	        "openInterestValue":"4475339827.50",
	        "turnover24h":"17166562011.6514",
	        "volume24h":"200176.9910",
	        "nextFundingTime":"1740643200000",
	        "fundingRate":"-0.00016974",
	        "bid1Price":"84594.30",
	        "bid1Size":"6.777",
	        "ask1Price":"84594.40",
	        "ask1Size":"0.660",
	        "preOpenPrice":"",
	        "preQty":"",
	        "curPreListingPhase":""
	    },
	    "cs": 337149693308,
	    "ts": 1740622194359
	}`)

	msg, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	snap, ok := msg.(*TickerSnapshot)
	if !ok {
		t.Fatalf("Decode = %T, want *TickerSnapshot", msg)
	}
	d := snap.Data
	if d.LastPrice != SomeFloat(84594.40) || d.MarkPrice != SomeFloat(84594.00) {
		t.Errorf("prices = %+v/%+v", d.LastPrice, d.MarkPrice)
	}
	if d.NextFundingTime != SomeUint(1740643200000) {
		t.Errorf("NextFundingTime = %+v", d.NextFundingTime)
	}
	if d.FundingRate != SomeFloat(-0.00016974) {
		t.Errorf("FundingRate = %+v", d.FundingRate)
	}
	// "" в числовых полях означает отсутствие значения.
	if d.PreOpenPrice.Set || d.PreQty.Set {
		t.Error("empty-string numerics reported as set")
	}
	// Строковое поле "" сохраняется как присутствующая пустая строка.
	if d.CurPreListingPhase == nil || *d.CurPreListingPhase != "" {
		t.Errorf("CurPreListingPhase = %v, want present empty string", d.CurPreListingPhase)
	}
	if d.DeliveryTime.Set || d.BasisRate.Set {
		t.Error("delivery fields reported as set for linear instrument")
	}
}

func TestDecodeTradeSnapshot(t *testing.T) {
	data := []byte(`{
	    "topic":"publicTrade.BTCUSDT",
	    "type":"snapshot",
	    "ts":1741433245359,
	    "data":[
	        {
	            "T":1741433245357,
	            "s":"BTCUSDT",
	            "S":"Buy",
	            "v":"0.007",
	            "p":"85821.00",
	            "L":"PlusTick",
	            "i":"485eaa70-df6e-5260-bbef-4f7324e3c5d9",
	            "BT":false
	        }
	    ]
	}`)

	msg, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	snap, ok := msg.(*TradeSnapshot)
	if !ok {
		t.Fatalf("Decode = %T, want *TradeSnapshot", msg)
	}
	if len(snap.Data) != 1 {
		t.Fatalf("len(Data) = %d", len(snap.Data))
	}
	trade := snap.Data[0]
	if trade.Symbol != "BTCUSDT" || trade.Side != SideBuy {
		t.Errorf("trade = %+v", trade)
	}
	if trade.Size != 0.007 || trade.Price != 85821.00 {
		t.Errorf("size/price = %v/%v", trade.Size, trade.Price)
	}
	if trade.TradeID != "485eaa70-df6e-5260-bbef-4f7324e3c5d9" {
		t.Errorf("TradeID = %q", trade.TradeID)
	}
	if trade.BlockTrade || trade.RPITrade != nil {
		t.Error("unexpected block/rpi flags")
	}
	if trade.MarkPrice.Set || trade.IV.Set {
		t.Error("option-only fields reported as set for linear trade")
	}
}

func TestDecodeKlineSnapshot(t *testing.T) {
	data := []byte(`{
	    "topic":"kline.5.BTCUSDT",
	    "type":"snapshot",
	    "ts":1672324988882,
	    "data":[
	        {
	            "start":1672324800000,
	            "end":1672325099999,
	            "interval":"5",
	            "open":"16649.5",
	            "close":"16677",
	            "high":"16677",
	            "low":"16608",
	            "volume":"2.081",
	            "turnover":"34666.4005",
	            "confirm":false,
	            "timestamp":1672324988882
	        }
	    ]
	}`)

	msg, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	snap, ok := msg.(*KlineSnapshot)
	if !ok {
		t.Fatalf("Decode = %T, want *KlineSnapshot", msg)
	}
	k := snap.Data[0]
	if k.Interval != Interval5m {
		t.Errorf("Interval = %q", k.Interval)
	}
	if k.Open != 16649.5 || k.Close != 16677 || k.Low != 16608 {
		t.Errorf("ohlc = %+v", k)
	}
	if k.Confirm {
		t.Error("Confirm = true for open candle")
	}
}

func TestDecodeLiquidationSnapshot(t *testing.T) {
	data := []byte(`{
	    "topic":"allLiquidation.BTCUSDT",
	    "type":"snapshot",
	    "ts":1741450605553,
	    "data":[
	        {
	            "T":1741450605236,
	            "s":"BTCUSDT",
	            "S":"Buy",
	            "v":"0.001",
	            "p":"85823.60"
	        }
	    ]
	}`)

	msg, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	snap, ok := msg.(*LiquidationSnapshot)
	if !ok {
		t.Fatalf("Decode = %T, want *LiquidationSnapshot", msg)
	}
	l := snap.Data[0]
	if l.Symbol != "BTCUSDT" || l.Side != SideBuy || l.Size != 0.001 || l.Price != 85823.60 {
		t.Errorf("liquidation = %+v", l)
	}
}

func TestDecodeOrderUpdate(t *testing.T) {
	data := []byte(`{
	    "id": "5923240c6880ab-c59f-420b-9adb-3639adc9dd90",
	    "topic": "order",
	    "creationTime": 1672364262474,
	    "data": [
	        {
	            "symbol": "ETH-30DEC22-1400-C",
	            "orderId": "5cf98598-39a7-459e-97bf-76ca765ee020",
	            "side": "Sell",
	            "orderType": "Market",
	            "cancelType": "UNKNOWN",
	            "price": "72.5",
	            "qty": "1",
	            "orderIv": "",
	            "timeInForce": "IOC",
	            "orderStatus": "Filled",
	            "orderLinkId": "",
	            "lastPriceOnCreated": "",
	            "reduceOnly": false,
	            "leavesQty": "",
	            "leavesValue": "",
	            "cumExecQty": "1",
	            "cumExecValue": "75",
	            "avgPrice": "75",
	            "blockTradeId": "",
	            "positionIdx": 0,
	            "cumExecFee": "0.358635",
	            "closedPnl": "0",
	            "createdTime": "1672364262444",
	            "updatedTime": "1672364262457",
	            "rejectReason": "EC_NoError",
	            "stopOrderType": "",
	            "tpslMode": "",
	            "triggerPrice": "",
	            "takeProfit": "",
	            "stopLoss": "",
	            "tpTriggerBy": "",
	            "slTriggerBy": "",
	            "tpLimitPrice": "",
	            "slLimitPrice": "",
	            "triggerDirection": 0,
	            "triggerBy": "",
	            "closeOnTrigger": false,
	            "category": "option",
	            "placeType": "price",
	            "smpType": "None",
	            "smpGroup": 0,
	            "smpOrderId": "",
	            "feeCurrency": ""
	        }
	    ]
	}`)

	msg, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	update, ok := msg.(*OrderUpdate)
	if !ok {
		t.Fatalf("Decode = %T, want *OrderUpdate", msg)
	}
	if update.ID != "5923240c6880ab-c59f-420b-9adb-3639adc9dd90" || update.CreationTime != 1672364262474 {
		t.Errorf("envelope = %+v", update)
	}
	if len(update.Data) != 1 {
		t.Fatalf("len(Data) = %d", len(update.Data))
	}
	o := update.Data[0]
	if o.Category != CategoryOption || o.Side != SideSell || o.OrderType != OrderTypeMarket {
		t.Errorf("order = %+v", o)
	}
	if o.OrderStatus != OrderStatusFilled {
		t.Errorf("OrderStatus = %q", o.OrderStatus)
	}
	if !o.OrderStatus.IsClosed() || o.OrderStatus.IsOpen() {
		t.Error("Filled must be closed and not open")
	}
	if o.Price != 72.5 || o.Qty != 1 || o.AvgPrice != SomeFloat(75) {
		t.Errorf("price/qty/avg = %v/%v/%+v", o.Price, o.Qty, o.AvgPrice)
	}
	if o.CumExecFee != 0.358635 {
		t.Errorf("CumExecFee = %v", o.CumExecFee)
	}
	if o.LeavesQty.Set || o.OrderIV.Set || o.TriggerPrice.Set {
		t.Error("empty-string numerics reported as set")
	}
	if o.StopOrderType != StopOrderTypeNone || o.TpslMode != TpslModeNone || o.TriggerBy != TriggerByNone {
		t.Errorf("empty enums not mapped to None: %+v", o)
	}
	if o.RejectReason != RejectReasonNoError {
		t.Errorf("RejectReason = %q", o.RejectReason)
	}
	if o.PositionIdx != PositionIdxOneWay || o.TriggerDirection != TriggerDirectionNone {
		t.Errorf("positionIdx/triggerDirection = %v/%v", o.PositionIdx, o.TriggerDirection)
	}
	if o.PlaceType != PlaceTypePrice || o.SmpType != SmpTypeNone {
		t.Errorf("placeType/smpType = %q/%q", o.PlaceType, o.SmpType)
	}
	if o.CreatedTime != 1672364262444 || o.UpdatedTime != 1672364262457 {
		t.Errorf("times = %v/%v", o.CreatedTime, o.UpdatedTime)
	}
}

func TestDecodeIdempotent(t *testing.T) {
	data := []byte(`{"topic":"tickers.BTCUSDT","type":"delta","data":{"symbol":"BTCUSDT","lastPrice":"63948.50"},"cs":1,"ts":2}`)
	first, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	second, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("decode not idempotent: %+v vs %+v", first, second)
	}
}

func TestDecodeUnrecognized(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty object", `{}`},
		{"unknown topic", `{"topic":"orderbook.50.BTCUSDT","type":"snapshot","data":{}}`},
		{"unknown op", `{"op":"input","success":true}`},
		{"ticker without type", `{"topic":"tickers.BTCUSDT","data":{}}`},
		{"not json", `ping`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := Decode([]byte(tc.data))
			if err == nil {
				t.Fatalf("Decode = %T, want error", msg)
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("error type = %T, want *DecodeError", err)
			}
			if string(decodeErr.Raw) != tc.data {
				t.Errorf("Raw = %q, want original payload", decodeErr.Raw)
			}
		})
	}
}
