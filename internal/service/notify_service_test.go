package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"

	"qpay-checkout-api/internal/sign"
	"qpay-checkout-api/internal/wirexml"
)

// fakeCache 用内存 map 顶替 Redis，行为对齐 GET/SET/SETNX
type fakeCache struct {
	store map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if v, ok := f.store[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.store[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCache) SetNX(ctx context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	if _, ok := f.store[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.store[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func notifyPayload(t *testing.T, tamper func(map[string]string)) []byte {
	t.Helper()
	payment := map[string]string{
		"appid":          "wxcd2bfbbc93382620",
		"mch_id":         "1544401641",
		"out_trade_no":   "202301011200000000000001",
		"transaction_id": "4200001234202301010000001",
		"total_fee":      "1",
		"return_code":    "SUCCESS",
		"result_code":    "SUCCESS",
		"nonce_str":      "q8FJvFqNQ2vpAOyMLrEUqWsDSNT7hGNr",
	}
	payment["sign"] = sign.Generate(payment, testNotifyKey)
	if tamper != nil {
		tamper(payment)
	}
	return wirexml.Encode(payment)
}

func ackCode(t *testing.T, ack []byte) string {
	t.Helper()
	fields, err := wirexml.Decode(ack)
	if err != nil {
		t.Fatalf("ack undecodable: %v", err)
	}
	code, ok := fields["return_code"]
	if !ok {
		t.Fatalf("ack missing return_code: %s", ack)
	}
	return code
}

func TestNotifyValidSignature(t *testing.T) {
	svc := NewNotifyService(gatewayCfg(""), nil)
	ack := svc.Handle(context.Background(), notifyPayload(t, nil))
	if got := ackCode(t, ack); got != AckSuccess {
		t.Errorf("ack: got %s, want %s", got, AckSuccess)
	}
}

func TestNotifyTamperedAmount(t *testing.T) {
	svc := NewNotifyService(gatewayCfg(""), nil)
	// 金额被改、签名保持原值
	ack := svc.Handle(context.Background(), notifyPayload(t, func(p map[string]string) {
		p["total_fee"] = "9999"
	}))
	if got := ackCode(t, ack); got != AckFail {
		t.Errorf("ack: got %s, want %s", got, AckFail)
	}
}

func TestNotifyFeeMismatch(t *testing.T) {
	// 签名完全合法，但 total_fee 与下单时缓存的金额不一致
	cache := newFakeCache()
	cache.store[feeCacheKey("202301011200000000000001")] = "200"

	svc := NewNotifyService(gatewayCfg(""), cache)
	ack := svc.Handle(context.Background(), notifyPayload(t, nil))
	if got := ackCode(t, ack); got != AckFail {
		t.Errorf("ack: got %s, want %s", got, AckFail)
	}
}

func TestNotifyFeeMatch(t *testing.T) {
	cache := newFakeCache()
	cache.store[feeCacheKey("202301011200000000000001")] = "1"

	svc := NewNotifyService(gatewayCfg(""), cache)
	ack := svc.Handle(context.Background(), notifyPayload(t, nil))
	if got := ackCode(t, ack); got != AckSuccess {
		t.Errorf("ack: got %s, want %s", got, AckSuccess)
	}
}

func TestNotifyDuplicateDelivery(t *testing.T) {
	cache := newFakeCache()
	svc := NewNotifyService(gatewayCfg(""), cache)
	raw := notifyPayload(t, nil)

	// 重复送达同样以 SUCCESS 应答，只登记一次
	for i := 0; i < 2; i++ {
		ack := svc.Handle(context.Background(), raw)
		if got := ackCode(t, ack); got != AckSuccess {
			t.Errorf("delivery %d: ack %s, want %s", i+1, got, AckSuccess)
		}
	}
	if _, ok := cache.store["checkout:notified:202301011200000000000001"]; !ok {
		t.Errorf("dedupe mark not set")
	}
}

func TestNotifyInvalidNonce(t *testing.T) {
	payment := map[string]string{
		"out_trade_no": "202301011200000000000003",
		"total_fee":    "1",
		"return_code":  "SUCCESS",
		"nonce_str":    "bad nonce!",
	}
	payment["sign"] = sign.Generate(payment, testNotifyKey)

	svc := NewNotifyService(gatewayCfg(""), nil)
	ack := svc.Handle(context.Background(), wirexml.Encode(payment))
	if got := ackCode(t, ack); got != AckFail {
		t.Errorf("ack: got %s, want %s", got, AckFail)
	}
}

func TestNotifyMissingSign(t *testing.T) {
	svc := NewNotifyService(gatewayCfg(""), nil)
	ack := svc.Handle(context.Background(), notifyPayload(t, func(p map[string]string) {
		delete(p, "sign")
	}))
	if got := ackCode(t, ack); got != AckFail {
		t.Errorf("ack: got %s, want %s", got, AckFail)
	}
}

func TestNotifyMalformedXML(t *testing.T) {
	svc := NewNotifyService(gatewayCfg(""), nil)
	for _, raw := range []string{"", "not xml", "<xml><sign>X</xml>"} {
		ack := svc.Handle(context.Background(), []byte(raw))
		if got := ackCode(t, ack); got != AckFail {
			t.Errorf("raw %q: ack %s, want %s", raw, got, AckFail)
		}
	}
}

func TestNotifyWrongKey(t *testing.T) {
	payment := map[string]string{
		"out_trade_no": "202301011200000000000002",
		"total_fee":    "1",
		"return_code":  "SUCCESS",
	}
	// 误用下单密钥签名的回调必须被拒绝
	payment["sign"] = sign.Generate(payment, testPayKey)

	svc := NewNotifyService(gatewayCfg(""), nil)
	ack := svc.Handle(context.Background(), wirexml.Encode(payment))
	if got := ackCode(t, ack); got != AckFail {
		t.Errorf("ack: got %s, want %s", got, AckFail)
	}
}
