package service

import (
	"context"
	"log"
	"time"

	"qpay-checkout-api/internal/config"
	"qpay-checkout-api/internal/dao"
	"qpay-checkout-api/internal/model"
	"qpay-checkout-api/internal/mq"
	"qpay-checkout-api/internal/notify"
	"qpay-checkout-api/internal/sign"
	"qpay-checkout-api/internal/utils"
	"qpay-checkout-api/internal/wirexml"
)

const (
	AckSuccess = "SUCCESS"
	AckFail    = "FAIL"
)

// NotifyService 支付结果回调验签
type NotifyService struct {
	cfg   config.GatewayCfg
	dao   *dao.CheckoutDao
	cache Cache
}

func NewNotifyService(cfg config.GatewayCfg, cache Cache) *NotifyService {
	return &NotifyService{
		cfg:   cfg,
		dao:   dao.NewCheckoutDao(),
		cache: cache,
	}
}

// Handle 处理一条回调报文，始终返回应答 XML。
// 验签不通过是正常可报告结果（FAIL），不作为错误上抛；
// 报文不可解析同样以 FAIL 应答，交由网关按其重试语义处理。
func (s *NotifyService) Handle(ctx context.Context, raw []byte) []byte {
	code := s.process(ctx, raw)
	return wirexml.Encode(map[string]string{"return_code": code})
}

func (s *NotifyService) process(ctx context.Context, raw []byte) string {
	payment, err := wirexml.Decode(raw)
	if err != nil {
		log.Printf("回调报文解析失败: %v", err)
		return AckFail
	}

	// 取出传输的签名，剩余字段参与重新计算
	paymentSign := payment["sign"]
	if paymentSign == "" {
		log.Printf("回调报文缺少签名, out_trade_no: %s", payment["out_trade_no"])
		return AckFail
	}
	delete(payment, "sign")

	selfSign := sign.Generate(payment, s.cfg.NotifyKey)
	if !sign.Equal(paymentSign, selfSign) {
		notify.Alert("回调验签失败", map[string]string{
			"订单号": payment["out_trade_no"],
			"报文":  utils.MapToJSON(payment),
		})
		return AckFail
	}

	// nonce_str 随签名一同校验过，这里再做格式约束，拦截构造报文
	if n := payment["nonce_str"]; n != "" && !utils.IsValidNonce(n) {
		log.Printf("回调 nonce_str 非法, out_trade_no: %s", payment["out_trade_no"])
		return AckFail
	}

	// 金额核对：与下单时记录的 total_fee 比对，防止篡改金额的伪回调
	outTradeNo := payment["out_trade_no"]
	if outTradeNo != "" && s.cache != nil {
		if fee, err := s.cache.Get(ctx, feeCacheKey(outTradeNo)).Result(); err == nil && fee != payment["total_fee"] {
			notify.Alert("回调金额不符", map[string]string{
				"订单号":  outTradeNo,
				"下单金额": fee,
				"回调金额": payment["total_fee"],
			})
			return AckFail
		}
	}

	s.applyResult(ctx, payment)
	return AckSuccess
}

// applyResult 验签通过后登记支付结果，失败只记日志不影响应答
func (s *NotifyService) applyResult(ctx context.Context, payment map[string]string) {
	outTradeNo := payment["out_trade_no"]
	if outTradeNo == "" {
		return
	}

	// 同一订单的重复回调只登记一次
	if s.cache != nil {
		ok, err := s.cache.SetNX(ctx, "checkout:notified:"+outTradeNo, 1, feeCacheTTL).Result()
		if err == nil && !ok {
			log.Printf("回调重复送达, out_trade_no: %s", outTradeNo)
			return
		}
	}

	paid := payment["return_code"] == "SUCCESS" && payment["result_code"] != "FAIL"
	status := int8(model.OrderStatusFailed)
	if paid {
		status = model.OrderStatusPaid
	}
	if err := s.dao.UpdateNotifyResult(outTradeNo, status, payment["transaction_id"]); err != nil {
		log.Printf("回调订单状态更新失败, out_trade_no: %s, err: %v", outTradeNo, err)
	}

	if paid {
		var totalFee int64
		if order, err := s.dao.GetByOutTradeNo(outTradeNo); err == nil && order != nil {
			totalFee = order.TotalFee
		}
		_ = mq.PublishPaymentSucceeded(ctx, mq.PaymentSucceededEvent{
			OutTradeNo:    outTradeNo,
			TransactionID: payment["transaction_id"],
			TotalFee:      totalFee,
			PaidAt:        time.Now().Unix(),
		})
	}
}
