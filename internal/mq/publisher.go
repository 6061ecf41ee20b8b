package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/streadway/amqp"

	"qpay-checkout-api/internal/dal"
	"qpay-checkout-api/internal/utils"
)

// PaymentSucceededEvent 支付成功事件，供下游（对账、统计）消费
type PaymentSucceededEvent struct {
	OutTradeNo    string `json:"out_trade_no"`
	TransactionID string `json:"transaction_id"`
	TotalFee      int64  `json:"total_fee"`
	PaidAt        int64  `json:"paid_at"`
}

// PublishPaymentSucceeded 发布支付成功事件，带重试。
// MQ 未初始化时静默跳过，不影响回调应答。
func PublishPaymentSucceeded(ctx context.Context, evt PaymentSucceededEvent) error {
	if dal.RabbitCh == nil {
		return nil
	}
	b, _ := json.Marshal(evt)
	err := utils.DoWithRetry(ctx, 3, 500*time.Millisecond, func() error {
		return dal.RabbitCh.Publish(
			"payment_events",
			"payment.succeeded",
			false, false,
			amqp.Publishing{
				DeliveryMode: amqp.Persistent,
				ContentType:  "application/json",
				Body:         b,
			},
		)
	})
	if err != nil {
		log.Printf("publish payment.succeeded failed: %v", err)
	}
	return err
}
