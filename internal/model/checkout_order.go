package model

import "time"

// 订单状态
const (
	OrderStatusCreated = 0 // 已创建，等待支付结果
	OrderStatusPaid    = 1 // 已支付（回调验签通过）
	OrderStatusFailed  = 2 // 回调报告失败或验签不通过
)

// CheckoutOrder 下单审计记录
type CheckoutOrder struct {
	ID            uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OutTradeNo    string     `gorm:"size:32;uniqueIndex" json:"out_trade_no"`
	Body          string     `gorm:"size:127" json:"body"`
	TotalFee      int64      `json:"total_fee"` // 单位分
	ProductID     string     `gorm:"size:32" json:"product_id"`
	TradeType     string     `gorm:"size:16" json:"trade_type"`
	ClientIP      string     `gorm:"size:64" json:"client_ip"`
	NonceStr      string     `gorm:"size:32" json:"nonce_str"`
	PrepayID      string     `gorm:"size:64" json:"prepay_id"`
	TraceID       string     `gorm:"size:36" json:"trace_id"`
	Status        int8       `json:"status"`
	TransactionID string     `gorm:"size:64" json:"transaction_id"`
	NotifyTime    *time.Time `json:"notify_time"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (CheckoutOrder) TableName() string { return "p_checkout_order" }
