package dto

import "time"

// PayReq 下单请求
type PayReq struct {
	ProductID string `json:"product_id" binding:"required,max=32"`
	Body      string `json:"body" binding:"required,max=127"` // 商品描述
	Amount    string `json:"amount" binding:"required"`       // 单位元，最多两位小数
}

// JSAPIParams 返回给前端的支付调起参数
type JSAPIParams struct {
	AppID     string `json:"appid"`
	TimeStamp string `json:"timeStamp"`
	NonceStr  string `json:"nonceStr"`
	Package   string `json:"package"`
	SignType  string `json:"signType"`
	PaySign   string `json:"paySign"`
}

// OrderInfo 单次下单流程的订单快照，用于审计落库
type OrderInfo struct {
	OutTradeNo string
	Body       string
	TotalFee   int64
	ProductID  string
	TradeType  string
	ClientIP   string
	NonceStr   string
	PrepayID   string
	TraceID    string
	CreatedAt  time.Time
}
