package dao

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"

	"qpay-checkout-api/internal/dal"
	"qpay-checkout-api/internal/dto"
	"qpay-checkout-api/internal/model"
)

type CheckoutDao struct{}

func NewCheckoutDao() *CheckoutDao { return &CheckoutDao{} }

// Insert 落库一条下单审计记录
func (d *CheckoutDao) Insert(info dto.OrderInfo) error {
	if dal.DB == nil {
		return nil
	}
	var m model.CheckoutOrder
	if err := copier.Copy(&m, &info); err != nil {
		return fmt.Errorf("copy order info failed: %w", err)
	}
	m.Status = model.OrderStatusCreated
	return dal.DB.Create(&m).Error
}

// GetByOutTradeNo 按商户订单号查询
func (d *CheckoutDao) GetByOutTradeNo(outTradeNo string) (*model.CheckoutOrder, error) {
	if dal.DB == nil {
		return nil, nil
	}
	var m model.CheckoutOrder
	if err := dal.DB.Where("out_trade_no = ?", outTradeNo).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateNotifyResult 回调处理后更新订单状态
func (d *CheckoutDao) UpdateNotifyResult(outTradeNo string, status int8, transactionID string) error {
	if dal.DB == nil {
		return nil
	}
	now := time.Now()
	updateData := map[string]interface{}{
		"status":      status,
		"notify_time": now,
		"updated_at":  now,
	}
	if transactionID != "" {
		updateData["transaction_id"] = transactionID
	}
	return dal.DB.Model(&model.CheckoutOrder{}).
		Where("out_trade_no = ?", outTradeNo).
		Updates(updateData).Error
}
