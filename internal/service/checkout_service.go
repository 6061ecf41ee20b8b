package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"qpay-checkout-api/internal/config"
	"qpay-checkout-api/internal/constant"
	"qpay-checkout-api/internal/dao"
	"qpay-checkout-api/internal/dto"
	"qpay-checkout-api/internal/idgen"
	"qpay-checkout-api/internal/notify"
	"qpay-checkout-api/internal/sign"
	"qpay-checkout-api/internal/token"
	"qpay-checkout-api/internal/utils"
	"qpay-checkout-api/internal/wirexml"
)

// 金额核对缓存的有效期，覆盖网关回调的重试窗口
const feeCacheTTL = 2 * time.Hour

func feeCacheKey(outTradeNo string) string {
	return "checkout:fee:" + outTradeNo
}

// Cache 收敛本包用到的 Redis 能力子集，*redis.Client 天然满足
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// CheckoutService 统一下单编排：组单、签名、提交网关、派生 JSAPI 参数
type CheckoutService struct {
	cfg    config.GatewayCfg
	tokens token.Provider
	dao    *dao.CheckoutDao
	cache  Cache
}

func NewCheckoutService(cfg config.GatewayCfg, tokens token.Provider, cache Cache) *CheckoutService {
	return &CheckoutService{
		cfg:    cfg,
		tokens: tokens,
		dao:    dao.NewCheckoutDao(),
		cache:  cache,
	}
}

// Create 处理一次下单流程，返回前端调起支付所需的 JSAPI 参数。
// 网关调用不做自动重试，失败直接上抛由调用方决定策略。
func (s *CheckoutService) Create(ctx context.Context, req dto.PayReq, clientIP, traceID string) (dto.JSAPIParams, error) {
	var params dto.JSAPIParams

	totalFee, err := utils.YuanToFen(req.Amount)
	if err != nil {
		return params, constant.NewError(constant.CodeOrderAmountInvalid)
	}

	// 1) 平台凭证
	accessToken, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return params, fmt.Errorf("%w: %v", ErrAuth, err)
	}

	// 2) 组装订单
	now := time.Now()
	outTradeNo := idgen.OrderNo(now)
	nonce := utils.GenerateNonce(32)
	order := map[string]string{
		"appid":            s.cfg.AppID,
		"mch_id":           s.cfg.MchID,
		"out_trade_no":     outTradeNo,
		"body":             req.Body,
		"total_fee":        strconv.FormatInt(totalFee, 10),
		"trade_type":       s.cfg.TradeType,
		"product_id":       req.ProductID,
		"notify_url":       s.cfg.NotifyURL,
		"nonce_str":        nonce,
		"spbill_create_ip": clientIP,
	}

	// 3) 签名 + 4) XML 编码
	order["sign"] = sign.Generate(order, s.cfg.PayKey)
	payload := wirexml.Encode(order)

	// 5) 提交统一下单接口
	orderURL := fmt.Sprintf("%s?appid=%s&access_token=%s&real_notify_url=%s",
		s.cfg.OrderURL,
		url.QueryEscape(s.cfg.PlatformAppID),
		url.QueryEscape(accessToken),
		url.QueryEscape(s.cfg.NotifyURL))
	respBody, err := utils.HttpPostXMLWithContext(ctx, orderURL, payload, s.cfg.Timeout)
	if err != nil {
		notify.Alert("统一下单请求失败", map[string]string{
			"订单号": outTradeNo,
			"错误":  err.Error(),
		})
		return params, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	// 6) 解析应答，prepay_id 必须存在
	respFields, err := wirexml.Decode(respBody)
	if err != nil {
		return params, err
	}
	if rc := respFields["return_code"]; rc != "" && rc != "SUCCESS" {
		return params, fmt.Errorf("%w: return_code=%s return_msg=%s",
			ErrGatewayProtocol, rc, respFields["return_msg"])
	}
	if res := respFields["result_code"]; res != "" && res != "SUCCESS" {
		return params, fmt.Errorf("%w: result_code=%s err_code=%s err_code_des=%s",
			ErrGatewayProtocol, res, respFields["err_code"], respFields["err_code_des"])
	}
	prepayID := respFields["prepay_id"]
	if prepayID == "" {
		return params, fmt.Errorf("%w: missing prepay_id", ErrGatewayProtocol)
	}

	// 7) 派生 JSAPI 参数并二次签名
	jsapi := map[string]string{
		"appid":     s.cfg.AppID,
		"timeStamp": strconv.FormatInt(time.Now().Unix(), 10),
		"nonceStr":  nonce,
		"package":   "prepay_id=" + prepayID,
		"signType":  "MD5",
	}
	paySign := sign.Generate(jsapi, s.cfg.PayKey)

	// 8) 审计落库与金额核对缓存，尽力而为，不阻塞下单
	s.recordOrder(ctx, dto.OrderInfo{
		OutTradeNo: outTradeNo,
		Body:       req.Body,
		TotalFee:   totalFee,
		ProductID:  req.ProductID,
		TradeType:  s.cfg.TradeType,
		ClientIP:   clientIP,
		NonceStr:   nonce,
		PrepayID:   prepayID,
		TraceID:    traceID,
		CreatedAt:  now,
	})

	params = dto.JSAPIParams{
		AppID:     jsapi["appid"],
		TimeStamp: jsapi["timeStamp"],
		NonceStr:  jsapi["nonceStr"],
		Package:   jsapi["package"],
		SignType:  jsapi["signType"],
		PaySign:   paySign,
	}
	log.Printf("下单成功, out_trade_no: %s, prepay_id: %s", outTradeNo, prepayID)
	return params, nil
}

func (s *CheckoutService) recordOrder(ctx context.Context, info dto.OrderInfo) {
	if err := s.dao.Insert(info); err != nil {
		log.Printf("订单审计落库失败, out_trade_no: %s, err: %v", info.OutTradeNo, err)
	}
	if s.cache != nil {
		key := feeCacheKey(info.OutTradeNo)
		fee := strconv.FormatInt(info.TotalFee, 10)
		if err := s.cache.Set(ctx, key, fee, feeCacheTTL).Err(); err != nil {
			log.Printf("金额核对缓存写入失败, out_trade_no: %s, err: %v", info.OutTradeNo, err)
		}
	}
}
