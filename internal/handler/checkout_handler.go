package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"qpay-checkout-api/internal/config"
	"qpay-checkout-api/internal/constant"
	"qpay-checkout-api/internal/dal"
	"qpay-checkout-api/internal/dto"
	"qpay-checkout-api/internal/service"
	"qpay-checkout-api/internal/token"
	"qpay-checkout-api/internal/utils"
	"qpay-checkout-api/internal/wirexml"
)

// CheckoutHandler 支付下单与回调处理器
type CheckoutHandler struct {
	svc       *service.CheckoutService
	notifySvc *service.NotifyService
}

func NewCheckoutHandler() *CheckoutHandler {
	tokens := token.NewPlatformProvider(config.C.Gateway, dal.RedisClient)
	// 未初始化 Redis 时传空接口，服务内部按无缓存退化
	var cache service.Cache
	if dal.RedisClient != nil {
		cache = dal.RedisClient
	}
	return &CheckoutHandler{
		svc:       service.NewCheckoutService(config.C.Gateway, tokens, cache),
		notifySvc: service.NewNotifyService(config.C.Gateway, cache),
	}
}

// Pay 下单并返回 JSAPI 调起参数
func (h *CheckoutHandler) Pay(c *gin.Context) {
	var req dto.PayReq
	if err := c.ShouldBindJSON(&req); err != nil {
		// 字段校验错误逐项提取字段名与原因
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			errFields := make([]map[string]string, 0)
			for _, fe := range ve {
				errFields = append(errFields, map[string]string{
					"field": fe.Field(),
					"error": utils.ValidationMsg(fe),
				})
			}
			c.JSON(http.StatusBadRequest, gin.H{
				"code":   constant.CodeInvalidParams,
				"msg":    "参数校验失败",
				"errors": errFields,
			})
			return
		}
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
		return
	}

	traceID := c.Writer.Header().Get("X-Trace-ID")
	params, err := h.svc.Create(c.Request.Context(), req, utils.GetRealClientIP(c), traceID)
	if err != nil {
		log.Printf("[TraceId]: %v, 下单失败: %v", traceID, err)
		c.JSON(http.StatusOK, utils.ErrorWithTrace(mapCreateError(err), traceID))
		return
	}

	c.JSON(http.StatusOK, utils.Success(params))
}

// PayNotify 接收网关支付结果回调，返回 XML 应答
func (h *CheckoutHandler) PayNotify(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("回调读取失败: %v", err)
		c.Data(http.StatusOK, "application/xml; charset=utf-8",
			wirexml.Encode(map[string]string{"return_code": service.AckFail}))
		return
	}

	ack := h.notifySvc.Handle(c.Request.Context(), raw)
	c.Data(http.StatusOK, "application/xml; charset=utf-8", ack)
}

// mapCreateError 下单错误归类到响应码
func mapCreateError(err error) int {
	var ce constant.Error
	if errors.As(err, &ce) {
		return ce.Code()
	}
	var de *wirexml.DecodeError
	switch {
	case errors.Is(err, service.ErrAuth):
		return constant.CodeTokenFailed
	case errors.Is(err, service.ErrGateway):
		return constant.CodeGatewayError
	case errors.Is(err, service.ErrGatewayProtocol):
		return constant.CodeGatewayProtocol
	case errors.As(err, &de):
		return constant.CodeGatewayDecode
	default:
		return constant.CodeSystemError
	}
}
