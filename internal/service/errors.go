package service

import "errors"

// 下单流程的错误归类，handler 据此映射响应码
var (
	// ErrAuth 平台凭证获取失败
	ErrAuth = errors.New("access token resolution failed")
	// ErrGateway 网关传输层失败（网络异常或非 2xx 应答）
	ErrGateway = errors.New("payment gateway request failed")
	// ErrGatewayProtocol 网关应答格式正常但业务失败或缺少必要字段
	ErrGatewayProtocol = errors.New("unexpected payment gateway response")
)
