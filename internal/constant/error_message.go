package constant

// ErrorInfo 错误信息结构
type ErrorInfo struct {
	CN string `json:"cn"` // 中文错误信息
	EN string `json:"en"` // 英文错误信息
}

// ErrorMessages 错误信息映射
var ErrorMessages = map[int]ErrorInfo{
	// 系统错误
	CodeSuccess:       {"操作成功", "Success"},
	CodeSystemError:   {"系统错误", "System error"},
	CodeInternalError: {"内部服务错误", "Internal error"},
	CodeInvalidParams: {"参数格式错误", "Invalid parameters"},
	CodeMissingParams: {"缺少必要参数", "Missing parameters"},

	// 网关交互错误
	CodeTokenFailed:        {"平台凭证获取失败", "Access token resolution failed"},
	CodeGatewayError:       {"支付网关请求失败", "Payment gateway request failed"},
	CodeGatewayProtocol:    {"支付网关响应异常", "Unexpected payment gateway response"},
	CodeGatewayDecode:      {"支付网关响应无法解析", "Payment gateway response undecodable"},
	CodeOrderAmountInvalid: {"订单金额无效", "Order amount invalid"},
}
