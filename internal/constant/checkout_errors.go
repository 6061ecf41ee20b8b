package constant

// 系统级错误码 (1xxx)
const (
	CodeSuccess       = 0    // 操作成功
	CodeSystemError   = 1000 // 系统内部错误，服务器遇到意外情况无法完成请求
	CodeInternalError = 1003 // 内部服务错误，业务逻辑处理过程中出现的未预期异常
	CodeInvalidParams = 1100 // 参数格式错误，请求参数不符合预期格式或规范
	CodeMissingParams = 1101 // 缺少必要参数
)

// 网关交互错误码 (3xxx)
const (
	CodeTokenFailed        = 3000 // 平台凭证获取失败，无法取得 access_token
	CodeGatewayError       = 3001 // 支付网关请求失败，网络异常或返回非 2xx 状态
	CodeGatewayProtocol    = 3002 // 支付网关响应异常，应答缺少必要字段或业务失败
	CodeGatewayDecode      = 3003 // 支付网关响应无法解析
	CodeOrderAmountInvalid = 3100 // 订单金额无效，请检查金额格式和范围
)
