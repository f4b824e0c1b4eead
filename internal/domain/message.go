package domain

// Message 交给供应商发送的消息
type Message struct {
	Channel   Channel
	Kind      MessageKind
	Recipient string
	// 发信号码，只对 SMS 有意义
	Sender       string
	Subject      string
	Content      string
	TemplateCode string
	Variables    map[string]string
}

// SendResponse 供应商的发送结果
type SendResponse struct {
	MessageID string
	Provider  string
}

// Balance 供应商账户余额
type Balance struct {
	Provider string
	Amount   float64
	Unit     string
}
