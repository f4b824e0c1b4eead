package template

import "gitee.com/flycash/order-notifier/internal/domain"

// OrderVariables 订单接收通知的变量
var OrderVariables = []string{"companyName", "orderDate", "deliveryDate", "shortDate", "deliveryTime"}

// Defaults 内置的默认模板。短信版本只用短日期，尽量控制在 90 字节以内
func Defaults() []domain.Template {
	return []domain.Template{
		{
			Name:      domain.TemplateOrderReceived,
			Type:      domain.ChannelSMS,
			Content:   "[{{companyName}}] 주문접수 완료. 배송예정 {{shortDate}} {{deliveryTime}}",
			Variables: OrderVariables,
		},
		{
			Name: domain.TemplateOrderReceived,
			Type: domain.ChannelAlimTalk,
			Content: "[{{companyName}}] 주문이 접수되었습니다.\n\n" +
				"■ 주문일시: {{orderDate}}\n" +
				"■ 배송예정일: {{deliveryDate}} {{deliveryTime}}\n\n" +
				"이용해 주셔서 감사합니다.",
			Variables:    OrderVariables,
			TemplateCode: domain.TemplateOrderReceived,
		},
		{
			Name: domain.TemplateOrderReceived,
			Type: domain.ChannelFriendTalk,
			Content: "[{{companyName}}] 주문이 접수되었습니다.\n" +
				"주문일시: {{orderDate}}\n" +
				"배송예정일: {{deliveryDate}} {{deliveryTime}}",
			Variables: OrderVariables,
		},
	}
}
