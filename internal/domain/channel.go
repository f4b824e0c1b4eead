package domain

import (
	"fmt"

	"gitee.com/flycash/order-notifier/internal/errs"
)

// Channel 通知渠道，同时也是模板类型
type Channel string

const (
	ChannelSMS        Channel = "SMS"              // 短信
	ChannelAlimTalk   Channel = "KAKAO_ALIMTALK"   // Kakao AlimTalk，需要审核过的模板
	ChannelFriendTalk Channel = "KAKAO_FRIENDTALK" // Kakao FriendTalk，自由文本
)

func (c Channel) String() string {
	return string(c)
}

func (c Channel) IsKakao() bool {
	return c == ChannelAlimTalk || c == ChannelFriendTalk
}

func (c Channel) Validate() error {
	switch c {
	case ChannelSMS, ChannelAlimTalk, ChannelFriendTalk:
		return nil
	default:
		return fmt.Errorf("%w: Channel = %q", errs.ErrInvalidParameter, c)
	}
}

// UsageType 渠道对应的计量类型，两种 Kakao 消息共享同一个额度
func (c Channel) UsageType() UsageType {
	if c.IsKakao() {
		return UsageKakao
	}
	return UsageSMS
}

// MessageKind 实际下发的消息形态
type MessageKind string

const (
	KindSMS        MessageKind = "SMS"
	KindLMS        MessageKind = "LMS" // 长短信
	KindAlimTalk   MessageKind = "ALIMTALK"
	KindFriendTalk MessageKind = "FRIENDTALK"
)

// DefaultKind 渠道的默认消息形态，SMS 超长时由模板渲染切换成 LMS
func (c Channel) DefaultKind() MessageKind {
	switch c {
	case ChannelAlimTalk:
		return KindAlimTalk
	case ChannelFriendTalk:
		return KindFriendTalk
	default:
		return KindSMS
	}
}
