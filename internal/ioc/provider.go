package ioc

import (
	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/service/provider"
	"gitee.com/flycash/order-notifier/internal/service/provider/kakao"
	"gitee.com/flycash/order-notifier/internal/service/provider/memory"
	"gitee.com/flycash/order-notifier/internal/service/provider/metrics"
	"gitee.com/flycash/order-notifier/internal/service/provider/sequential"
	"gitee.com/flycash/order-notifier/internal/service/provider/sms"
	"gitee.com/flycash/order-notifier/internal/service/provider/sms/client"
	"gitee.com/flycash/order-notifier/internal/service/provider/tracing"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
)

const (
	smsGateway = "gateway"
	smsAliyun  = "aliyun"
	smsTencent = "tencentcloud"
)

type smsConfig struct {
	DefaultSender string `yaml:"defaultSender"`
	// 多个平台按顺序尝试
	Order   []string             `yaml:"order"`
	Gateway client.GatewayConfig `yaml:"gateway"`
	Aliyun  struct {
		RegionID        string     `yaml:"regionId"`
		AccessKeyID     string     `yaml:"accessKeyId"`
		AccessKeySecret string     `yaml:"accessKeySecret"`
		Template        sms.Config `yaml:"template"`
	} `yaml:"aliyun"`
	Tencent struct {
		RegionID  string     `yaml:"regionId"`
		SecretID  string     `yaml:"secretId"`
		SecretKey string     `yaml:"secretKey"`
		AppID     string     `yaml:"appId"`
		Template  sms.Config `yaml:"template"`
	} `yaml:"tencentcloud"`
}

// InitSMSProviders 按配置的顺序创建短信平台，没有配置的平台不会出现在结果里
func InitSMSProviders() []*sms.Provider {
	var cfg smsConfig
	if err := econf.UnmarshalKey("sms", &cfg); err != nil {
		panic(err)
	}
	res := make([]*sms.Provider, 0, len(cfg.Order))
	for _, name := range cfg.Order {
		switch name {
		case smsGateway:
			res = append(res, sms.NewProvider(name, sms.Config{Direct: true}, client.NewHTTPGateway(cfg.Gateway)))
		case smsAliyun:
			c, err := client.NewAliyunSMS(cfg.Aliyun.RegionID, cfg.Aliyun.AccessKeyID, cfg.Aliyun.AccessKeySecret)
			if err != nil {
				panic(err)
			}
			res = append(res, sms.NewProvider(name, cfg.Aliyun.Template, c))
		case smsTencent:
			c, err := client.NewTencentCloudSMS(cfg.Tencent.RegionID, cfg.Tencent.SecretID, cfg.Tencent.SecretKey, cfg.Tencent.AppID)
			if err != nil {
				panic(err)
			}
			res = append(res, sms.NewProvider(name, cfg.Tencent.Template, c))
		default:
			panic("未知的短信平台: " + name)
		}
	}
	return res
}

func InitKakaoClient() *kakao.Client {
	var cfg kakao.Config
	if err := econf.UnmarshalKey("kakao", &cfg); err != nil {
		panic(err)
	}
	return kakao.NewClient(cfg)
}

// InitProviderRegistry provider.mock 为 true 时所有渠道使用内存供应商，只用于本地联调
func InitProviderRegistry(smsProviders []*sms.Provider, kakaoClient *kakao.Client) *provider.Registry {
	var cfg smsConfig
	if err := econf.UnmarshalKey("sms", &cfg); err != nil {
		panic(err)
	}
	if econf.GetBool("provider.mock") {
		elog.DefaultLogger.Warn("使用内存供应商，消息不会真正发出")
		return provider.NewRegistry(cfg.DefaultSender, map[domain.Channel]provider.Provider{
			domain.ChannelSMS:        decorate("mock-sms", memory.NewProvider("mock-sms", 0)),
			domain.ChannelAlimTalk:   decorate("mock-alimtalk", memory.NewProvider("mock-alimtalk", 0)),
			domain.ChannelFriendTalk: decorate("mock-friendtalk", memory.NewProvider("mock-friendtalk", 0)),
		}, nil)
	}

	smsList := make([]provider.Provider, 0, len(smsProviders))
	var balance provider.BalanceQuerier
	for _, p := range smsProviders {
		smsList = append(smsList, decorate(p.Name(), p))
		// 只有第一个平台的余额有意义
		if balance == nil {
			balance = p
		}
	}
	return provider.NewRegistry(cfg.DefaultSender, map[domain.Channel]provider.Provider{
		domain.ChannelSMS:        sequential.NewProvider(sequential.NewSelectorBuilder(smsList)),
		domain.ChannelAlimTalk:   decorate("kakao-alimtalk", kakao.NewAlimTalkProvider("kakao-alimtalk", kakaoClient)),
		domain.ChannelFriendTalk: decorate("kakao-friendtalk", kakao.NewFriendTalkProvider("kakao-friendtalk", kakaoClient)),
	}, balance)
}

// decorate 链路追踪在外层，指标里面不包含追踪的开销
func decorate(name string, p provider.Provider) provider.Provider {
	return tracing.NewProvider(name, metrics.NewProvider(name, p))
}
