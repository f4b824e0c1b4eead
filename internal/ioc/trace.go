package ioc

import (
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// InitZipkinTracer 没有配置 endpoint 时不上报，otel 使用默认的空实现
func InitZipkinTracer() *sdktrace.TracerProvider {
	type Config struct {
		Endpoint    string  `yaml:"endpoint"`
		ServiceName string  `yaml:"serviceName"`
		SampleRatio float64 `yaml:"sampleRatio"`
	}
	cfg := Config{ServiceName: "order-notifier", SampleRatio: 1}
	if err := econf.UnmarshalKey("trace.zipkin", &cfg); err != nil {
		panic(err)
	}
	if cfg.Endpoint == "" {
		elog.DefaultLogger.Info("没有配置 zipkin，不上报链路")
		return nil
	}
	exporter, err := zipkin.New(cfg.Endpoint)
	if err != nil {
		panic(err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))
	return tp
}
