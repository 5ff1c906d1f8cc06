package tracer

import (
	"fmt"
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

// InitJaeger 设置全局 tracer，gorm 的 opentracing 插件会从全局 tracer 取 span
func InitJaeger(service, agentAddr string) (io.Closer, error) {
	cfg := &jaegercfg.Configuration{
		ServiceName: service,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           false,
			LocalAgentHostPort: agentAddr,
		},
	}
	t, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, fmt.Errorf("cannot init jaeger: %w", err)
	}
	opentracing.SetGlobalTracer(t)
	logrus.Infof("jaeger tracer initialized, service=%s agent=%s", service, agentAddr)
	return closer, nil
}
