package tracing

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"go.uber.org/zap"
	"max.ks1230/budget-tracker/internal/logger"
)

type config interface {
	LocalAgentHostPort() string
	SamplingRate() float64
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

// Init installs a global Jaeger tracer. Without an agent address the
// opentracing no-op tracer stays in place.
func Init(serviceName string, cfg config) (io.Closer, error) {
	if cfg.LocalAgentHostPort() == "" {
		logger.Info("tracing disabled: no jaeger agent configured")
		return noopCloser{}, nil
	}

	jcfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeProbabilistic,
			Param: cfg.SamplingRate(),
		},
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: cfg.LocalAgentHostPort(),
		},
	}

	tracer, closer, err := jcfg.NewTracer(jaegercfg.Logger(jaeger.StdLogger))
	if err != nil {
		return nil, errors.Wrap(err, "init jaeger tracer")
	}
	opentracing.SetGlobalTracer(tracer)
	logger.Info("tracing enabled", zap.String("agent", cfg.LocalAgentHostPort()))
	return closer, nil
}
