package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"idcheck/internal/idnumber"
	"idcheck/internal/idnumber/failure"
	"idcheck/internal/idnumber/metrics"
	dErrors "idcheck/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	spans   *tracetest.SpanRecorder
	metrics *metrics.Metrics
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.spans = tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(s.spans))
	s.metrics = metrics.New(prometheus.NewRegistry())

	s.service = New(idnumber.Default,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
		WithTracer(tp.Tracer("test")),
		WithBatchLimit(4),
		WithConcurrency(2),
	)
}

func (s *ServiceSuite) TestValidate() {
	s.Run("accepted", func() {
		out, err := s.service.Validate(s.ctx, Request{Type: "br_cpf", Value: "529.982.247-25"})
		s.Require().NoError(err)
		s.True(out.Accepted())
		s.Equal(OutcomeAccepted, out.Label())
		s.Equal("52998224725", out.Result.Value)
		s.Equal("529.982.247-25", out.Result.Display)
	})

	s.Run("type tags are case-insensitive", func() {
		out, err := s.service.Validate(s.ctx, Request{Type: " CL_RUT ", Value: "7654321-6"})
		s.Require().NoError(err)
		s.Equal(idnumber.TypeCLRUT, out.Type)
		s.True(out.Accepted())
	})

	s.Run("rejection is an outcome not an error", func() {
		out, err := s.service.Validate(s.ctx, Request{Type: "br_cpf", Value: "529.982.247-26"})
		s.Require().NoError(err)
		s.False(out.Accepted())
		s.Equal("checksum", out.Label())
		s.Equal(failure.KindChecksum, out.Failure.Kind)
		s.Equal("2", out.Failure.Params[failure.ParamPosition])
	})

	s.Run("blank optional input is empty", func() {
		out, err := s.service.Validate(s.ctx, Request{Type: "ke_postcode", Value: "  "})
		s.Require().NoError(err)
		s.True(out.Accepted())
		s.Equal(OutcomeEmpty, out.Label())
	})

	s.Run("blank required input is rejected", func() {
		out, err := s.service.Validate(s.ctx, Request{Type: "ke_postcode", Required: true})
		s.Require().NoError(err)
		s.Equal("empty", out.Label())
	})

	s.Run("unknown type is not found", func() {
		_, err := s.service.Validate(s.ctx, Request{Type: "zz_id", Value: "1"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("cancelled context", func() {
		ctx, cancel := context.WithCancel(s.ctx)
		cancel()
		_, err := s.service.Validate(ctx, Request{Type: "br_cpf", Value: "529.982.247-25"})
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}

func (s *ServiceSuite) TestStrictness() {
	lenient := "52998224725"

	s.Run("request leaves strictness to the default", func() {
		out, err := s.service.Validate(s.ctx, Request{Type: "br_cpf", Value: lenient})
		s.Require().NoError(err)
		s.True(out.Accepted())
	})

	s.Run("strict default rejects undecorated input", func() {
		strictSvc := New(idnumber.Default, WithStrictDefault(true))
		out, err := strictSvc.Validate(s.ctx, Request{Type: "br_cpf", Value: lenient})
		s.Require().NoError(err)
		s.Equal("shape", out.Label())
		s.Equal(failure.KindInvalidFormat, out.Failure.Kind)
	})

	s.Run("request overrides a strict default", func() {
		strictSvc := New(idnumber.Default, WithStrictDefault(true))
		off := false
		out, err := strictSvc.Validate(s.ctx, Request{Type: "br_cpf", Value: lenient, Strict: &off})
		s.Require().NoError(err)
		s.True(out.Accepted())
	})
}

func (s *ServiceSuite) TestValidateBatch() {
	s.Run("outcomes keep request order", func() {
		reqs := []Request{
			{Type: "br_cnpj", Value: "11.222.333/0001-81"},
			{Type: "ar_cuit", Value: "20-12345678-6"},
			{Type: "ar_cuit", Value: "99-12345678-6"},
			{Type: "mt_postcode", Value: "VLT 1010"},
		}
		out, err := s.service.ValidateBatch(s.ctx, reqs)
		s.Require().NoError(err)
		s.Require().Len(out, 4)

		s.Equal(idnumber.TypeBRCNPJ, out[0].Type)
		s.True(out[0].Accepted())
		s.True(out[1].Accepted())
		s.Equal(failure.KindInvalidPrefix, out[2].Failure.Kind)
		s.Equal("VLT 1010", out[3].Result.Display)
	})

	s.Run("empty batch", func() {
		_, err := s.service.ValidateBatch(s.ctx, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("batch over the limit", func() {
		reqs := make([]Request, 5)
		for i := range reqs {
			reqs[i] = Request{Type: "ke_id", Value: fmt.Sprintf("1234567%d", i)}
		}
		_, err := s.service.ValidateBatch(s.ctx, reqs)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Contains(err.Error(), "at most 4")
	})

	s.Run("unknown type fails the whole batch before any work", func() {
		before := promtestutil.CollectAndCount(s.metrics.Validations)
		_, err := s.service.ValidateBatch(s.ctx, []Request{
			{Type: "br_cpf", Value: "529.982.247-25"},
			{Type: "nope", Value: "1"},
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Contains(err.Error(), "items[1].type")
		s.Equal(before, promtestutil.CollectAndCount(s.metrics.Validations))
	})
}

func (s *ServiceSuite) TestObservability() {
	_, err := s.service.ValidateBatch(s.ctx, []Request{
		{Type: "in_pan", Value: "ABCPE1234F"},
		{Type: "in_pan", Value: "ABCPE1234"},
		{Type: "in_pan", Value: ""},
	})
	s.Require().NoError(err)

	s.Equal(1.0, promtestutil.ToFloat64(s.metrics.Validations.WithLabelValues("in_pan", OutcomeAccepted)))
	s.Equal(1.0, promtestutil.ToFloat64(s.metrics.Validations.WithLabelValues("in_pan", "shape")))
	s.Equal(1.0, promtestutil.ToFloat64(s.metrics.Validations.WithLabelValues("in_pan", OutcomeEmpty)))

	names := map[string]int{}
	for _, span := range s.spans.Ended() {
		names[span.Name()]++
	}
	s.Equal(1, names["idnumber.ValidateBatch"])
	s.Equal(3, names["idnumber.Validate"])
}

func (s *ServiceSuite) TestClassify() {
	s.Run("classified failure passes through", func() {
		_, span := tracenoop.NewTracerProvider().Tracer("test").Start(s.ctx, "x")
		want := failure.Checksum("cl_rut", 1)
		s.Same(want, s.service.classify(s.ctx, span, "cl_rut", fmt.Errorf("wrapped: %w", want)))
	})

	s.Run("unclassified error is logged and marks the span", func() {
		var logs bytes.Buffer
		svc := New(idnumber.Default, WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))))
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(s.spans))
		_, span := tp.Tracer("test").Start(s.ctx, "classify")

		fe := svc.classify(s.ctx, span, "br_cpf", errors.New("boom"))
		span.End()

		s.ErrorIs(fe, failure.ErrShape)
		s.Equal(failure.KindInvalidFormat, fe.Kind)
		s.Contains(logs.String(), `"level":"ERROR"`)
		s.Contains(logs.String(), "boom")

		ended := s.spans.Ended()
		s.Require().NotEmpty(ended)
		s.Equal(codes.Error, ended[len(ended)-1].Status().Code)
	})
}

func (s *ServiceSuite) TestTypes() {
	defs := s.service.Types()
	s.Len(defs, len(idnumber.Default.Definitions()))
}

func (s *ServiceSuite) TestNilMetrics() {
	svc := New(idnumber.Default, WithMetrics(nil))
	out, err := svc.ValidateBatch(s.ctx, []Request{{Type: "ke_id", Value: "12345678"}})
	s.Require().NoError(err)
	s.True(out[0].Accepted())
}
