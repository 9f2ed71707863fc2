package instrumentation

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config controls OpenTelemetry instrumentation. Every field has an
// environment-variable counterpart read by DefaultConfig.
type Config struct {
	// ServiceName identifies the service in exported telemetry.
	ServiceName string

	// ServiceVersion is stamped on the resource, typically the build
	// version.
	ServiceVersion string

	// ServiceInstanceID defaults to the hostname, the pod name under
	// Kubernetes.
	ServiceInstanceID string

	// K8sNamespace and K8sPodName enrich the resource when running in
	// a cluster.
	K8sNamespace string
	K8sPodName   string

	// Enabled turns the whole pipeline on or off
	// (INSTRUMENTATION_ENABLED).
	Enabled bool

	// MetricsExporter selects "prometheus", "otlp" or "stdout".
	MetricsExporter string

	// TracingExporter selects "otlp", "stdout" or "none".
	TracingExporter string

	// OTLPEndpoint is host:port of the collector, no protocol prefix.
	OTLPEndpoint string

	// OTLPInsecure disables TLS on OTLP export. Only for local
	// development; traces may carry sensitive metadata.
	OTLPInsecure bool

	// TraceSamplingRate is in [0, 1].
	TraceSamplingRate float64

	// PrometheusEndpoint is the scrape path.
	PrometheusEndpoint string

	// DetailedLabels adds high-cardinality labels such as per-user
	// identifiers. Keep off in production.
	DetailedLabels bool

	// AuditLogging configures the audit trail of tool invocations.
	AuditLogging AuditLoggingConfig
}

// AuditLoggingConfig holds configuration for audit logging.
type AuditLoggingConfig struct {
	// Enabled turns the audit trail on or off.
	Enabled bool

	// IncludePII switches from anonymized user hashes to full email
	// addresses. Requires the audit log destination to be access
	// controlled.
	IncludePII bool

	// LogLevel is the slog level for audit messages: "debug", "info",
	// "warn" or "error". Audit events are emitted regardless of the
	// handler's minimum level.
	LogLevel string
}

// DefaultConfig reads the environment and fills in defaults.
func DefaultConfig() Config {
	return Config{
		ServiceName:        envString("OTEL_SERVICE_NAME", "meetfewer"),
		ServiceVersion:     "unknown",
		ServiceInstanceID:  envString("OTEL_SERVICE_INSTANCE_ID", ""),
		K8sNamespace:       envString("K8S_NAMESPACE", envString("POD_NAMESPACE", "")),
		K8sPodName:         envString("K8S_POD_NAME", envString("HOSTNAME", "")),
		Enabled:            envBool("INSTRUMENTATION_ENABLED", true),
		MetricsExporter:    envString("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter:    envString("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:       envString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:       envBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSamplingRate:  envFloat("OTEL_TRACES_SAMPLER_ARG", 0.1),
		PrometheusEndpoint: envString("PROMETHEUS_ENDPOINT", "/metrics"),
		DetailedLabels:     envBool("METRICS_DETAILED_LABELS", false),
		AuditLogging: AuditLoggingConfig{
			Enabled:    envBool("AUDIT_LOGGING_ENABLED", true),
			IncludePII: envBool("AUDIT_LOGGING_INCLUDE_PII", false),
			LogLevel:   envString("AUDIT_LOGGING_LEVEL", "info"),
		},
	}
}

// Validate rejects configurations the provider could not honor.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}

	switch c.MetricsExporter {
	case "", ExporterPrometheus, ExporterOTLP, ExporterStdout:
	default:
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout", c.MetricsExporter)
	}

	switch c.TracingExporter {
	case "", ExporterOTLP, ExporterStdout, ExporterNone:
	default:
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}

	if c.TracingExporter == ExporterOTLP && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP endpoint is required when using OTLP tracing exporter")
	}
	if c.MetricsExporter == ExporterOTLP && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP endpoint is required when using OTLP metrics exporter")
	}
	return nil
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

// Shared metric label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusUnknown = "unknown"

	// Engine component names
	ComponentStore     = "store"
	ComponentScheduler = "scheduler"
	ComponentAnalyzer  = "analyzer"
	ComponentScorer    = "scorer"
	ComponentOptimizer = "optimizer"
	ComponentAgenda    = "agenda"

	// Exporter types
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"

	// Metric recording intervals
	DefaultMetricInterval = 10 * time.Second
)
