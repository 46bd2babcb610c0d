package telemetry

import (
	"os"
	"strings"
)

// Config holds the tracing configuration loaded from the standard OTEL_*
// environment variables.
type Config struct {
	// Enabled comes from OTEL_ENABLED.
	Enabled bool

	// ServiceName comes from OTEL_SERVICE_NAME, defaulting to "quadmesh".
	ServiceName string

	// ServiceVersion comes from OTEL_SERVICE_VERSION.
	ServiceVersion string

	// Endpoint is the OTLP collector endpoint
	// (OTEL_EXPORTER_OTLP_ENDPOINT).
	Endpoint string

	// Protocol is grpc or http/protobuf (OTEL_EXPORTER_OTLP_PROTOCOL).
	Protocol string

	// Headers carries exporter headers such as Authorization
	// (OTEL_EXPORTER_OTLP_HEADERS, "k1=v1,k2=v2").
	Headers map[string]string

	// Insecure disables transport security
	// (OTEL_EXPORTER_OTLP_INSECURE).
	Insecure bool

	// Sampler and SamplerArg select the sampling strategy
	// (OTEL_TRACES_SAMPLER, OTEL_TRACES_SAMPLER_ARG).
	Sampler    string
	SamplerArg string

	// ResourceAttrs carries extra resource attributes
	// (OTEL_RESOURCE_ATTRIBUTES).
	ResourceAttrs map[string]string
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	return &Config{
		Enabled:        strings.ToLower(os.Getenv("OTEL_ENABLED")) == "true",
		ServiceName:    getEnvOrDefault("OTEL_SERVICE_NAME", "quadmesh"),
		ServiceVersion: getEnvOrDefault("OTEL_SERVICE_VERSION", "unknown"),
		Endpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		Protocol:       getEnvOrDefault("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
		Headers:        parseKeyValuePairs(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")),
		Insecure:       strings.ToLower(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")) == "true",
		Sampler:        os.Getenv("OTEL_TRACES_SAMPLER"),
		SamplerArg:     os.Getenv("OTEL_TRACES_SAMPLER_ARG"),
		ResourceAttrs:  parseKeyValuePairs(os.Getenv("OTEL_RESOURCE_ATTRIBUTES")),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseKeyValuePairs parses "k1=v1,k2=v2" into a map, splitting each pair
// on the first '=' so values may contain '='.
func parseKeyValuePairs(s string) map[string]string {
	result := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		idx := strings.Index(pair, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(pair[:idx])
		value := strings.TrimSpace(pair[idx+1:])
		if key != "" {
			result[key] = value
		}
	}
	return result
}
