package otelx

type OTLPConfig struct {
	// Protocol is either http or grpc.
	Protocol  string       `json:"protocol"`
	ServerURL string       `json:"server-url"`
	Insecure  bool         `json:"insecure"`
	Sampling  OTLPSampling `json:"sampling"`
}

type OTLPSampling struct {
	SamplingRatio float64 `json:"sampling-ratio"`
}

type StdoutConfig struct {
	Pretty bool `json:"pretty"`
}

type ProvidersConfig struct {
	OTLP   OTLPConfig   `json:"otlp"`
	Stdout StdoutConfig `json:"stdout"`
}

// Config selects the span exporter. An empty provider disables tracing.
type Config struct {
	ServiceName string          `json:"service-name"`
	Provider    string          `json:"provider"`
	Providers   ProvidersConfig `json:"providers"`
}
