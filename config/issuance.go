package config

import "time"

// IssuanceConfig contains configuration for the external issuance endpoint
// and the duplicate-response policy.
type IssuanceConfig struct {
	// Endpoint is the URL of the credential issuance API.
	Endpoint string `env:"ISSUANCE_ENDPOINT" envDefault:"http://localhost:8081/issue"`

	// APIKey is sent on every issuance request.
	APIKey string `env:"ISSUANCE_API_KEY" envDefault:""`

	// Timeout bounds a single issuance HTTP request.
	Timeout time.Duration `env:"ISSUANCE_TIMEOUT" envDefault:"30s"`

	// DuplicateAsSuccess treats a 400 response matching the duplicate
	// policy below as a successful issuance. Useful when re-enqueued jobs
	// race an issuance that already landed.
	DuplicateAsSuccess bool `env:"ISSUANCE_DUPLICATE_AS_SUCCESS" envDefault:"false"`

	// DuplicateJMESPath is the JMESPath expression evaluated against a 400
	// response body to extract the error code.
	DuplicateJMESPath string `env:"ISSUANCE_DUPLICATE_JMESPATH" envDefault:"error.code"`

	// DuplicateValue is the extracted value that marks a duplicate issuance.
	DuplicateValue string `env:"ISSUANCE_DUPLICATE_VALUE" envDefault:"duplicate_issuance"`
}

// Sanitize applies guardrails to issuance configuration values.
func (i *IssuanceConfig) Sanitize() {
	if i.Timeout < 1*time.Second {
		i.Timeout = 1 * time.Second
	}
	if i.Timeout > 5*time.Minute {
		i.Timeout = 5 * time.Minute
	}
}
