// Package provider selects and constructs the LLM chat backend at runtime.
// Supported backends: Ollama, OpenAI, Azure OpenAI, AWS Bedrock, Google Gemini.
package provider

import "fmt"

// Backend enumerates the supported LLM inference providers.
type Backend string

const (
	// BackendOllama selects a locally running Ollama instance.
	BackendOllama Backend = "ollama"
	// BackendOpenAI selects the OpenAI API.
	BackendOpenAI Backend = "openai"
	// BackendAzure selects Azure OpenAI Service.
	BackendAzure Backend = "azure"
	// BackendBedrock selects AWS Bedrock.
	BackendBedrock Backend = "bedrock"
	// BackendGemini selects Google Gemini via AI Studio.
	BackendGemini Backend = "gemini"
)

// Config holds provider-level configuration resolved from environment
// variables or explicit caller-supplied values.
type Config struct {
	// Backend identifies which inference provider to use.
	Backend Backend

	// Model is the model name or ID (e.g. "gpt-4o", "llama3").
	Model string

	// BaseURL overrides the default API endpoint (Ollama host, Azure
	// endpoint, or Bedrock-compatible gateway).
	BaseURL string

	// APIKey is the authentication credential for the selected provider.
	APIKey string

	// AzureDeployment is the Azure OpenAI deployment name (Azure only).
	AzureDeployment string

	// AzureAPIVersion is the Azure OpenAI REST API version (Azure only).
	AzureAPIVersion string

	// MaxTokens caps the number of tokens the model may generate per response.
	MaxTokens int

	// Temperature controls response randomness. Kept low by default so
	// answers stay close to the retrieved context.
	Temperature float32
}

// Validate checks the cross-field requirements of the selected backend.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendOllama:
		// Local daemon, no credentials needed.
	case BackendOpenAI, BackendGemini:
		if c.APIKey == "" {
			return fmt.Errorf("provider: %s backend requires an API key", c.Backend)
		}
	case BackendAzure:
		if c.APIKey == "" || c.BaseURL == "" || c.AzureDeployment == "" {
			return fmt.Errorf("provider: azure backend requires AZURE_OPENAI_API_KEY, AZURE_OPENAI_ENDPOINT, and AZURE_OPENAI_DEPLOYMENT")
		}
	case BackendBedrock:
		if c.Model == "" {
			return fmt.Errorf("provider: bedrock backend requires BEDROCK_MODEL_ID")
		}
	default:
		return fmt.Errorf("provider: unknown backend %q — valid values: ollama, openai, azure, bedrock, gemini", c.Backend)
	}
	if c.Model == "" {
		return fmt.Errorf("provider: model name is required for %s backend", c.Backend)
	}
	return nil
}
