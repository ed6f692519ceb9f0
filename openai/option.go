// Copyright (c) Nimbus AI. All rights reserved.

package openai

import (
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	ak "github.com/nimbus-ai/weather-agent/agentkit"
)

// clientConfig holds resolved configuration for a [Client].
type clientConfig struct {
	baseURL         string
	httpClient      *http.Client
	headers         map[string]string
	model           string
	azureCredential azcore.TokenCredential
	chatMiddleware  []ak.ChatMiddleware
}

// Option configures a [Client].
type Option func(*clientConfig)

// WithBaseURL overrides the API base URL, e.g. an Azure OpenAI endpoint or a
// local proxy.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) { c.baseURL = url }
}

// WithModel sets the default model for requests.
func WithModel(model string) Option {
	return func(c *clientConfig) { c.model = model }
}

// WithHTTPClient provides a custom http.Client for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = client }
}

// WithHeaders adds custom headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *clientConfig) {
		if c.headers == nil {
			c.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithAzureAPIKey authenticates using the Azure "api-key" header instead of a
// bearer token. Use this with Azure OpenAI endpoints that issue static keys.
func WithAzureAPIKey(key string) Option {
	return WithHeaders(map[string]string{"api-key": key})
}

// WithAzureCredential enables Azure AD token authentication using the
// provided credential. When set, the client obtains and refreshes tokens
// automatically instead of sending an API key.
func WithAzureCredential(cred azcore.TokenCredential) Option {
	return func(c *clientConfig) { c.azureCredential = cred }
}

// WithChatMiddleware adds middleware to the chat pipeline.
// Middleware is applied in the order provided (first = outermost).
func WithChatMiddleware(mw ...ak.ChatMiddleware) Option {
	return func(c *clientConfig) { c.chatMiddleware = append(c.chatMiddleware, mw...) }
}
