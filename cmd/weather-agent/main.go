// Copyright (c) Nimbus AI. All rights reserved.

// Command weather-agent runs the weather agent: an HTTP server exposing the
// agent and the activity workflow, or an interactive terminal chat.
//
// Usage with OpenAI:
//
//	export OPENAI_API_KEY=sk-...
//	weather-agent serve
//
// Usage with Azure OpenAI:
//
//	export AZURE_OPENAI_ENDPOINT=https://<resource>.openai.azure.com/openai/deployments/<deployment>
//	export AZURE_OPENAI_KEY=<your-key>     # omit to use Azure AD authentication
//	weather-agent serve
package main

func main() {
	Execute()
}
