package ai

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// HistoryWindow bounds how many prior turns are sent to a provider. Older
// turns are silently dropped, never summarized.
const HistoryWindow = 20

// ChatMessage is one role-tagged turn of the provider-agnostic conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Endpoints holds the base URLs of the supported providers. Tests point
// these at local servers.
type Endpoints struct {
	OpenAI     string
	Anthropic  string
	OpenRouter string
	Cohere     string
	Groq       string
}

// DefaultEndpoints returns the production provider endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		OpenAI:     "https://api.openai.com/v1",
		Anthropic:  "https://api.anthropic.com",
		OpenRouter: "https://openrouter.ai/api/v1",
		Cohere:     "https://api.cohere.ai",
		Groq:       "https://api.groq.com/openai/v1",
	}
}
