package assistant

// Analysis is the assistant's reading of an uploaded CSV: which columns map to
// which reporter fields, how confident it is, and anything an operator should
// look at before confirming.
type Analysis struct {
	ColumnMapping  map[string]string `json:"column_mapping"`
	Confidence     string            `json:"confidence"`
	Issues         []string          `json:"issues,omitempty"`
	Normalizations []string          `json:"normalizations,omitempty"`
}

// Wire types for the messages endpoint.

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
	Error   *apiError      `json:"error,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
