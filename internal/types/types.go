package types

type ChatRequest struct {
	Message string `json:"message"`
	Model   string `json:"model,omitempty"`
}

type ChatResponse struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
	Intent    string `json:"intent,omitempty"`
	Action    string `json:"action,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type CredentialRequest struct {
	Service string `json:"service"` // "github" | "openrouter"
	Value   string `json:"value"`
}

// Integration is a static descriptor of a connectable service shown in the
// picker; connected reflects whether the session holds a credential for it.
type Integration struct {
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	Connected bool   `json:"connected"`
}
