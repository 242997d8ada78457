package domain

// ChatMessage is the provider-agnostic chat message shape sent to the
// inference endpoint.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const RoleUser = "user"
