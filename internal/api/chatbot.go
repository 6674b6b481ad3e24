package api

import "context"

// ChatMessage sends one user message to the assistant service and returns
// its reply. The endpoint is public; the assistant keeps no conversation
// state, the client carries the transcript.
func (c *Client) ChatMessage(ctx context.Context, message string) (string, error) {
	in := struct {
		Message string `json:"message"`
	}{Message: message}
	var out struct {
		Response string `json:"response"`
	}
	if err := c.do(ctx, "POST", "/api/v1/chatbot/message", "", in, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}
