package types

// ExecuteRequest asks the backend to run a single tool
type ExecuteRequest struct {
	ToolID  string                 `json:"tool_id" binding:"required"`
	Params  map[string]interface{} `json:"params"`
	Context *Context               `json:"context,omitempty"`
}

// DiscoverRequest searches for services relevant to a chat message
type DiscoverRequest struct {
	Intent string `json:"intent" binding:"required"`
	Limit  int    `json:"limit"`
}
