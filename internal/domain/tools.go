package domain

// ParamType is the JSON type of a tool parameter.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamBoolean ParamType = "boolean"
	ParamArray   ParamType = "array"
)

// ToolParam describes one parameter of a planner-visible tool.
type ToolParam struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Required    bool      `json:"required"`
	Description string    `json:"description"`
}

// Tool describes a planner-visible tool and the action it maps onto.
type Tool struct {
	Name        ActionKind  `json:"name"`
	Description string      `json:"description"`
	Params      []ToolParam `json:"params"`
}

// ToolCatalog lists every tool the dispatcher can route, in display order.
// Both the MCP server and the CLI render their schemas from it.
var ToolCatalog = []Tool{
	{
		Name:        ActionCreateFile,
		Description: "Create or overwrite a file. Missing parent directories are created.",
		Params: []ToolParam{
			{Name: "path", Type: ParamString, Required: true, Description: "File path, relative to the working directory"},
			{Name: "content", Type: ParamString, Required: true, Description: "Full file content"},
		},
	},
	{
		Name:        ActionReadFile,
		Description: "Read the full text content of a file.",
		Params: []ToolParam{
			{Name: "path", Type: ParamString, Required: true, Description: "File path, relative to the working directory"},
		},
	},
	{
		Name:        ActionDeleteFile,
		Description: "Delete a single file. Directories are never removed.",
		Params: []ToolParam{
			{Name: "path", Type: ParamString, Required: true, Description: "File path, relative to the working directory"},
		},
	},
	{
		Name:        ActionListFiles,
		Description: "List the entries of the current working directory.",
		Params: []ToolParam{
			{Name: "detailed", Type: ParamBoolean, Description: "Include size, permissions and modification time"},
		},
	},
	{
		Name:        ActionRunCommand,
		Description: "Run a program with an argument vector and return its exit code, stdout and stderr. Prefer the file tools for file operations.",
		Params: []ToolParam{
			{Name: "command", Type: ParamString, Required: true, Description: "Program to execute"},
			{Name: "args", Type: ParamArray, Description: "Arguments, passed literally without shell interpretation"},
			{Name: "shell", Type: ParamBoolean, Description: "Run the joined line through the host shell (must be enabled by the operator)"},
		},
	},
}

// LookupTool finds a catalogue entry by tool name.
func LookupTool(name string) (Tool, bool) {
	for _, tool := range ToolCatalog {
		if string(tool.Name) == name {
			return tool, true
		}
	}
	return Tool{}, false
}
