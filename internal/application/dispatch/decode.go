package dispatch

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/doeshing/toolgate/internal/domain"
)

// aliases maps accepted legacy parameter names onto their canonical key.
var aliases = map[domain.ActionKind]map[string]string{
	domain.ActionCreateFile: {"filename": "path"},
	domain.ActionReadFile:   {"filename": "path"},
	domain.ActionDeleteFile: {"filename": "path"},
	domain.ActionRunCommand: {"program": "command"},
}

type pathParams struct {
	Path string `mapstructure:"path"`
}

type createParams struct {
	Path    string `mapstructure:"path"`
	Content string `mapstructure:"content"`
}

type listParams struct {
	Detailed bool `mapstructure:"detailed"`
}

type runParams struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
	Shell   bool     `mapstructure:"shell"`
}

// Decode turns a loosely typed tool call into a typed ActionRequest.
// Unknown tools, unknown keys, wrong types and missing required parameters
// are all rejected here.
func Decode(call domain.ToolCall) (domain.ActionRequest, error) {
	tool, ok := domain.LookupTool(call.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTool, call.Name)
	}
	args := canonicalArgs(tool.Name, call.Args)
	for _, param := range tool.Params {
		if !param.Required {
			continue
		}
		if value, present := args[param.Name]; !present || value == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingParameter, param.Name)
		}
	}

	switch tool.Name {
	case domain.ActionCreateFile:
		var p createParams
		if err := decodeStrict(args, &p); err != nil {
			return nil, err
		}
		if p.Path == "" {
			return nil, fmt.Errorf("%w: path", domain.ErrMissingParameter)
		}
		return domain.CreateFile{Path: p.Path, Content: []byte(p.Content)}, nil
	case domain.ActionReadFile, domain.ActionDeleteFile:
		var p pathParams
		if err := decodeStrict(args, &p); err != nil {
			return nil, err
		}
		if p.Path == "" {
			return nil, fmt.Errorf("%w: path", domain.ErrMissingParameter)
		}
		if tool.Name == domain.ActionReadFile {
			return domain.ReadFile{Path: p.Path}, nil
		}
		return domain.DeleteFile{Path: p.Path}, nil
	case domain.ActionListFiles:
		var p listParams
		if err := decodeStrict(args, &p); err != nil {
			return nil, err
		}
		return domain.ListFiles{Detailed: p.Detailed}, nil
	case domain.ActionRunCommand:
		var p runParams
		if err := decodeStrict(args, &p); err != nil {
			return nil, err
		}
		if p.Command == "" {
			return nil, fmt.Errorf("%w: command", domain.ErrMissingParameter)
		}
		return domain.RunCommand{Program: p.Command, Args: p.Args, Shell: p.Shell}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTool, call.Name)
	}
}

// canonicalArgs copies args, renaming an alias when its canonical key is
// absent. When both are given the alias stays and is rejected as unknown.
func canonicalArgs(kind domain.ActionKind, in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	for alias, canonical := range aliases[kind] {
		value, ok := out[alias]
		if !ok {
			continue
		}
		if _, taken := out[canonical]; taken {
			continue
		}
		out[canonical] = value
		delete(out, alias)
	}
	return out
}

func decodeStrict(args map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      target,
		TagName:     "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(args); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidParameters, err)
	}
	return nil
}
