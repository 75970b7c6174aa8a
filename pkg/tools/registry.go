// Package tools implements the reddit tool server operations. Every tool takes a flat argument
// object and returns JSON text, failures are reported as "Error: ..." text.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"
)

// ParamType is the JSON type of a tool argument
type ParamType string

// enum of argument types
const (
	TypeString  ParamType = "string"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	TypeArray   ParamType = "array"
)

// Param describes a tool argument
type Param struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Description string    `json:"description"`
	Required    bool      `json:"required,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
}

// HandlerFunc runs a tool. The returned value is rendered as indented JSON, a Text value is
// returned as is.
type HandlerFunc func(ctx context.Context, args Args) (any, error)

// Tool is a named operation
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Params      []Param     `json:"params"`
	Handler     HandlerFunc `json:"-"`
}

// Text is a plain text tool result
type Text string

// Result of a tool call
type Result struct {
	Text    string `json:"text"`
	IsError bool   `json:"is_error,omitempty"`
}

// userError is an error reported to the caller as "Error: <msg>"
type userError struct {
	msg string
}

func (e *userError) Error() string { return e.msg }

func errorf(format string, a ...any) error {
	return &userError{msg: fmt.Sprintf(format, a...)}
}

// Registry holds tools by name
type Registry struct {
	tools map[string]Tool
}

// NewRegistry makes a registry with the given tools
func NewRegistry(tools ...Tool) *Registry {
	res := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		res.Add(t)
	}
	return res
}

// Add registers a tool, replacing one with the same name
func (r *Registry) Add(t Tool) {
	r.tools[t.Name] = t
}

// Tools returns all tools sorted by name
func (r *Registry) Tools() []Tool {
	res := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		res = append(res, t)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// Get returns the tool by name
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Call runs the tool. It never fails, errors are reported in the result text.
func (r *Registry) Call(ctx context.Context, name string, args Args) Result {
	callID := uuid.NewString()[:8]
	log.Printf("[INFO] tool-%s: call %s %v", callID, name, args)

	t, ok := r.tools[name]
	if !ok {
		log.Printf("[WARN] tool-%s: unknown tool %q", callID, name)
		return Result{Text: fmt.Sprintf("Error: Unknown tool '%s'.", name), IsError: true}
	}
	if args == nil {
		args = Args{}
	}

	v, err := t.Handler(ctx, args)
	if err != nil {
		var uErr *userError
		if errors.As(err, &uErr) {
			log.Printf("[WARN] tool-%s: %s: %v", callID, name, err)
			return Result{Text: "Error: " + uErr.msg, IsError: true}
		}
		log.Printf("[ERROR] tool-%s: %s failed: %v", callID, name, err)
		return Result{Text: fmt.Sprintf("Error executing tool '%s': %v", name, err), IsError: true}
	}

	if txt, ok := v.(Text); ok {
		return Result{Text: string(txt)}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return Result{Text: fmt.Sprintf("Error executing tool '%s': %v", name, err), IsError: true}
	}
	log.Printf("[DEBUG] tool-%s: %s done, %d bytes", callID, name, len(data))
	return Result{Text: string(data)}
}

// Args is the flat argument object of a tool call
type Args map[string]any

// String returns the trimmed string argument or def if missing or empty
func (a Args) String(name, def string) string {
	v, ok := a[name]
	if !ok || v == nil {
		return def
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	if s == "" {
		return def
	}
	return s
}

// Int returns the numeric argument, def if missing or not a number
func (a Args) Int(name string, def int) int {
	if v, ok := a.intValue(name); ok {
		return v
	}
	return def
}

// Bool returns the boolean argument, def if missing or not a boolean
func (a Args) Bool(name string, def bool) bool {
	switch v := a[name].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

// Limit returns the numeric argument clamped to [1, maxVal], def if missing
func (a Args) Limit(name string, def, maxVal int) int {
	v := a.Int(name, def)
	if v < 1 {
		v = 1
	}
	return min(v, maxVal)
}

func (a Args) intValue(name string) (int, bool) {
	switch v := a[name].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return 0, false
			}
			return int(f), true
		}
		return int(n), true
	case string:
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%d", &n); err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Strings returns the array argument as strings, a single string is accepted as one element list
func (a Args) Strings(name string) []string {
	res := []string{}
	switch v := a[name].(type) {
	case []string:
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				res = append(res, s)
			}
		}
	case []any:
		for _, item := range v {
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" && item != nil {
				res = append(res, s)
			}
		}
	case string:
		if s := strings.TrimSpace(v); s != "" {
			res = append(res, s)
		}
	}
	return res
}
