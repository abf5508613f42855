package tool

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Tool names as issued by the AI collaborator.
const (
	NameView       = "view"
	NameCreate     = "create"
	NameStrReplace = "str_replace"
	NameInsert     = "insert"
	NameRename     = "rename"
	NameDelete     = "delete"
)

var (
	ErrUnknownTool = errors.New("unknown tool")
	ErrBadArgs     = errors.New("invalid tool arguments")

	ErrPathRequired    = errors.New("path is required")
	ErrOldStrRequired  = errors.New("old_str is required")
	ErrNegativeLine    = errors.New("insert_line must be >= 0")
	ErrContentRequired = errors.New("content is required")
)

// Call is a raw tool invocation as received from the AI collaborator:
// a tool name plus loosely typed arguments.
type Call struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

// Request is the closed set of decoded tool operations. Adding a tool
// means adding a variant here and a case to every exhaustive switch over
// Request; the compiler finds the switches that forgot.
type Request interface {
	isRequest()
	Validate() error
}

// -- Editor capability --

type ViewRequest struct {
	Path string `json:"path" mapstructure:"path"`
}

func (*ViewRequest) isRequest() {}
func (r *ViewRequest) Validate() error {
	if r.Path == "" {
		return ErrPathRequired
	}
	return nil
}

type CreateRequest struct {
	Path    string `json:"path" mapstructure:"path"`
	Content string `json:"content" mapstructure:"content"`
}

func (*CreateRequest) isRequest() {}
func (r *CreateRequest) Validate() error {
	if r.Path == "" {
		return ErrPathRequired
	}
	return nil
}

type StrReplaceRequest struct {
	Path   string `json:"path" mapstructure:"path"`
	OldStr string `json:"old_str" mapstructure:"old_str"`
	NewStr string `json:"new_str" mapstructure:"new_str"`
}

func (*StrReplaceRequest) isRequest() {}
func (r *StrReplaceRequest) Validate() error {
	if r.Path == "" {
		return ErrPathRequired
	}
	if r.OldStr == "" {
		return ErrOldStrRequired
	}
	return nil
}

type InsertRequest struct {
	Path       string `json:"path" mapstructure:"path"`
	InsertLine int    `json:"insert_line" mapstructure:"insert_line"`
	Text       string `json:"text" mapstructure:"text"`
}

func (*InsertRequest) isRequest() {}
func (r *InsertRequest) Validate() error {
	if r.Path == "" {
		return ErrPathRequired
	}
	if r.InsertLine < 0 {
		return ErrNegativeLine
	}
	return nil
}

// -- Manager capability --

type RenameRequest struct {
	OldPath string `json:"old_path" mapstructure:"old_path"`
	NewPath string `json:"new_path" mapstructure:"new_path"`
}

func (*RenameRequest) isRequest() {}
func (r *RenameRequest) Validate() error {
	if r.OldPath == "" || r.NewPath == "" {
		return ErrPathRequired
	}
	return nil
}

type DeleteRequest struct {
	Path string `json:"path" mapstructure:"path"`
}

func (*DeleteRequest) isRequest() {}
func (r *DeleteRequest) Validate() error {
	if r.Path == "" {
		return ErrPathRequired
	}
	return nil
}

// DecodeCall converts a raw Call into its typed Request variant. The tool
// name is resolved here, once, at the boundary; everything downstream
// works with the closed variant set.
func DecodeCall(call Call) (Request, error) {
	var req Request
	switch call.Tool {
	case NameView:
		req = &ViewRequest{}
	case NameCreate:
		req = &CreateRequest{}
	case NameStrReplace:
		req = &StrReplaceRequest{}
	case NameInsert:
		req = &InsertRequest{}
	case NameRename:
		req = &RenameRequest{}
	case NameDelete:
		req = &DeleteRequest{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, call.Tool)
	}

	if err := mapstructure.Decode(call.Args, req); err != nil {
		return nil, fmt.Errorf("%w for %s: %v", ErrBadArgs, call.Tool, err)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w for %s: %v", ErrBadArgs, call.Tool, err)
	}
	return req, nil
}
