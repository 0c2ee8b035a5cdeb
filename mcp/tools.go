package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/ka2n/ecdemo/log"
	"github.com/ka2n/ecdemo/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
)

var validate = validator.New()

// Toolset is the fixed tool catalog bound to a store
type Toolset struct {
	tools []server.ServerTool
}

// NewToolset builds the catalog over st
func NewToolset(st *store.Store) *Toolset {
	return &Toolset{
		tools: []server.ServerTool{
			newServerTool(GetDesignTokens(st)),
			newServerTool(UpdateDesignTokens(st)),
			newServerTool(GetCartData(st)),
			newServerTool(GetEventLogs(st)),
		},
	}
}

func newServerTool(tool mcp.Tool, handler server.ToolHandlerFunc) server.ServerTool {
	return server.ServerTool{
		Tool:    tool,
		Handler: handler,
	}
}

// Names returns the tool names in catalog order
func (ts *Toolset) Names() []string {
	return lo.Map(ts.tools, func(t server.ServerTool, _ int) string {
		return t.Tool.Name
	})
}

// Tools returns the tool definitions with their input schemas
func (ts *Toolset) Tools() []mcp.Tool {
	return lo.Map(ts.tools, func(t server.ServerTool, _ int) mcp.Tool {
		return t.Tool
	})
}

// ServerTools returns the catalog for registration on an MCPServer. Every
// handler dispatches through Call.
func (ts *Toolset) ServerTools() []server.ServerTool {
	return lo.Map(ts.tools, func(t server.ServerTool, _ int) server.ServerTool {
		return newServerTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return ts.Call(ctx, req.Params.Name, req.Params.Arguments)
		})
	})
}

// Call runs the named tool. Unknown names fail with UnknownOperation without
// touching the store; domain failures come back as an error result.
//
// Over the stdio transport the MCPServer resolves names itself, so an unknown
// name never reaches Call and the client sees a JSON-RPC invalid params error
// (-32602, "tool '<name>' not found") instead of UnknownOperation.
func (ts *Toolset) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	t, ok := lo.Find(ts.tools, func(t server.ServerTool) bool {
		return t.Tool.Name == name
	})
	if !ok {
		return nil, failure.New(UnknownOperation,
			failure.Message(fmt.Sprintf("Unknown tool: %s", name)),
			failure.Context{"name": name},
		)
	}

	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := t.Handler(ctx, req)
	if err != nil {
		return nil, failure.Wrap(err)
	}
	log.Debug("tool called", "name", name, "is_error", res.IsError)
	return res, nil
}

// decodeArguments fills out from the raw arguments and validates it
func decodeArguments(ctx context.Context, in map[string]any, out any) error {
	if err := mapstructure.Decode(in, out); err != nil {
		return failure.New(store.InvalidInput,
			failure.Message("Invalid arguments"),
			failure.Context{"error": err.Error()},
		)
	}
	if err := validate.StructCtx(ctx, out); err != nil {
		return failure.New(store.InvalidInput,
			failure.Message("Invalid arguments"),
			failure.Context{"error": err.Error()},
		)
	}
	return nil
}

// errorResult turns err into a failed tool outcome carrying its code and message
func errorResult(err error) *mcp.CallToolResult {
	msg := err.Error()
	if fmsg := failure.MessageOf(err); fmsg != "" {
		msg = fmsg.String()
	}
	if failure.Is(err, store.InvalidInput) {
		msg = fmt.Sprintf("%s: %s", store.InvalidInput, msg)
	}
	return mcp.NewToolResultError(msg)
}

func jsonResult(v any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(failure.Wrap(err))
	}
	return mcp.NewToolResultText(string(b))
}

func GetDesignTokens(st *store.Store) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"get_design_tokens",
			mcp.WithDescription("Get the storefront design tokens (colors, spacing, border radius)"),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return jsonResult(st.DesignTokens()), nil
		}
}

func UpdateDesignTokens(st *store.Store) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"update_design_tokens",
			mcp.WithDescription("Shallow-merge design tokens into the current set"),
			mcp.WithObject("tokens", mcp.Required(), mcp.Description("Design tokens to update")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				Tokens any `mapstructure:"tokens" validate:"required"`
			}
			var args ToolArguments
			if err := decodeArguments(ctx, req.Params.Arguments, &args); err != nil {
				return errorResult(err), nil
			}

			tokens, err := st.MergeDesignTokens(args.Tokens)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(tokens), nil
		}
}

func GetCartData(st *store.Store) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"get_cart_data",
			mcp.WithDescription("Get the cart snapshot last synced by the storefront"),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return jsonResult(st.Cart()), nil
		}
}

func GetEventLogs(st *store.Store) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"get_event_logs",
			mcp.WithDescription("Get the most recent storefront events"),
			mcp.WithNumber("limit",
				mcp.Description("Number of logs to return"),
				mcp.DefaultNumber(store.DefaultLogLimit),
			),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				Limit int `mapstructure:"limit"`
			}
			var args ToolArguments
			if err := decodeArguments(ctx, req.Params.Arguments, &args); err != nil {
				return errorResult(err), nil
			}
			return jsonResult(st.Logs(args.Limit)), nil
		}
}
