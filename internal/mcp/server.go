// Package mcp exposes one user's board to AI assistants over the Model
// Context Protocol. It runs in stdio mode only, bound to the account
// configured for the local process, so no bearer tokens are involved.
package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mlevin/applytrack/internal/domain/application"
	"github.com/mlevin/applytrack/internal/domain/board"
)

const serverInstructions = `applytrack manages a personal job-application kanban board with four
columns: Applied, Interviewing, Rejected, Offer. Applications keep a stable
order inside each column; move_application drops one at an exact slot and the
server reshuffles the rest. Use get_board first to learn current ids and
positions.`

// ApplicationService defines application operations needed by MCP.
type ApplicationService interface {
	Create(ctx context.Context, ownerID string, req application.CreateRequest) (*application.Application, error)
	List(ctx context.Context, ownerID string) ([]application.Application, error)
	Update(ctx context.Context, ownerID, id string, patch application.FieldPatch) (*application.Application, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// BoardService defines board operations needed by MCP.
type BoardService interface {
	Reposition(ctx context.Context, ownerID string, req board.RepositionRequest) (*application.Application, error)
}

// Config contains server configuration.
type Config struct {
	Applications ApplicationService
	Board        BoardService
	// OwnerID is the account every tool call acts on.
	OwnerID string
	Logger  *slog.Logger
}

// NewServer creates and configures an MCP server with all board tools.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "applytrack",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(callLoggingMiddleware(cfg.Logger))

	registerTools(server, cfg)

	return server
}

// callLoggingMiddleware logs every inbound MCP method at debug level.
func callLoggingMiddleware(logger *slog.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			logger.Debug("mcp call", "method", method)
			result, err := next(ctx, method, req)
			if err != nil {
				logger.Debug("mcp call failed", "method", method, "error", err)
			}
			return result, err
		}
	}
}
