package mcp

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mlevin/applytrack/internal/domain/application"
	"github.com/mlevin/applytrack/internal/domain/board"
)

type getBoardArgs struct{}

// BoardColumn is one status column in display order.
type BoardColumn struct {
	Status       application.Status        `json:"status"`
	Applications []application.Application `json:"applications"`
}

// BoardSnapshot is the whole board grouped by column.
type BoardSnapshot struct {
	Columns []BoardColumn `json:"columns"`
}

type addApplicationArgs struct {
	CompanyName   string `json:"company_name" jsonschema:"company the application was sent to"`
	JobTitle      string `json:"job_title" jsonschema:"title of the role"`
	Status        string `json:"status,omitempty" jsonschema:"board column, one of Applied/Interviewing/Rejected/Offer (default Applied)"`
	DateApplied   string `json:"date_applied,omitempty" jsonschema:"date the application was sent, YYYY-MM-DD"`
	JobPostingURL string `json:"job_posting_url,omitempty" jsonschema:"link to the job posting"`
	SalaryNotes   string `json:"salary_notes,omitempty" jsonschema:"salary or compensation notes"`
	PrivateNotes  string `json:"private_notes,omitempty" jsonschema:"free-form private notes"`
	ContactName   string `json:"contact_name,omitempty" jsonschema:"recruiter or hiring contact name"`
	ContactEmail  string `json:"contact_email,omitempty" jsonschema:"recruiter or hiring contact email"`
}

type updateApplicationArgs struct {
	ID            string  `json:"id" jsonschema:"application id"`
	CompanyName   *string `json:"company_name,omitempty" jsonschema:"new company name"`
	JobTitle      *string `json:"job_title,omitempty" jsonschema:"new job title"`
	JobPostingURL *string `json:"job_posting_url,omitempty" jsonschema:"new posting link"`
	SalaryNotes   *string `json:"salary_notes,omitempty" jsonschema:"new salary notes"`
	PrivateNotes  *string `json:"private_notes,omitempty" jsonschema:"new private notes"`
	ContactName   *string `json:"contact_name,omitempty" jsonschema:"new contact name"`
	ContactEmail  *string `json:"contact_email,omitempty" jsonschema:"new contact email"`
}

type moveApplicationArgs struct {
	ID        string `json:"id" jsonschema:"application id to move"`
	NewStatus string `json:"new_status" jsonschema:"destination column, one of Applied/Interviewing/Rejected/Offer"`
	NewIndex  int    `json:"new_index" jsonschema:"zero-based slot in the destination column; the column length means append at the end"`
}

type deleteApplicationArgs struct {
	ID string `json:"id" jsonschema:"application id to delete"`
}

type messageResult struct {
	Message string `json:"message"`
}

func registerTools(server *sdkmcp.Server, cfg Config) {
	owner := cfg.OwnerID

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_board",
		Description: "Get the whole kanban board: every application grouped by column in display order",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, _ getBoardArgs) (*sdkmcp.CallToolResult, BoardSnapshot, error) {
		apps, err := cfg.Applications.List(ctx, owner)
		if err != nil {
			return nil, BoardSnapshot{}, err
		}

		byStatus := make(map[application.Status][]application.Application)
		for _, app := range apps {
			byStatus[app.Status] = append(byStatus[app.Status], app)
		}
		snapshot := BoardSnapshot{}
		for _, status := range application.Statuses {
			column := byStatus[status]
			if column == nil {
				column = []application.Application{}
			}
			snapshot.Columns = append(snapshot.Columns, BoardColumn{
				Status:       status,
				Applications: column,
			})
		}
		return nil, snapshot, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_application",
		Description: "Track a new job application; it is appended at the end of its column",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args addApplicationArgs) (*sdkmcp.CallToolResult, *application.Application, error) {
		createReq := application.CreateRequest{
			CompanyName:   args.CompanyName,
			JobTitle:      args.JobTitle,
			Status:        application.Status(args.Status),
			JobPostingURL: optional(args.JobPostingURL),
			SalaryNotes:   optional(args.SalaryNotes),
			PrivateNotes:  optional(args.PrivateNotes),
			ContactName:   optional(args.ContactName),
			ContactEmail:  optional(args.ContactEmail),
		}
		if args.DateApplied != "" {
			applied, err := time.Parse("2006-01-02", args.DateApplied)
			if err != nil {
				return nil, nil, err
			}
			createReq.DateApplied = &applied
		}

		app, err := cfg.Applications.Create(ctx, owner, createReq)
		if err != nil {
			return nil, nil, err
		}
		return nil, app, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_application",
		Description: "Update descriptive fields of an application; omitted fields are left unchanged",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args updateApplicationArgs) (*sdkmcp.CallToolResult, *application.Application, error) {
		app, err := cfg.Applications.Update(ctx, owner, args.ID, application.FieldPatch{
			CompanyName:   args.CompanyName,
			JobTitle:      args.JobTitle,
			JobPostingURL: args.JobPostingURL,
			SalaryNotes:   args.SalaryNotes,
			PrivateNotes:  args.PrivateNotes,
			ContactName:   args.ContactName,
			ContactEmail:  args.ContactEmail,
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, app, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "move_application",
		Description: "Move an application to an exact slot in a column; the rest of the board reorders around it",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args moveApplicationArgs) (*sdkmcp.CallToolResult, *application.Application, error) {
		app, err := cfg.Board.Reposition(ctx, owner, board.RepositionRequest{
			ApplicationID: args.ID,
			NewStatus:     application.Status(args.NewStatus),
			NewIndex:      args.NewIndex,
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, app, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_application",
		Description: "Delete an application; its column closes the gap it leaves",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args deleteApplicationArgs) (*sdkmcp.CallToolResult, messageResult, error) {
		if err := cfg.Applications.Delete(ctx, owner, args.ID); err != nil {
			return nil, messageResult{}, err
		}
		return nil, messageResult{Message: "Application deleted"}, nil
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
