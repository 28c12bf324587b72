package publishnote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkg-node/dkg-plugins/app/response"
	"github.com/dkg-node/dkg-plugins/pkg/command"
	"github.com/dkg-node/dkg-plugins/pkg/i18n"
)

type CreateInput struct {
	Content string `json:"content" jsonschema:"JSON-LD document to publish, as a string" binding:"required"`
	Privacy string `json:"privacy,omitempty" jsonschema:"public (default) or private" binding:"omitempty,oneof=public private"`
}

type GetInput struct {
	UAL string `json:"ual" uri:"ual" jsonschema:"UAL of the Knowledge Asset" binding:"required"`
}

type QueryInput struct {
	Query string `json:"query" binding:"required"`
}

func (p *Plugin) logic(ctx context.Context) *AssetLogic {
	return NewAssetLogic(ctx, p.core, p.cfg)
}

func (p *Plugin) registerCommands(reg *command.Registry) {
	command.Register(reg, &command.Command[CreateInput, CreateResult]{
		Name:        "create_asset",
		Description: "Publish a JSON-LD note as a Knowledge Asset on the DKG",
		Tool:        "publish_note",
		Method:      http.MethodPost,
		Path:        "/publishnote/create",
		Middlewares: []gin.HandlerFunc{
			p.core.UseLimiter("publish_note", p.core.Cfg().Limit.PublishPerMinute),
		},
		Execute: func(ctx context.Context, in CreateInput) (CreateResult, error) {
			return p.logic(ctx).CreateAsset(in.Content, in.Privacy)
		},
		Summarize: func(_ CreateInput, out CreateResult) string {
			return fmt.Sprintf("%s\nUAL: %s\nExplorer: %s",
				i18n.Default().Get(i18n.DEFAULT_LANG, i18n.MESSAGE_ASSET_CREATED_TOOL), out.UAL, out.ExplorerLink)
		},
		Render: func(c *gin.Context, out CreateResult) gin.H {
			return gin.H{
				"ual":          out.UAL,
				"explorerLink": out.ExplorerLink,
				"message":      response.InjectResponseLocalizer(c).Get(response.GetLangFromRequestOrDefault(c), i18n.MESSAGE_ASSET_CREATED),
			}
		},
	})

	command.Register(reg, &command.Command[GetInput, GetResult]{
		Name:        "get_asset",
		Description: "Retrieve a published Knowledge Asset by its UAL",
		Tool:        "get_published_note",
		Method:      http.MethodGet,
		Path:        "/publishnote/get/:ual",
		Execute: func(ctx context.Context, in GetInput) (GetResult, error) {
			return p.logic(ctx).GetAsset(in.UAL)
		},
		Summarize: func(_ GetInput, out GetResult) string {
			raw, err := json.MarshalIndent(out.Content, "", "  ")
			if err != nil {
				raw = []byte(fmt.Sprint(out.Content))
			}
			return fmt.Sprintf("Knowledge Asset %s:\n%s", out.UAL, raw)
		},
		Render: func(_ *gin.Context, out GetResult) gin.H {
			return gin.H{
				"ual":     out.UAL,
				"content": out.Content,
			}
		},
	})

	command.Register(reg, &command.Command[QueryInput, QueryResult]{
		Name:   "query_graph",
		Method: http.MethodPost,
		Path:   "/publishnote/query",
		Execute: func(ctx context.Context, in QueryInput) (QueryResult, error) {
			return p.logic(ctx).QueryGraph(in.Query)
		},
		Render: func(_ *gin.Context, out QueryResult) gin.H {
			return gin.H{"results": out.Results}
		},
	})
}
