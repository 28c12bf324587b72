package publishnote

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dkg-node/dkg-plugins/app/core"
	"github.com/dkg-node/dkg-plugins/pkg/dkg"
	"github.com/dkg-node/dkg-plugins/pkg/errors"
	"github.com/dkg-node/dkg-plugins/pkg/i18n"
)

const (
	PRIVACY_PUBLIC  = "public"
	PRIVACY_PRIVATE = "private"
)

// Retention in epochs per privacy level. Assets are always published mutable.
const (
	PUBLIC_EPOCHS  = 2
	PRIVATE_EPOCHS = 1
)

type AssetLogic struct {
	ctx  context.Context
	core *core.Core
	cfg  Config
}

func NewAssetLogic(ctx context.Context, core *core.Core, cfg Config) *AssetLogic {
	return &AssetLogic{
		ctx:  ctx,
		core: core,
		cfg:  cfg,
	}
}

func CreateOptions(privacy string) dkg.CreateOptions {
	epochs := PUBLIC_EPOCHS
	if privacy == PRIVACY_PRIVATE {
		epochs = PRIVATE_EPOCHS
	}
	return dkg.CreateOptions{
		EpochsNum: epochs,
		Immutable: false,
	}
}

type CreateResult struct {
	UAL          string `json:"ual"`
	ExplorerLink string `json:"explorerLink"`
	Message      string `json:"message"`
}

func (l *AssetLogic) CreateAsset(content, privacy string) (CreateResult, error) {
	var parsed any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return CreateResult{}, errors.New("AssetLogic.CreateAsset.ParseContent", i18n.ERROR_INVALID_JSONLD, err).Code(http.StatusBadRequest)
	}

	res, err := l.core.DKG().Asset().Create(l.ctx, parsed, CreateOptions(privacy))
	if err != nil {
		return CreateResult{}, downstream("AssetLogic.CreateAsset.Asset.Create", i18n.ERROR_CREATE_ASSET_FAILED, err)
	}

	return CreateResult{
		UAL:          res.UAL,
		ExplorerLink: l.cfg.ExplorerBaseURL + res.UAL,
		Message:      i18n.Default().Get(i18n.DEFAULT_LANG, i18n.MESSAGE_ASSET_CREATED),
	}, nil
}

type GetResult struct {
	UAL     string `json:"ual"`
	Content any    `json:"content"`
}

// GetAsset returns the public assertion of the asset, or the node's whole
// answer when it carries none.
func (l *AssetLogic) GetAsset(ual string) (GetResult, error) {
	asset, err := l.core.DKG().Asset().Get(l.ctx, ual)
	if err != nil {
		return GetResult{}, downstream("AssetLogic.GetAsset.Asset.Get", i18n.ERROR_GET_ASSET_FAILED, err)
	}

	var content any = map[string]any(asset)
	if public, ok := asset.Public(); ok {
		content = public
	}
	return GetResult{
		UAL:     ual,
		Content: content,
	}, nil
}

type QueryResult struct {
	Results any `json:"results"`
}

func (l *AssetLogic) QueryGraph(query string) (QueryResult, error) {
	res, err := l.core.DKG().Graph().Query(l.ctx, query, dkg.QuerySelect)
	if err != nil {
		return QueryResult{}, downstream("AssetLogic.QueryGraph.Graph.Query", i18n.ERROR_QUERY_GRAPH_FAILED, err)
	}
	return QueryResult{Results: res}, nil
}

// downstream reports a client failure as a server error, carrying the
// client's own message when it has one.
func downstream(trace, fallback string, err error) error {
	message := err.Error()
	if ce, ok := errors.As(err); ok {
		message = ce.Message()
	}
	if message == "" {
		message = fallback
	}
	return errors.New(trace, message, err)
}
