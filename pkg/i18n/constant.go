package i18n

var ALLOW_LANG = map[string]bool{
	"en":    true,
	"zh-CN": true,
}

const DEFAULT_LANG = "en"

const (
	ERROR_INTERNAL          = "error.internal"
	ERROR_NOT_FOUND         = "error.notfound"
	ERROR_INVALIDARGUMENT   = "error.invalidargument"
	ERROR_INVALID_BODY      = "error.invalid.body"
	ERROR_UNAUTHORIZED      = "error.unauthorized"
	ERROR_TOO_MANY_REQUESTS = "error.tooManyRequests"

	ERROR_INVALID_JSONLD       = "error.invalid.jsonld"
	ERROR_CREATE_ASSET_FAILED  = "error.asset.create.failed"
	ERROR_GET_ASSET_FAILED     = "error.asset.get.failed"
	ERROR_QUERY_GRAPH_FAILED   = "error.graph.query.failed"
	MESSAGE_ASSET_CREATED      = "message.asset.created"
	MESSAGE_ASSET_CREATED_TOOL = "message.asset.created.tool"
)
