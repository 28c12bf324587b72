package response

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/dkg-node/dkg-plugins/pkg/errors"
	"github.com/dkg-node/dkg-plugins/pkg/i18n"
)

const (
	RequestIDKey = "request_id"
	localizerKey = "i18n"
)

var supportedLangs = language.NewMatcher([]language.Tag{
	language.English, // first tag is the fallback
	language.SimplifiedChinese,
})

func ProvideResponseLocalizer(l i18n.Localizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(localizerKey, l)
	}
}

func InjectResponseLocalizer(c *gin.Context) i18n.Localizer {
	if l, ok := c.Get(localizerKey); ok {
		if localizer, ok := l.(i18n.Localizer); ok {
			return localizer
		}
	}
	return i18n.Default()
}

func GetLangFromRequestOrDefault(c *gin.Context) string {
	tags, _, err := language.ParseAcceptLanguage(c.Request.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return i18n.DEFAULT_LANG
	}
	_, idx, _ := supportedLangs.Match(tags...)
	if idx == 1 {
		return "zh-CN"
	}
	return i18n.DEFAULT_LANG
}

// Message resolves err into the text a client should see.
func Message(l i18n.Localizer, lang string, err error) string {
	if cerr, ok := errors.As(err); ok {
		return l.Get(lang, cerr.Message())
	}
	return err.Error()
}

// APIError writes {success:false, error} with the error's HTTP status.
func APIError(c *gin.Context, err error) {
	c.Abort()

	httpStatus := http.StatusInternalServerError
	if cerr, ok := errors.As(err); ok {
		httpStatus = cerr.GetCode()
	}
	message := Message(InjectResponseLocalizer(c), GetLangFromRequestOrDefault(c), err)

	c.JSON(httpStatus, gin.H{
		"success": false,
		"error":   message,
	})
	printErrorLog(c, httpStatus, err)
}

func printErrorLog(c *gin.Context, code int, err error) {
	slog.Error("response error",
		slog.String("request_uri", c.Request.URL.Path),
		slog.String("method", c.Request.Method),
		slog.String(RequestIDKey, c.GetString(RequestIDKey)),
		slog.Int64("end_time", time.Now().Unix()),
		slog.Int("code", code),
		slog.String("error", err.Error()),
	)
}

func printSuccessLog(c *gin.Context) {
	slog.Info("request success",
		slog.String("request_uri", c.Request.URL.Path),
		slog.String("method", c.Request.Method),
		slog.String(RequestIDKey, c.GetString(RequestIDKey)),
		slog.Int64("end_time", time.Now().Unix()),
		slog.String("params", c.Request.URL.Query().Encode()),
	)
}

// APISuccess writes {success:true, ...data}. A "success" key in data is ignored.
func APISuccess(c *gin.Context, data gin.H) {
	c.Abort()
	body := gin.H{}
	for k, v := range data {
		body[k] = v
	}
	body["success"] = true

	c.JSON(http.StatusOK, body)
	printSuccessLog(c)
}
