package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkg-node/dkg-plugins/pkg/dkg"
)

type stubClient struct{}

func (stubClient) Asset() dkg.AssetService { return nil }
func (stubClient) Graph() dkg.GraphService { return nil }

type stubPlugin struct {
	name    string
	install func(*Core) error
}

func (p stubPlugin) Name() string { return p.name }
func (p stubPlugin) Install(c *Core) error {
	if p.install != nil {
		return p.install(c)
	}
	return nil
}

func TestSetupFromENV(t *testing.T) {
	core := MustSetupCore(LoadBaseConfigFromENV())
	require.NotNil(t, core)

	_, ok := core.DKG().(*dkg.HTTPClient)
	assert.True(t, ok)
	assert.True(t, core.HttpEngine().UseRawPath)
	assert.NoError(t, core.Shutdown(context.Background()))
}

func TestSetupWithInjectedClient(t *testing.T) {
	client := stubClient{}
	core := MustSetupCore(LoadBaseConfigFromENV(), WithDKGClient(client))

	assert.Equal(t, client, core.DKG())
	assert.GreaterOrEqual(t, core.Uptime(), time.Duration(0))
	assert.Less(t, core.Uptime(), time.Second)
}

func TestInstallPlugins(t *testing.T) {
	core := MustSetupCore(LoadBaseConfigFromENV(), WithDKGClient(stubClient{}))

	core.InstallPlugins(stubPlugin{name: "a"})
	core.InstallPlugins(stubPlugin{name: "b"})
	assert.Equal(t, []string{"a", "b"}, core.Plugins())

	assert.Panics(t, func() {
		core.InstallPlugins(stubPlugin{name: "broken", install: func(*Core) error {
			return assert.AnError
		}})
	})
}

func TestUseLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core := MustSetupCore(LoadBaseConfigFromENV(), WithDKGClient(stubClient{}))

	engine := gin.New()
	engine.GET("/limited", core.UseLimiter("publish", 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	engine.GET("/open", core.UseLimiter("publish_open", 0), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestLimiterSharesBucketPerKey(t *testing.T) {
	l := NewLimiter()

	a := l.Use("k", WithLimit(2), WithRange(time.Hour))
	assert.Same(t, a, l.Use("k"))
	assert.True(t, a.Allow())
	assert.True(t, a.Allow())
	assert.False(t, a.Allow())
	assert.True(t, l.Use("other", WithLimit(1)).Allow())
}

func TestMetricsObserveRequest(t *testing.T) {
	m := NewMetrics("dkg", "plugins")
	done := m.ObserveRequest("publish")
	done(nil)
	done = m.ObserveRequest("publish")
	done(assert.AnError)

	// a second manager reuses the registered vectors
	assert.NotPanics(t, func() { NewMetrics("dkg", "plugins") })
}

func TestSampleRatio(t *testing.T) {
	assert.Equal(t, 1.0, sampleRatio(0))
	assert.Equal(t, 0.25, sampleRatio(0.25))
	assert.Equal(t, 1.0, sampleRatio(4))
}
