package example

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dkg-node/dkg-plugins/app/core"
	"github.com/dkg-node/dkg-plugins/pkg/utils"
)

const (
	STATUS_RUNNING = "running"
	STATUS_HEALTHY = "healthy"

	ENTHUSIASTIC_SUFFIX = " 🎉"
)

type UtilityLogic struct {
	ctx  context.Context
	core *core.Core
	cfg  Config
}

func NewUtilityLogic(ctx context.Context, core *core.Core, cfg Config) *UtilityLogic {
	return &UtilityLogic{
		ctx:  ctx,
		core: core,
		cfg:  cfg,
	}
}

type GreetResult struct {
	Greeting  string `json:"greeting"`
	Timestamp string `json:"timestamp"`
}

func Greeting(name string, enthusiastic bool) string {
	greeting := fmt.Sprintf("Hello, %s! Welcome to the DKG Node.", name)
	if enthusiastic {
		greeting = strings.ToUpper(greeting) + ENTHUSIASTIC_SUFFIX
	}
	return greeting
}

func (l *UtilityLogic) Greet(name string, enthusiastic bool) GreetResult {
	return GreetResult{
		Greeting:  Greeting(name, enthusiastic),
		Timestamp: utils.NowISO(),
	}
}

type StatusResult struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Version   string  `json:"pluginVersion"`
	Uptime    float64 `json:"uptime"`
	PluginID  string  `json:"plugin"`
}

// Status reports the node as running along with the seconds since startup.
func (l *UtilityLogic) Status() StatusResult {
	return StatusResult{
		Status:    STATUS_RUNNING,
		Timestamp: utils.NowISO(),
		Version:   l.cfg.Version,
		Uptime:    l.core.Uptime().Seconds(),
		PluginID:  l.cfg.PluginID,
	}
}

type EchoResult struct {
	Echo      string `json:"echo"`
	Length    int    `json:"length"`
	Reversed  string `json:"reversed"`
	Uppercase string `json:"uppercase"`
	Timestamp string `json:"timestamp"`
}

// Echo counts and reverses message by characters.
func (l *UtilityLogic) Echo(message string) EchoResult {
	return EchoResult{
		Echo:      message,
		Length:    utf8.RuneCountInString(message),
		Reversed:  utils.ReverseString(message),
		Uppercase: strings.ToUpper(message),
		Timestamp: utils.NowISO(),
	}
}

type HealthResult struct {
	Status    string `json:"status"`
	Plugin    string `json:"plugin"`
	Timestamp string `json:"timestamp"`
}

func (l *UtilityLogic) Health() HealthResult {
	return HealthResult{
		Status:    STATUS_HEALTHY,
		Plugin:    l.cfg.PluginID,
		Timestamp: utils.NowISO(),
	}
}
