package utils

import (
	"strconv"
	"sync"

	"github.com/holdno/snowFlakeByGo"
	"github.com/samber/lo"
)

var (
	// idWorker 全局唯一id生成器实例
	idWorker     *snowFlakeByGo.Worker
	idWorkerOnce sync.Once
)

func SetupIDWorker(clusterID int64) {
	idWorkerOnce.Do(func() {
		idWorker, _ = snowFlakeByGo.NewWorker(clusterID)
	})
}

func GenUniqID() int64 {
	SetupIDWorker(1)
	return idWorker.GetId()
}

func GenUniqIDStr() string {
	return strconv.FormatInt(GenUniqID(), 10)
}

// ReverseString reverses s by characters, not bytes.
func ReverseString(s string) string {
	return string(lo.Reverse([]rune(s)))
}
