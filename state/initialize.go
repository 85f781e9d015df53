package state

import (
	"os"
	"time"

	"cssnest/common"
)

// newLocalEnv creates environment writing text report to stdout.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		Format: common.OutputFmtText,
		Out:    os.Stdout,
		start:  time.Now(),
	}
}
