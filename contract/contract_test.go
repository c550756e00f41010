package contract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type pinger struct{}

func (pinger) Run(context.Context) error { return nil }

func TestGetWorkerName(t *testing.T) {
	req := require.New(t)

	req.Equal("pinger", GetWorkerName(pinger{}))
	req.Equal("pinger", GetWorkerName(&pinger{}))
	req.Equal("NilWorker", GetWorkerName(nil))
}
