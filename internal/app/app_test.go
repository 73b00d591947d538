package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/furniture-shop/internal/config"
	"github.com/furniture-shop/internal/models"
	"github.com/furniture-shop/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeService struct {
	name     string
	startErr error
	block    bool
	stopped  bool
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return nil
	}
	return s.startErr
}

func (s *fakeService) Stop(ctx context.Context) error {
	s.stopped = true
	return nil
}

func TestRunnerStopsAllOnFailure(t *testing.T) {
	failing := &fakeService{name: "failing", startErr: errors.New("bind failed")}
	blocking := &fakeService{name: "blocking", block: true}
	closed := false
	runner := NewRunner(failing, blocking)
	runner.onStop = func() { closed = true }

	err := runner.Run(context.Background(), time.Second, nil)
	require.EqualError(t, err, "bind failed")
	assert.True(t, failing.stopped)
	assert.True(t, blocking.stopped)
	assert.True(t, closed)
}

func TestRunnerCancelIsClean(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewRunner(&fakeService{name: "blocking", block: true}).Run(ctx, time.Second, nil)
	assert.NoError(t, err)
}

func TestRunnerWithoutServices(t *testing.T) {
	assert.Error(t, NewRunner().Run(context.Background(), time.Second, nil))
	assert.Error(t, RunWithOptions(nil, Options{}))
}

func TestBuildRunnerAPIMode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:app_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, models.MigrateWith(db))

	cfg := &config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"
	cfg.Server.Mode = "debug"
	container, err := provider.Build(cfg, db, nil)
	require.NoError(t, err)

	runner, err := buildRunnerWith(cfg, container, ModeAPI)
	require.NoError(t, err)
	require.Len(t, runner.services, 1)
	assert.Equal(t, "http", runner.services[0].Name())

	_, err = buildRunnerWith(cfg, container, ModeWorker)
	assert.Error(t, err)
}

func TestBuildRunnerRejectsUnknownMode(t *testing.T) {
	_, err := BuildRunner(&config.Config{}, "cron")
	assert.Error(t, err)
	_, err = BuildRunner(nil, ModeAll)
	assert.Error(t, err)
}
