package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/tgpaginator/core/config"
	coredatabase "github.com/m3rciful/tgpaginator/core/database"
)

func noLogger(*coreconfig.Config) error { return nil }

func TestRunWithoutDatabaseSkipsConnect(t *testing.T) {
	res, err := Run(context.Background(), Options{
		Config:     &coreconfig.Config{},
		LoggerInit: noLogger,
		Connect: func(coredatabase.Config) (*sqlx.DB, error) {
			t.Fatal("connect must not be called")
			return nil, nil
		},
	})
	require.NoError(t, err)
	assert.Nil(t, res.DB)
	assert.NoError(t, res.Close())
}

func TestRunPropagatesConnectError(t *testing.T) {
	boom := errors.New("refused")
	_, err := Run(context.Background(), Options{
		Config:     &coreconfig.Config{},
		Database:   coredatabase.Config{Host: "db"},
		LoggerInit: noLogger,
		Connect:    func(coredatabase.Config) (*sqlx.DB, error) { return nil, boom },
	})
	assert.ErrorIs(t, err, boom)
}

func TestRunRequiresConfig(t *testing.T) {
	_, err := Run(context.Background(), Options{})
	assert.Error(t, err)
}

func TestModulesSeedStopsAtFirstFailure(t *testing.T) {
	var ran []int
	boom := errors.New("dup key")
	m := Modules{Seeders: []Seeder{
		SeederFunc(func(context.Context, Storage) error { ran = append(ran, 0); return nil }),
		nil,
		SeederFunc(func(context.Context, Storage) error { ran = append(ran, 2); return boom }),
		SeederFunc(func(context.Context, Storage) error { ran = append(ran, 3); return nil }),
	}}

	err := m.Seed(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{0, 2}, ran)
}
