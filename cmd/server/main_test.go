package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"murim-academy/internal/auth"
	"murim-academy/internal/config"
	"murim-academy/internal/domain"
	"murim-academy/internal/notify"
	"murim-academy/internal/repository/sqlstore"
	"murim-academy/internal/service"
)

func TestNewLogger(t *testing.T) {
	var cfg config.Config
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := newLogger(cfg)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	cfg.Log.Level = "chatty"
	cfg.Log.Format = "text"
	logger = newLogger(cfg)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestBuildNotifierFallsBackToLog(t *testing.T) {
	var cfg config.Config
	logger := logrus.New()

	assert.IsType(t, &notify.LogNotifier{}, buildNotifier(cfg, logger))

	cfg.Notify.SendGridKey = "SG.key"
	assert.IsType(t, &notify.LogNotifier{}, buildNotifier(cfg, logger), "missing sender falls back")

	cfg.Notify.From = "site@murim.test"
	cfg.Notify.To = "mestre@murim.test"
	assert.IsType(t, &notify.SendGridNotifier{}, buildNotifier(cfg, logger))
}

func TestBuildStorageDisabledWithoutBucket(t *testing.T) {
	svc, err := buildStorage(context.Background(), config.Config{}, logrus.New())
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestPromptPassword(t *testing.T) {
	orig := readPasswordFunc
	t.Cleanup(func() { readPasswordFunc = orig })

	var out bytes.Buffer
	readPasswordFunc = func(int) ([]byte, error) { return []byte("  kungfu123\n"), nil }
	pwd, err := promptPassword(&out, 0)
	require.NoError(t, err)
	assert.Equal(t, "kungfu123", pwd)
	assert.Contains(t, out.String(), "Enter password:")

	readPasswordFunc = func(int) ([]byte, error) { return nil, nil }
	_, err = promptPassword(&out, 0)
	assert.Error(t, err)

	readPasswordFunc = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }
	_, err = promptPassword(&out, 0)
	assert.ErrorContains(t, err, "not a terminal")
}

func TestCreateAdmin(t *testing.T) {
	db, err := sqlstore.Setup(sqlstore.DriverSQLite, filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlstore.NewUserRepository(db)
	users := service.NewUserService(repo, auth.NewPasswordHasher(bcrypt.MinCost), auth.NewTokenService("s"), auth.DefaultTokenTTL)

	var out bytes.Buffer
	in := service.NewUser{FullName: "Mestre Wong", Email: "mestre@murim.test", Password: "kungfu123"}
	require.NoError(t, createAdmin(context.Background(), &out, users, in))
	assert.Contains(t, out.String(), "admin mestre@murim.test created")

	stored, err := repo.GetByEmail(context.Background(), "mestre@murim.test")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, stored.Role)

	err = createAdmin(context.Background(), &out, users, in)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
