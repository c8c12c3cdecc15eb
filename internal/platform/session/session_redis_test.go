package session

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact_backend/internal/feature/auth/domain/entity"
	"contact_backend/internal/feature/auth/usecase"
)

// matchCommandAndKey compares only the command name and the key, ignoring
// the payload and TTL (both derive from time.Now() in the store).
func matchCommandAndKey(expected, actual []interface{}) error {
	if len(expected) < 2 || len(actual) < 2 {
		return fmt.Errorf("unexpected arg count: expected %v, actual %v", expected, actual)
	}
	for i := 0; i < 2; i++ {
		if fmt.Sprint(expected[i]) != fmt.Sprint(actual[i]) {
			return fmt.Errorf("arg %d mismatch: expected %v, actual %v", i, expected[i], actual[i])
		}
	}
	return nil
}

func testSession(id string, expiresAt time.Time) *entity.Session {
	return &entity.Session{
		ID:        id,
		UserID:    1,
		UserAgent: "test-agent",
		IPAddress: "192.0.2.1",
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
}

func TestSessionRedis_Create(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewSessionRedis(rdb, "session")

	sess := testSession("abc", time.Now().Add(time.Hour))
	mock.CustomMatch(matchCommandAndKey).
		ExpectSet("session:abc", nil, time.Hour).
		SetVal("OK")

	err := store.Create(context.Background(), sess)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRedis_Create_RejectsExpiredSession(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewSessionRedis(rdb, "session")

	// 期限切れセッションはRedisに触れずにエラーを返す
	err := store.Create(context.Background(), testSession("abc", time.Now().Add(-time.Minute)))
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRedis_FindByID(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewSessionRedis(rdb, "session")

	sess := testSession("abc", time.Now().Add(time.Hour))
	data, err := json.Marshal(sess)
	require.NoError(t, err)

	mock.ExpectGet("session:abc").SetVal(string(data))

	got, err := store.FindByID(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", got.ID)
	assert.Equal(t, uint(1), got.UserID)
	assert.Equal(t, "test-agent", got.UserAgent)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRedis_FindByID_NotFound(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewSessionRedis(rdb, "session")

	mock.ExpectGet("session:missing").RedisNil()

	_, err := store.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRedis_FindByID_CorruptPayload(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewSessionRedis(rdb, "session")

	mock.ExpectGet("session:abc").SetVal("not-json")

	_, err := store.FindByID(context.Background(), "abc")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionRedis_Revoke(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewSessionRedis(rdb, "session")

	sess := testSession("abc", time.Now().Add(time.Hour))
	data, err := json.Marshal(sess)
	require.NoError(t, err)

	mock.ExpectGet("session:abc").SetVal(string(data))
	// 失効済みレコードは監査用に1日だけ残る
	mock.CustomMatch(matchCommandAndKey).
		ExpectSet("session:abc", nil, 24*time.Hour).
		SetVal("OK")

	err = store.Revoke(context.Background(), "abc")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRedis_Revoke_NotFound(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewSessionRedis(rdb, "session")

	mock.ExpectGet("session:missing").RedisNil()

	err := store.Revoke(context.Background(), "missing")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionRedis_DeleteExpired(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	store := NewSessionRedis(rdb, "session")

	// TTLで自動失効するためRedis側での削除は不要
	n, err := store.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
