package store

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
)

type fakeRedisClient struct {
	hgetallReturn *redis.MapStringStringCmd
	pingReturn    *redis.StatusCmd
	closeErr      error
	lastHashKey   string
}

func (f *fakeRedisClient) HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd {
	f.lastHashKey = key
	return f.hgetallReturn
}

func (f *fakeRedisClient) Ping(ctx context.Context) *redis.StatusCmd {
	if f.pingReturn != nil {
		return f.pingReturn
	}
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedisClient) Close() error {
	return f.closeErr
}

func TestNewWithClientNil(t *testing.T) {
	if _, err := NewWithClient(nil); err == nil {
		t.Fatalf("expected error when client is nil")
	}
}

func TestProperties(t *testing.T) {
	client := &fakeRedisClient{
		hgetallReturn: redis.NewMapStringStringResult(map[string]string{
			"feature.flag": "on",
			"api.token":    "xyz",
		}, nil),
	}

	s, err := NewWithClient(client)
	if err != nil {
		t.Fatalf("NewWithClient error: %v", err)
	}

	props, err := s.Properties(context.Background(), "config:properties")
	if err != nil {
		t.Fatalf("Properties returned error: %v", err)
	}
	if len(props) != 2 || props["feature.flag"] != "on" {
		t.Fatalf("unexpected properties: %v", props)
	}
	if client.lastHashKey != "config:properties" {
		t.Fatalf("unexpected hash key passed to HGetAll: %v", client.lastHashKey)
	}
}

func TestPropertiesEmptyHash(t *testing.T) {
	client := &fakeRedisClient{
		hgetallReturn: redis.NewMapStringStringResult(map[string]string{}, nil),
	}

	s, err := NewWithClient(client)
	if err != nil {
		t.Fatalf("NewWithClient error: %v", err)
	}

	props, err := s.Properties(context.Background(), "config:properties")
	if err != nil {
		t.Fatalf("Properties returned error: %v", err)
	}
	if len(props) != 0 {
		t.Fatalf("expected empty map, got %v", props)
	}
}

func TestPropertiesRedisError(t *testing.T) {
	client := &fakeRedisClient{
		hgetallReturn: redis.NewMapStringStringResult(nil, errors.New("boom")),
	}

	s, err := NewWithClient(client)
	if err != nil {
		t.Fatalf("NewWithClient error: %v", err)
	}

	if _, err := s.Properties(context.Background(), "config:properties"); err == nil {
		t.Fatalf("expected error from Properties")
	}
}

func TestClose(t *testing.T) {
	client := &fakeRedisClient{
		closeErr: nil,
	}

	s, err := NewWithClient(client)
	if err != nil {
		t.Fatalf("NewWithClient error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

func TestCloseNilStore(t *testing.T) {
	var s *Store
	if err := s.Close(); err == nil {
		t.Fatalf("expected error closing nil store")
	}
}
