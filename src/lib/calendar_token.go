package lib

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

const CALENDAR_TOKEN_KEY = "calendar:token"

var ErrTokenNotFound = errors.New("calendar token not found")

// TokenStore persists the OAuth token obtained from the consent flow.
type TokenStore interface {
	Load(ctx context.Context) (*oauth2.Token, error)
	Save(ctx context.Context, tok *oauth2.Token) error
}

type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (f *FileTokenStore) Load(ctx context.Context) (*oauth2.Token, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	tok := &oauth2.Token{}
	if err := json.Unmarshal(b, tok); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f.path, err)
	}
	return tok, nil
}

func (f *FileTokenStore) Save(ctx context.Context, tok *oauth2.Token) error {
	b, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, b, 0o600)
}

type RedisTokenStore struct {
	client *redis.Client
	key    string
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client, key: CALENDAR_TOKEN_KEY}
}

func (r *RedisTokenStore) Load(ctx context.Context) (*oauth2.Token, error) {
	val, err := r.client.Get(ctx, r.key).Result()
	if err == redis.Nil {
		return nil, ErrTokenNotFound
	} else if err != nil {
		return nil, err
	}
	tok := &oauth2.Token{}
	if err := json.Unmarshal([]byte(val), tok); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", r.key, err)
	}
	return tok, nil
}

func (r *RedisTokenStore) Save(ctx context.Context, tok *oauth2.Token) error {
	b, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, string(b), 0).Err()
}

// StaticRefreshToken serves a refresh token from the environment ahead of anything
// persisted. Saves still reach the wrapped store.
type StaticRefreshToken struct {
	RefreshToken string
	Next         TokenStore
}

func (s *StaticRefreshToken) Load(ctx context.Context) (*oauth2.Token, error) {
	return &oauth2.Token{RefreshToken: s.RefreshToken}, nil
}

func (s *StaticRefreshToken) Save(ctx context.Context, tok *oauth2.Token) error {
	if s.Next == nil {
		return nil
	}
	return s.Next.Save(ctx, tok)
}
