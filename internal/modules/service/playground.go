package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	playgroundCodeKey      = "playground:html"
	playgroundUpdatedAtKey = "playground:updated_at"
)

// playgroundPlaceholder is served when nobody has written to the shared
// scratch page yet.
const playgroundPlaceholder = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Playground</title></head>
<body>
<h1>Playground</h1>
<p>Nothing here yet. PUT some HTML to get started.</p>
</body>
</html>`

type PlaygroundOutput struct {
	HTMLCode  string     `json:"htmlCode"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// PlaygroundService backs the shared, unauthenticated scratch page with a
// single redis key. Last write wins, no history.
type PlaygroundService interface {
	Get(ctx context.Context) (*PlaygroundOutput, error)
	Update(ctx context.Context, htmlCode string) (*PlaygroundOutput, error)
	Reset(ctx context.Context) error
}

type playgroundService struct {
	rdb *redis.Client
}

func NewPlaygroundService(rdb *redis.Client) PlaygroundService {
	return &playgroundService{rdb: rdb}
}

func (s *playgroundService) Get(ctx context.Context) (*PlaygroundOutput, error) {
	code, err := s.rdb.Get(ctx, playgroundCodeKey).Result()
	if err == redis.Nil {
		return &PlaygroundOutput{HTMLCode: playgroundPlaceholder}, nil
	}
	if err != nil {
		return nil, err
	}

	out := &PlaygroundOutput{HTMLCode: code}
	if raw, err := s.rdb.Get(ctx, playgroundUpdatedAtKey).Result(); err == nil {
		if ts, perr := time.Parse(time.RFC3339Nano, raw); perr == nil {
			out.UpdatedAt = &ts
		}
	}
	return out, nil
}

func (s *playgroundService) Update(ctx context.Context, htmlCode string) (*PlaygroundOutput, error) {
	if htmlCode == "" {
		return nil, &ValidationError{Msg: "htmlCode is required"}
	}

	now := time.Now()
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, playgroundCodeKey, htmlCode, 0)
	pipe.Set(ctx, playgroundUpdatedAtKey, now.Format(time.RFC3339Nano), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	return &PlaygroundOutput{HTMLCode: htmlCode, UpdatedAt: &now}, nil
}

func (s *playgroundService) Reset(ctx context.Context) error {
	return s.rdb.Del(ctx, playgroundCodeKey, playgroundUpdatedAtKey).Err()
}
