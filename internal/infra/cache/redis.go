package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/streamtv-site/internal/usecase"
)

const defaultKeyPrefix = "streamtv:"

// RedisPageCache compartilha o cache de páginas entre instâncias. Cada tag é um
// set com as chaves das entradas gravadas sob ela.
type RedisPageCache struct {
	client *redis.Client
	prefix string
}

func NewRedisPageCache(client *redis.Client, prefix string) *RedisPageCache {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisPageCache{client: client, prefix: prefix}
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (c *RedisPageCache) entryKey(key string) string   { return c.prefix + "page:" + key }
func (c *RedisPageCache) tagKey(tag string) string     { return c.prefix + "tag:" + tag }
func (c *RedisPageCache) versionKey(tag string) string { return c.prefix + "ver:" + tag }

func (c *RedisPageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, c.entryKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (c *RedisPageCache) Versions(ctx context.Context, tags []string) (usecase.TagVersions, error) {
	seen := make(usecase.TagVersions, len(tags))
	if len(tags) == 0 {
		return seen, nil
	}
	values, err := c.client.MGet(ctx, c.versionKeys(tags)...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis tag versions: %w", err)
	}
	for i, tag := range tags {
		v, err := parseVersion(values[i])
		if err != nil {
			return nil, fmt.Errorf("redis tag version %s: %w", tag, err)
		}
		seen[tag] = v
	}
	return seen, nil
}

// Set grava a entrada e liga às tags numa única transação. O set da tag vive pelo
// menos tanto quanto a entrada mais nova. As chaves de versão ficam em WATCH: se uma
// tag foi invalidada depois da leitura de seen, a gravação é descartada.
// Com seen nil a gravação é incondicional.
func (c *RedisPageCache) Set(ctx context.Context, key string, value []byte, tags []string, ttl time.Duration, seen usecase.TagVersions) error {
	entry := c.entryKey(key)
	write := func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, entry, value, ttl)
		for _, tag := range tags {
			tagKey := c.tagKey(tag)
			pipe.SAdd(ctx, tagKey, entry)
			pipe.Expire(ctx, tagKey, ttl)
		}
		return nil
	}

	if seen == nil || len(tags) == 0 {
		if _, err := c.client.TxPipelined(ctx, write); err != nil {
			return fmt.Errorf("redis set %s: %w", key, err)
		}
		return nil
	}

	versionKeys := c.versionKeys(tags)
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		values, err := tx.MGet(ctx, versionKeys...).Result()
		if err != nil {
			return err
		}
		for i, tag := range tags {
			current, err := parseVersion(values[i])
			if err != nil {
				return err
			}
			if current != seen[tag] {
				return errStaleWrite
			}
		}
		_, err = tx.TxPipelined(ctx, write)
		return err
	}, versionKeys...)

	switch {
	case err == nil, errors.Is(err, errStaleWrite), errors.Is(err, redis.TxFailedErr):
		return nil
	default:
		return fmt.Errorf("redis set %s: %w", key, err)
	}
}

var errStaleWrite = errors.New("tag invalidated during load")

func (c *RedisPageCache) versionKeys(tags []string) []string {
	keys := make([]string, len(tags))
	for i, tag := range tags {
		keys[i] = c.versionKey(tag)
	}
	return keys
}

func parseVersion(v any) (int64, error) {
	switch v := v.(type) {
	case nil:
		return 0, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected version value %T", v)
	}
}

func (c *RedisPageCache) InvalidateTag(ctx context.Context, tag string) error {
	if err := c.client.Incr(ctx, c.versionKey(tag)).Err(); err != nil {
		return fmt.Errorf("redis bump version %s: %w", tag, err)
	}

	tagKey := c.tagKey(tag)
	members, err := c.client.SMembers(ctx, tagKey).Result()
	if err != nil {
		return fmt.Errorf("redis tag members %s: %w", tag, err)
	}

	keys := append(members, tagKey)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis invalidate %s: %w", tag, err)
	}
	return nil
}

func (c *RedisPageCache) InvalidatePath(ctx context.Context, path string) error {
	return c.InvalidateTag(ctx, usecase.PathTag(path))
}

func (c *RedisPageCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
