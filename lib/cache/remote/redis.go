package remote

import (
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

type RedisConfig struct {
	Host     string
	Port     int
	Db       int
	Password string
}

func NewRedisClient(conf RedisConfig) Client {
	return &redisClient{
		Client: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
			DB:       conf.Db,
			Password: conf.Password,
		}),
	}
}

type redisClient struct {
	*redis.Client
}

func (r *redisClient) Get(key string) ([]byte, error) {
	b, err := r.Client.Get(key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *redisClient) Set(key string, data []byte, ttl time.Duration) error {
	return r.Client.Set(key, data, ttl).Err()
}

func (r *redisClient) Delete(key string) (bool, error) {
	n, err := r.Client.Del(key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *redisClient) Ready() bool {
	return r.Ping().Err() == nil
}
