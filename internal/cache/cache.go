// Package cache хранит отрендеренные страницы ограниченное время.
// Инвалидации по записи нет: после вставки поста закэшированная страница
// остается прежней до истечения TTL или явного Clear.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type PageCache struct {
	lru *expirable.LRU[string, []byte]
	ttl time.Duration
}

func NewPageCache(size int, ttl time.Duration) *PageCache {
	if size < 1 {
		size = 1
	}
	return &PageCache{
		lru: expirable.NewLRU[string, []byte](size, nil, ttl),
		ttl: ttl,
	}
}

func (c *PageCache) Get(key string) ([]byte, bool) {
	return c.lru.Get(key)
}

func (c *PageCache) Put(key string, body []byte) {
	c.lru.Add(key, body)
}

func (c *PageCache) Clear() {
	c.lru.Purge()
}

func (c *PageCache) TTL() time.Duration {
	return c.ttl
}

func (c *PageCache) Len() int {
	return c.lru.Len()
}
