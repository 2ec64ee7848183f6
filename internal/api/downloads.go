package api

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

// download 一份待下载的导出产物，整个放在内存里
type download struct {
	fileName    string
	contentType string
	data        []byte
	expiresAt   time.Time
}

type downloadStore struct {
	mu    sync.Mutex
	items map[string]download
}

func newDownloadStore() *downloadStore {
	return &downloadStore{
		items: make(map[string]download),
	}
}

func (s *downloadStore) put(fileName, contentType string, data []byte, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = newRandomToken(24)
	s.items[token] = download{
		fileName:    fileName,
		contentType: contentType,
		data:        data,
		expiresAt:   time.Now().Add(ttl),
	}
	return token
}

func (s *downloadStore) get(token string) (download, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[token]
	if !ok {
		return download{}, false
	}
	if time.Now().After(v.expiresAt) {
		delete(s.items, token)
		return download{}, false
	}
	return v, true
}

func (s *downloadStore) delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, token)
}

func (s *downloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}

func newRandomToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
