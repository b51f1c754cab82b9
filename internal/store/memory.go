package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore はメモリ上にコレクションを保持するStore実装。
// テストおよび永続化不要の実行に使用する。
// JSONエンコードを経由することでFileStoreと同じ直列化挙動になる。
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]byte
}

// NewMemoryStore はMemoryStoreを生成する。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]byte),
	}
}

// Load は指定コレクションの全レコードをoutに読み込む。
// 未初期化のコレクションは空配列として初期化する。
func (s *MemoryStore) Load(ctx context.Context, name string, out any) error {
	s.mu.Lock()
	data, ok := s.collections[name]
	if !ok {
		data = emptyCollection
		s.collections[name] = data
	}
	s.mu.Unlock()

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("コレクションの解析に失敗しました (%s): %w", name, err)
	}
	return nil
}

// Save は指定コレクションの全レコードを書き込む。
func (s *MemoryStore) Save(ctx context.Context, name string, records any) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("コレクションのシリアライズに失敗しました (%s): %w", name, err)
	}

	s.mu.Lock()
	s.collections[name] = data
	s.mu.Unlock()
	return nil
}
