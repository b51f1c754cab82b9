package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// emptyCollection は未初期化コレクションの初期内容。
var emptyCollection = []byte("[]\n")

// FileStore はコレクションごとに1つのJSONファイルで永続化するStore実装。
// <dir>/<name>.json にレコード配列全体をシリアライズする。
// 書き込みは一時ファイルへの書き出しとrenameで行い、
// 中断時に壊れたファイルが残らないようにする。
type FileStore struct {
	dir string
}

// NewFileStore はFileStoreを生成する。
// dirが存在しない場合は作成する。
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("データディレクトリの作成に失敗しました (%s): %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Load は<dir>/<name>.jsonの全レコードをoutに読み込む。
// ファイルが存在しない場合は空配列で初期化してから空を返す。
func (s *FileStore) Load(ctx context.Context, name string, out any) error {
	path := s.path(name)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := s.writeFile(path, emptyCollection); err != nil {
			return fmt.Errorf("コレクションの初期化に失敗しました (%s): %w", name, err)
		}
		data = emptyCollection
	} else if err != nil {
		return fmt.Errorf("コレクションの読み込みに失敗しました (%s): %w", name, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("コレクションの解析に失敗しました (%s): %w", name, err)
	}
	return nil
}

// Save は<dir>/<name>.jsonにレコード配列全体を書き込む。
func (s *FileStore) Save(ctx context.Context, name string, records any) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("コレクションのシリアライズに失敗しました (%s): %w", name, err)
	}

	if err := s.writeFile(s.path(name), append(data, '\n')); err != nil {
		return fmt.Errorf("コレクションの書き込みに失敗しました (%s): %w", name, err)
	}
	return nil
}

// path はコレクション名からファイルパスを組み立てる。
func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// writeFile は一時ファイル経由でアトミックにファイルを置き換える。
func (s *FileStore) writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
