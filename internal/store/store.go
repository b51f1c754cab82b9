// Package store は名前付きコレクション単位の永続化抽象を提供する。
// コレクションは常にレコード配列全体として読み書きし、部分更新は行わない。
package store

import "context"

// Store はコレクション永続化のインターフェース。
// ファイル実装・インメモリ実装を差し替え可能にするため、
// リポジトリ層はこのインターフェースにのみ依存する。
type Store interface {
	// Load は指定コレクションの全レコードをoutに読み込む。
	// outにはスライスへのポインタを渡す。
	// コレクションが存在しない場合は空配列として初期化・永続化し、
	// outを空にして返す。
	Load(ctx context.Context, name string, out any) error

	// Save は指定コレクションの全レコードを書き込む。
	// 既存内容は常に全置換される。
	Save(ctx context.Context, name string, records any) error
}
