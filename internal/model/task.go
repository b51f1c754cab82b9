package model

// TaskStatusDefault はステータス未指定時に採用する既定値。
const TaskStatusDefault = "pending"

// Task はユーザーが管理するタスクを表す。
// IDは作成時刻のUnixミリ秒から採番する（高頻度の同時作成では重複しうる）。
// Emailは所有者ユーザーへの参照であり、全タスク操作はこのフィールドで
// 認証済みユーザーに絞り込まれる。
type Task struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	Tags     string `json:"tags"`
	Status   string `json:"status"`
	Date     string `json:"date"`
}
