package core

import "time"

// Document 表示一条可检索的文档或客户活动记录（只读输入）。
// 支持工单、反馈、合同等文档，以及登录、浏览、购买等活动事件；
// 二者结构一致，通过 Type 区分，检索时共享同一套相关性打分。
type Document struct {
	ID         string
	CustomerID string
	Type       string // feedback / support_ticket / contract / activity ...
	Category   string
	Title      string
	Body       string
	Tier       string // 所属客户的层级（冗余字段，用于检索过滤）
	CreatedAt  time.Time
}
