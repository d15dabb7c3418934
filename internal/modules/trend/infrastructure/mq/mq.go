package mq

import (
	"context"
	"time"
)

// Message 遥测与动作事件只用到 key/value，Timestamp 为 broker 记录时间
type Message struct {
	Topic     string
	Key       []byte
	Value     []byte
	Timestamp time.Time
}

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Handler 返回 nil 时提交 offset；返回错误则不提交，等待重投
type Handler interface {
	Handle(ctx context.Context, msg Message) error
}

type Consumer interface {
	Run(ctx context.Context, handler Handler) error
	Close() error
}
