package telegram

import "errors"

var (
	ErrNilSender = errors.New("telegram sender is required")
	ErrNoChats   = errors.New("no telegram chats configured")
	ErrQueueFull = errors.New("announcement queue is full")
)
