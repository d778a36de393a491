package telegram

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"git-commander/internal/model"
	pkgLog "git-commander/pkg/log"
)

const (
	defaultQueueLen = 256
	sendTimeout     = 30 * time.Second
)

// Sender delivers one message to one chat. *pkgTelegram.Bot implements it.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, parseMode string) error
}

// Config configures the announcer.
type Config struct {
	ChatIDs  []int64
	LineRate float64 // messages per second across all chats, <= 0 means unpaced
	QueueLen int
}

// Announcer posts one line per interesting event to every configured chat.
// Notify only formats and enqueues; Run does the sending.
type Announcer struct {
	l       pkgLog.Logger
	sender  Sender
	chatIDs []int64
	limiter *rate.Limiter
	tellers map[string]teller

	enqueueMu sync.Mutex
	queue     chan message
}

type message struct {
	chatID int64
	text   string
}

// New creates an Announcer.
func New(l pkgLog.Logger, sender Sender, cfg Config) (*Announcer, error) {
	if sender == nil {
		return nil, ErrNilSender
	}
	if len(cfg.ChatIDs) == 0 {
		return nil, ErrNoChats
	}

	queueLen := cfg.QueueLen
	if queueLen <= 0 {
		queueLen = defaultQueueLen
	}
	limit := rate.Inf
	if cfg.LineRate > 0 {
		limit = rate.Limit(cfg.LineRate)
	}

	return &Announcer{
		l:       l,
		sender:  sender,
		chatIDs: append([]int64(nil), cfg.ChatIDs...),
		limiter: rate.NewLimiter(limit, 1),
		queue:   make(chan message, queueLen),
		tellers: map[string]teller{
			"PushEvent":    tellPush,
			"ReleaseEvent": tellRelease,
		},
	}, nil
}

// Name labels the announcer in dispatch logs and metrics.
func (a *Announcer) Name() string {
	return "telegram"
}

// Notify formats event and queues it for every chat. Event types without a
// teller are ignored. The line is queued for all chats or, when the queue
// lacks room for all of them, for none.
func (a *Announcer) Notify(ctx context.Context, event model.Event) error {
	tell, ok := a.tellers[event.Type]
	if !ok {
		return nil
	}

	text, err := tell(event)
	if err != nil {
		return err
	}

	a.l.Infof(ctx, "Got %s for %s", event.Type, event.Repo.Name)

	a.enqueueMu.Lock()
	defer a.enqueueMu.Unlock()
	// Only Run and Drain take from the queue, so free room can only grow
	// while the lock is held and the sends below never block.
	if cap(a.queue)-len(a.queue) < len(a.chatIDs) {
		return ErrQueueFull
	}
	for _, chatID := range a.chatIDs {
		a.queue <- message{chatID: chatID, text: text}
	}
	return nil
}

// Run sends queued messages until ctx is done, paced by the line rate.
// Send failures are logged and the message is dropped.
func (a *Announcer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-a.queue:
			if err := a.send(ctx, msg); err != nil {
				return
			}
		}
	}
}

// Drain sends whatever is queued and returns once the queue is empty or ctx
// is done. It is meant for single cycle runs where Run is never started.
func (a *Announcer) Drain(ctx context.Context) {
	for {
		select {
		case msg := <-a.queue:
			if err := a.send(ctx, msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

// send returns an error only when pacing was interrupted by ctx.
func (a *Announcer) send(ctx context.Context, msg message) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return err
	}
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := a.sender.SendMessage(sendCtx, msg.chatID, msg.text, parseMode); err != nil {
		a.l.Warnf(ctx, "Telegram announcement to chat %d failed: %v", msg.chatID, err)
	}
	return nil
}
