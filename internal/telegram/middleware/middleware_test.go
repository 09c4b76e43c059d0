package middleware

import (
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap/zaptest"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []tgbotapi.MessageConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func textUpdate(userID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: userID},
			Chat: &tgbotapi.Chat{ID: userID * 10},
			Text: text,
		},
	}
}

func TestRateLimiter_BurstThenWarnOnce(t *testing.T) {
	sender := &fakeSender{}
	rl := NewRateLimiterMiddleware(1, 2, zaptest.NewLogger(t), sender)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	handled := 0
	next := func(tgbotapi.Update) { handled++ }

	for range 5 {
		rl.Handle(textUpdate(1, "chair"), next)
	}
	if handled != 2 {
		t.Fatalf("handled %d updates, want burst of 2", handled)
	}
	if len(sender.sent) != 1 || sender.sent[0].ChatID != 10 {
		t.Fatalf("warnings = %+v", sender.sent)
	}

	// Another user has their own bucket.
	rl.Handle(textUpdate(2, "chair"), next)
	if handled != 3 {
		t.Fatal("second user was limited by the first user's bucket")
	}

	// One token per minute refills.
	now = now.Add(time.Minute)
	rl.Handle(textUpdate(1, "chair"), next)
	if handled != 4 {
		t.Fatal("bucket did not refill")
	}
}

func TestRateLimiter_UnknownUpdatePasses(t *testing.T) {
	rl := NewRateLimiterMiddleware(1, 1, zaptest.NewLogger(t), &fakeSender{})
	handled := false
	rl.Handle(tgbotapi.Update{}, func(tgbotapi.Update) { handled = true })
	if !handled {
		t.Fatal("update without a user was dropped")
	}
}

func TestRecovery_ReportsPanicToChat(t *testing.T) {
	sender := &fakeSender{}
	m := NewRecoveryMiddleware(zaptest.NewLogger(t), sender)

	m.Handle(textUpdate(3, "x"), func(tgbotapi.Update) { panic("boom") })

	if len(sender.sent) != 1 || sender.sent[0].ChatID != 30 {
		t.Fatalf("sent = %+v", sender.sent)
	}
}

func TestLogging_CallsNext(t *testing.T) {
	m := NewLoggingMiddleware(zaptest.NewLogger(t))
	called := false
	m.Handle(textUpdate(1, "x"), func(tgbotapi.Update) { called = true })
	if !called {
		t.Fatal("next not called")
	}
}

type tagMiddleware struct {
	tag   string
	trace *[]string
}

func (m tagMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	*m.trace = append(*m.trace, m.tag)
	next(update)
}

func TestChain_Order(t *testing.T) {
	var trace []string
	h := Chain(func(tgbotapi.Update) {
		trace = append(trace, "handler")
	}, tagMiddleware{"ratelimit", &trace}, tagMiddleware{"logging", &trace}, tagMiddleware{"recovery", &trace})

	h(textUpdate(1, "hi"))

	want := []string{"ratelimit", "logging", "recovery", "handler"}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v", trace)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("trace = %v, want %v", trace, want)
		}
	}
}

func TestChain_RecoveryStopsPanic(t *testing.T) {
	bot := &fakeSender{}
	h := Chain(func(tgbotapi.Update) {
		panic("boom")
	}, NewRecoveryMiddleware(zaptest.NewLogger(t), bot))

	h(textUpdate(7, "hi"))

	if len(bot.sent) != 1 {
		t.Fatalf("sent = %d messages", len(bot.sent))
	}
}
