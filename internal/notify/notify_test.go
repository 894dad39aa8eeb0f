package notify_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	qt "github.com/frankban/quicktest"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"universo/internal/logging"
	"universo/internal/notify"
)

type fakeTelegram struct {
	mu   sync.Mutex
	sent []map[string]string
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Universo","username":"universo_bot"}}`)
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		_ = r.ParseForm()
		f.mu.Lock()
		f.sent = append(f.sent, map[string]string{
			"chat_id":    r.Form.Get("chat_id"),
			"text":       r.Form.Get("text"),
			"parse_mode": r.Form.Get("parse_mode"),
		})
		f.mu.Unlock()
		fmt.Fprint(w, `{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"group"}}}`)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeTelegram) messages() []map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]string(nil), f.sent...)
}

func TestTelegramNotify(t *testing.T) {
	c := qt.New(t)
	fake := &fakeTelegram{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	api, err := tgbotapi.NewBotAPIWithClient("token", srv.URL+"/bot%s/%s", srv.Client())
	c.Assert(err, qt.IsNil)
	tg := notify.NewTelegramWithAPI(api, 42)
	c.Assert(tg.Account(), qt.Equals, "universo_bot")

	c.Assert(tg.Notify(context.Background(), "<b>Resumen</b>"), qt.IsNil)
	c.Assert(fake.messages(), qt.DeepEquals, []map[string]string{
		{"chat_id": "42", "text": "<b>Resumen</b>", "parse_mode": "HTML"},
	})
}

func TestTelegramNotifyCancelled(t *testing.T) {
	c := qt.New(t)
	fake := &fakeTelegram{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	api, err := tgbotapi.NewBotAPIWithClient("token", srv.URL+"/bot%s/%s", srv.Client())
	c.Assert(err, qt.IsNil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Assert(notify.NewTelegramWithAPI(api, 42).Notify(ctx, "x"), qt.ErrorIs, context.Canceled)
	c.Assert(fake.messages(), qt.HasLen, 0)
}

type notifyFunc func(context.Context, string) error

func (f notifyFunc) Notify(ctx context.Context, text string) error { return f(ctx, text) }

func TestMultiJoinsErrors(t *testing.T) {
	c := qt.New(t)
	var buf bytes.Buffer
	boom := errors.New("boom")
	var got []string

	m := notify.Multi{
		notify.NewLog(logging.New(&buf, "info", "text")),
		notifyFunc(func(_ context.Context, text string) error { got = append(got, text); return nil }),
		notifyFunc(func(context.Context, string) error { return boom }),
	}
	err := m.Notify(context.Background(), "resumen")
	c.Assert(err, qt.ErrorIs, boom)
	c.Assert(got, qt.DeepEquals, []string{"resumen"})
	c.Assert(buf.String(), qt.Contains, "report digest")
}
