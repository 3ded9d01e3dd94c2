// Package feedstream koleksiyon görüntülerini Server-Sent Events olarak istemciye akıtır.
package feedstream

import (
	"bufio"
	"fmt"
	"time"

	"dugun.site/configs/configslog"
	"dugun.site/pkg/realtime"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// KeepAlive bağlantıyı açık tutan yorum satırının aralığı.
var KeepAlive = 25 * time.Second

// SubscribeFunc bir dinleyiciyi akışa bağlar ve aboneliği bitiren fonksiyonu döndürür.
type SubscribeFunc func(fn realtime.Listener) (func(), error)

// Stream her görüntüyü "snapshot" olayı olarak yazar. Yavaş istemci ara
// görüntüleri kaçırır, en sonuncusunu alır. İstemci koptuğunda abonelik kapanır.
func Stream(c *fiber.Ctx, name string, subscribe SubscribeFunc) error {
	events := make(chan []byte, 1)
	unsub, err := subscribe(func(s realtime.Snapshot) {
		snapshot := s.Data
		select {
		case events <- snapshot:
			return
		default:
		}
		select {
		case <-events:
		default:
		}
		select {
		case events <- snapshot:
		default:
		}
	})
	if err != nil {
		configslog.Log.Error("Akışa abone olunamadı", zap.String("feed", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Akış açılamadı"})
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unsub()
		ticker := time.NewTicker(KeepAlive)
		defer ticker.Stop()
		for {
			select {
			case snapshot := <-events:
				fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", snapshot)
			case <-ticker.C:
				_, _ = w.WriteString(": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				configslog.Log.Debug("Akış istemcisi ayrıldı", zap.String("feed", name))
				return
			}
		}
	}))
	return nil
}
