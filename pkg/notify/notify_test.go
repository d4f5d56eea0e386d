package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"suratjalan/pkg/notify"
	"suratjalan/pkg/slip"
)

type telegramStub struct {
	mu       sync.Mutex
	status   int
	paths    []string
	payloads []map[string]string
}

func (t *telegramStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]string
	_ = json.NewDecoder(r.Body).Decode(&body)
	t.mu.Lock()
	t.paths = append(t.paths, r.URL.Path)
	t.payloads = append(t.payloads, body)
	t.mu.Unlock()
	w.WriteHeader(t.status)
	fmt.Fprint(w, `{"ok":true}`)
}

func slips(n int) []slip.Slip {
	out := make([]slip.Slip, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, slip.Slip{
			ID:             uint(i),
			DocumentNumber: fmt.Sprintf("15012024-08%02d", i),
			Plate:          fmt.Sprintf("B %d", i),
			Driver:         "Budi",
			Gross:          5000, Tare: 1200, Net: 3800,
			RecordedAt: fmt.Sprintf("2024-01-15 08:%02d:00", i),
		})
	}
	return out
}

var _ = Describe("SummaryMessage", func() {
	sentAt := time.Date(2024, 1, 15, 17, 0, 3, 0, time.UTC)

	It("lists a single record in full", func() {
		msg := notify.SummaryMessage(slips(1), notify.DailyLabel(sentAt), sentAt)
		Expect(msg).To(HavePrefix("📊 <b>LAPORAN HARIAN 15/01/2024</b>\n\n"))
		Expect(msg).To(ContainSubstring("<b>Total Kendaraan:</b> 1\n"))
		Expect(msg).To(ContainSubstring("<b>Total Netto:</b> 3.800 kg\n"))
		Expect(msg).To(ContainSubstring("• 15012024-0801 | B 1 | Budi | 3.800 kg\n"))
		Expect(msg).NotTo(ContainSubstring("transaksi lainnya"))
		Expect(msg).To(HaveSuffix("<i>Dikirim pada: 17:00:03</i>"))
	})

	It("caps detail lines at five, newest first", func() {
		msg := notify.SummaryMessage(slips(7), "X", sentAt)
		Expect(strings.Count(msg, "• ")).To(Equal(5))
		Expect(msg).To(ContainSubstring("+ 2 transaksi lainnya..."))
		Expect(msg).To(ContainSubstring("<b>Total Netto:</b> 26.600 kg"))
		Expect(strings.Index(msg, "B 7 |")).To(BeNumerically("<", strings.Index(msg, "B 3 |")))
		Expect(msg).NotTo(ContainSubstring("B 2 |"))
	})

	It("escapes user text", func() {
		in := slips(1)
		in[0].Driver = "<Budi & Co>"
		msg := notify.SummaryMessage(in, "X", sentAt)
		Expect(msg).To(ContainSubstring("&lt;Budi &amp; Co&gt;"))
	})
})

var _ = Describe("PlainText", func() {
	It("drops markup and decodes entities", func() {
		Expect(notify.PlainText("<b>Sopir:</b> A &amp; B\n<i>x</i>")).To(Equal("Sopir: A & B\nx"))
	})
})

var _ = Describe("Dispatcher", func() {
	var (
		stub *telegramStub
		srv  *httptest.Server
		ctx  = context.Background()
	)

	BeforeEach(func() {
		stub = &telegramStub{status: http.StatusOK}
		srv = httptest.NewServer(stub)
		DeferCleanup(srv.Close)
	})

	dispatcher := func() *notify.Dispatcher {
		return notify.New(notify.Config{Token: "T0K", ChatID: "42", BaseURL: srv.URL, Timeout: time.Second}, time.UTC)
	}

	It("posts an HTML message to the chat", func() {
		Expect(dispatcher().SendSummary(ctx, slips(2), "LAPORAN")).To(BeTrue())
		Expect(stub.paths).To(Equal([]string{"/botT0K/sendMessage"}))
		Expect(stub.payloads[0]).To(HaveKeyWithValue("chat_id", "42"))
		Expect(stub.payloads[0]).To(HaveKeyWithValue("parse_mode", "HTML"))
		Expect(stub.payloads[0]["text"]).To(ContainSubstring("LAPORAN"))
	})

	It("returns false on a non-200 response", func() {
		stub.status = http.StatusInternalServerError
		Expect(dispatcher().SendSummary(ctx, slips(1), "X")).To(BeFalse())

		err := dispatcher().Deliver(ctx, "x")
		var te *notify.TransportError
		Expect(errors.As(err, &te)).To(BeTrue())
		Expect(te.Status).To(Equal(http.StatusInternalServerError))
	})

	It("returns false when the endpoint is unreachable", func() {
		d := dispatcher()
		srv.Close()
		Expect(d.SendSummary(ctx, slips(1), "X")).To(BeFalse())
		err := d.Deliver(ctx, "x")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).NotTo(ContainSubstring("T0K"))
	})

	It("does nothing when unconfigured", func() {
		d := notify.New(notify.Config{BaseURL: srv.URL}, nil)
		Expect(d.Enabled()).To(BeFalse())
		Expect(d.SendSummary(ctx, slips(1), "X")).To(BeFalse())
		Expect(d.AnnounceCreated(ctx, slips(1)[0])).To(BeFalse())
		Expect(stub.paths).To(BeEmpty())
	})

	It("announces new records", func() {
		Expect(dispatcher().AnnounceCreated(ctx, slips(1)[0])).To(BeTrue())
		Expect(stub.payloads[0]["text"]).To(HavePrefix("📝 <b>INPUT DATA BARU</b>"))
		Expect(stub.payloads[0]["text"]).To(ContainSubstring("<b>Netto:</b> 3.800 kg"))
	})
})
