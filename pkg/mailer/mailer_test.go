package mailer_test

import (
	"bytes"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/gomail.v2"

	"suratjalan/pkg/mailer"
)

var _ = Describe("Mailer", func() {
	It("is disabled without recipients", func() {
		m := mailer.New(mailer.Config{Host: "smtp.example.com", From: "a@example.com"})
		Expect(m.Enabled()).To(BeFalse())
		Expect(m.Send("s", "b")).To(MatchError(ContainSubstring("not configured")))
	})

	It("hands an HTML message to the sender", func() {
		var (
			from string
			to   []string
			raw  bytes.Buffer
		)
		capture := gomail.SendFunc(func(f string, t []string, msg io.WriterTo) error {
			from, to = f, t
			_, err := msg.WriteTo(&raw)
			return err
		})
		m := mailer.New(mailer.Config{User: "ops@example.com", To: []string{"a@example.com", "b@example.com"}}).WithSender(capture)
		Expect(m.Enabled()).To(BeTrue())

		Expect(m.Send("Laporan", "<b>Total</b>")).To(Succeed())
		Expect(from).To(Equal("ops@example.com"))
		Expect(to).To(ConsistOf("a@example.com", "b@example.com"))
		Expect(raw.String()).To(ContainSubstring("Subject: Laporan"))
		Expect(raw.String()).To(ContainSubstring("text/html"))
	})
})
