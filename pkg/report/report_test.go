package report_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"suratjalan/pkg/report"
	"suratjalan/pkg/slip"
)

type fakeSource struct {
	byDay map[string][]slip.Slip
	err   error
	asked []string
}

func (f *fakeSource) RecordedOn(_ context.Context, day time.Time) ([]slip.Slip, error) {
	d := day.Format(slip.DateLayout)
	f.asked = append(f.asked, d)
	return f.byDay[d], f.err
}

type fakeSender struct {
	enabled bool
	ok      bool
	labels  []string
}

func (f *fakeSender) Enabled() bool { return f.enabled }

func (f *fakeSender) SendSummary(_ context.Context, _ []slip.Slip, label string) bool {
	f.labels = append(f.labels, label)
	return f.ok
}

type fakeMailer struct {
	subjects []string
	err      error
}

func (f *fakeMailer) Enabled() bool { return true }

func (f *fakeMailer) Send(subject, _ string) error {
	f.subjects = append(f.subjects, subject)
	return f.err
}

var _ = Describe("Scheduler", func() {
	var (
		loc    = time.FixedZone("WIB", 7*60*60)
		src    *fakeSource
		sender *fakeSender
		ctx    = context.Background()
	)

	BeforeEach(func() {
		src = &fakeSource{byDay: map[string][]slip.Slip{
			"2024-01-15": {
				{Plate: "A", Gross: 10, Tare: 4, Net: 6},
				{Plate: "A", Gross: 10, Tare: 5, Net: 5},
			},
		}}
		sender = &fakeSender{enabled: true, ok: true}
	})

	It("schedules at the configured time of day", func() {
		s := report.New(report.Config{Hour: 17, Minute: 0, Location: loc}, src, sender, nil)
		Expect(s.Spec()).To(Equal("0 17 * * *"))
	})

	It("is disabled without a configured sender", func() {
		sender.enabled = false
		s := report.New(report.Config{Hour: 17, Location: loc}, src, sender, nil)
		Expect(s.Start()).To(MatchError(report.ErrDisabled))
		s.Stop()
	})

	It("starts and stops cleanly", func() {
		s := report.New(report.Config{Hour: 17, Location: loc}, src, sender, nil)
		Expect(s.Start()).To(Succeed())
		s.Stop()
	})

	It("sends the day's summary in the report timezone", func() {
		s := report.New(report.Config{Location: loc}, src, sender, nil)
		// 18:30 UTC on the 14th is already the 15th in WIB
		res, err := s.RunDaily(ctx, time.Date(2024, 1, 14, 18, 30, 0, 0, time.UTC))
		Expect(err).NotTo(HaveOccurred())
		Expect(src.asked).To(Equal([]string{"2024-01-15"}))
		Expect(sender.labels).To(Equal([]string{"LAPORAN HARIAN 15/01/2024"}))
		Expect(res).To(Equal(report.Result{
			Day:     "2024-01-15",
			Summary: slip.Summary{Count: 2, Vehicles: 1, TotalNet: 11},
			Sent:    true,
		}))
	})

	It("sends nothing for an empty day", func() {
		s := report.New(report.Config{Location: loc}, src, sender, nil)
		res, err := s.RunDaily(ctx, time.Date(2024, 1, 20, 12, 0, 0, 0, loc))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Skipped).To(BeTrue())
		Expect(sender.labels).To(BeEmpty())
	})

	It("reports a failed send without erroring", func() {
		sender.ok = false
		s := report.New(report.Config{Location: loc}, src, sender, nil)
		res, err := s.RunDaily(ctx, time.Date(2024, 1, 15, 12, 0, 0, 0, loc))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Sent).To(BeFalse())
	})

	It("also mails the summary when a mailer is configured", func() {
		m := &fakeMailer{}
		s := report.New(report.Config{Location: loc}, src, sender, m)
		res, err := s.RunDaily(ctx, time.Date(2024, 1, 15, 12, 0, 0, 0, loc))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Mailed).To(BeTrue())
		Expect(m.subjects).To(Equal([]string{"LAPORAN HARIAN 15/01/2024"}))

		m.err = errors.New("smtp down")
		res, err = s.RunDaily(ctx, time.Date(2024, 1, 15, 12, 0, 0, 0, loc))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Mailed).To(BeFalse())
		Expect(res.Sent).To(BeTrue())
	})

	It("returns store errors", func() {
		src.err = errors.New("disk gone")
		s := report.New(report.Config{Location: loc}, src, sender, nil)
		_, err := s.RunDaily(ctx, time.Now())
		Expect(err).To(MatchError(ContainSubstring("disk gone")))
	})
})

var _ = Describe("Scheduler.Preview", func() {
	It("builds the message without sending", func() {
		loc := time.FixedZone("WIB", 7*60*60)
		src := &fakeSource{byDay: map[string][]slip.Slip{
			"2024-01-15": {{Plate: "A", DocumentNumber: "d1", Driver: "Budi", Gross: 5000, Tare: 1200, Net: 3800}},
		}}
		sender := &fakeSender{enabled: true, ok: true}
		s := report.New(report.Config{Location: loc}, src, sender, nil)

		res, msg, err := s.Preview(context.Background(), time.Date(2024, 1, 15, 9, 0, 0, 0, loc))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Summary.Count).To(Equal(1))
		Expect(res.Skipped).To(BeFalse())
		Expect(msg).To(ContainSubstring("• d1 | A | Budi | 3.800 kg"))
		Expect(sender.labels).To(BeEmpty())
	})
})
