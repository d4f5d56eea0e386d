package slip_test

import (
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"suratjalan/pkg/slip"
)

func validInput() slip.Input {
	return slip.Input{
		EntryDate: "2024-01-15", EntryTime: "08:30",
		ExitDate: "2024-01-15", ExitTime: "09:10",
		Plate: "B 1234 CD", Driver: "Budi", Goods: "Pasir",
		Gross: 5000, Tare: 1200,
	}
}

var _ = Describe("ComputeNet", func() {
	It("subtracts tare from gross", func() {
		Expect(slip.ComputeNet(5000, 1200)).To(Equal(3800.0))
	})
})

var _ = Describe("Slip.NetWeight", func() {
	It("keeps a consistent stored net", func() {
		Expect(slip.Slip{Gross: 10, Tare: 4, Net: 6}.NetWeight()).To(Equal(6.0))
	})
	It("recomputes a stale stored net", func() {
		Expect(slip.Slip{Gross: 10, Tare: 4, Net: 99}.NetWeight()).To(Equal(6.0))
	})
})

var _ = Describe("DocumentNumber", func() {
	It("formats as ddmmYYYY-HHMM", func() {
		Expect(slip.DocumentNumber("2024-01-15", "08:30")).To(Equal("15012024-0830"))
	})
	It("ignores seconds", func() {
		Expect(slip.DocumentNumber("2024-12-01", "23:05:59")).To(Equal("01122024-2305"))
	})
	It("zero-pads a one-digit hour", func() {
		Expect(slip.DocumentNumber("2024-01-15", "8:30")).To(Equal("15012024-0830"))
	})
	It("rejects bad dates", func() {
		_, err := slip.DocumentNumber("15/01/2024", "08:30")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Input", func() {
	now := time.Date(2024, 2, 3, 14, 7, 0, 0, time.UTC)

	Describe("Normalize", func() {
		It("fills empty dates and times from now and trims text", func() {
			in := slip.Input{Plate: "  B 1 X ", EntryTime: "10:11:12"}.Normalize(now)
			Expect(in.Plate).To(Equal("B 1 X"))
			Expect(in.EntryDate).To(Equal("2024-02-03"))
			Expect(in.ExitDate).To(Equal("2024-02-03"))
			Expect(in.EntryTime).To(Equal("10:11"))
			Expect(in.ExitTime).To(Equal("14:07"))
		})

		It("zero-pads one-digit hours", func() {
			in := slip.Input{EntryTime: "8:30", ExitTime: " 9:05 "}.Normalize(now)
			Expect(in.EntryTime).To(Equal("08:30"))
			Expect(in.ExitTime).To(Equal("09:05"))
		})

		It("leaves unparsable times for Validate", func() {
			in := validInput()
			in.EntryTime = "jam delapan"
			in = in.Normalize(now)
			Expect(in.EntryTime).To(Equal("jam delapan"))
			Expect(in.Validate().Error()).To(ContainSubstring("entry_time must match 15:04"))
		})
	})

	Describe("Validate", func() {
		It("accepts a complete input", func() {
			Expect(validInput().Validate()).To(Succeed())
		})

		It("lists every violation", func() {
			in := slip.Input{EntryDate: "2024-01-15", EntryTime: "08:30", ExitDate: "2024-01-15", ExitTime: "09:00", Gross: 100, Tare: 100}
			err := in.Validate()
			var ve *slip.ValidationError
			Expect(errors.As(err, &ve)).To(BeTrue())
			Expect(ve.Violations).To(ConsistOf(
				"plate is required",
				"driver is required",
				"goods is required",
				"gross must be greater than tare",
			))
		})

		It("rejects negative weights", func() {
			in := validInput()
			in.Gross, in.Tare = -1, -5
			Expect(slip.IsValidation(in.Validate())).To(BeTrue())
			Expect(in.Validate().Error()).To(ContainSubstring("gross must be greater than or equal to 0"))
		})

		It("rejects NaN weights", func() {
			in := validInput()
			in.Gross = math.NaN()
			Expect(in.Validate().Error()).To(ContainSubstring("finite"))
		})

		It("rejects malformed times", func() {
			in := validInput()
			in.ExitTime = "9h"
			Expect(in.Validate().Error()).To(ContainSubstring("exit_time must match 15:04"))
		})
	})

	Describe("Apply", func() {
		It("copies fields and derives the net weight", func() {
			var s slip.Slip
			validInput().Apply(&s)
			Expect(s.Plate).To(Equal("B 1234 CD"))
			Expect(s.Net).To(Equal(3800.0))
		})
	})
})

var _ = Describe("Summarize", func() {
	It("counts distinct plates and sums net weights", func() {
		sum := slip.Summarize([]slip.Slip{
			{Plate: "A", Gross: 10, Tare: 2, Net: 8},
			{Plate: "A", Gross: 5, Tare: 1, Net: 4},
			{Plate: "B", Gross: 7, Tare: 0, Net: 7},
		})
		Expect(sum).To(Equal(slip.Summary{Count: 3, Vehicles: 2, TotalNet: 19}))
	})

	It("is zero for no slips", func() {
		Expect(slip.Summarize(nil)).To(Equal(slip.Summary{}))
	})
})

var _ = Describe("Latest", func() {
	It("returns the most recent n without touching the input", func() {
		in := []slip.Slip{
			{ID: 1, RecordedAt: "2024-01-01 08:00:00"},
			{ID: 2, RecordedAt: "2024-01-01 10:00:00"},
			{ID: 3, RecordedAt: "2024-01-01 09:00:00"},
			{ID: 4, RecordedAt: "2024-01-01 10:00:00"},
		}
		out := slip.Latest(in, 3)
		ids := []uint{}
		for _, s := range out {
			ids = append(ids, s.ID)
		}
		Expect(ids).To(Equal([]uint{4, 2, 3}))
		Expect(in[0].ID).To(Equal(uint(1)))
	})
})
