package notify

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"suratjalan/pkg/numfmt"
	"suratjalan/pkg/slip"
)

// MaxDetailLines caps the transaction list of a summary.
const MaxDetailLines = 5

// DailyLabel is the summary header for one calendar day.
func DailyLabel(day time.Time) string {
	return "LAPORAN HARIAN " + day.Format("02/01/2006")
}

func SummaryMessage(slips []slip.Slip, label string, sentAt time.Time) string {
	sum := slip.Summarize(slips)
	esc := html.EscapeString

	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>%s</b>\n\n", esc(label))
	fmt.Fprintf(&b, "<b>Total Kendaraan:</b> %d\n", sum.Vehicles)
	fmt.Fprintf(&b, "<b>Total Netto:</b> %s kg\n\n", numfmt.Thousands(sum.TotalNet))
	b.WriteString("<b>Detail Transaksi:</b>\n")
	for _, s := range slip.Latest(slips, MaxDetailLines) {
		fmt.Fprintf(&b, "• %s | %s | %s | %s kg\n",
			esc(s.DocumentNumber), esc(s.Plate), esc(s.Driver), numfmt.Thousands(s.NetWeight()))
	}
	if rest := len(slips) - MaxDetailLines; rest > 0 {
		fmt.Fprintf(&b, "\n<i>+ %d transaksi lainnya...</i>", rest)
	}
	fmt.Fprintf(&b, "\n\n<i>Dikirim pada: %s</i>", sentAt.Format("15:04:05"))
	return b.String()
}

func CreatedMessage(s slip.Slip, sentAt time.Time) string {
	esc := html.EscapeString
	var b strings.Builder
	b.WriteString("📝 <b>INPUT DATA BARU</b>\n\n")
	fmt.Fprintf(&b, "<b>Nomor DO:</b> %s\n", esc(s.DocumentNumber))
	fmt.Fprintf(&b, "<b>Tanggal Masuk:</b> %s %s\n", esc(s.EntryDate), esc(s.EntryTime))
	fmt.Fprintf(&b, "<b>Nomor Polisi:</b> %s\n", esc(s.Plate))
	fmt.Fprintf(&b, "<b>Sopir:</b> %s\n", esc(s.Driver))
	fmt.Fprintf(&b, "<b>Barang:</b> %s\n", esc(s.Goods))
	fmt.Fprintf(&b, "<b>Netto:</b> %s kg\n\n", numfmt.Thousands(s.NetWeight()))
	fmt.Fprintf(&b, "<i>Dikirim pada: %s</i>", sentAt.Format("2006-01-02 15:04:05"))
	return b.String()
}

// PlainText strips the Telegram HTML markup, for console previews.
func PlainText(msg string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<pre>" + msg + "</pre>"))
	if err != nil {
		return msg
	}
	return doc.Find("pre").Text()
}
