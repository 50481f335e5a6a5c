// backend/src/charts/charts.go
package charts

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/username/saathi/backend/src/analytics"
	"github.com/username/saathi/backend/src/models"
)

// DefaultTopN is how many products the bar chart ranks by default.
const DefaultTopN = 5

// TopProductsBar renders a PNG bar chart of the top products by revenue.
// Empty or unrenderable data yields a blank placeholder image, never an
// error: charts must render regardless of data quality.
func TopProductsBar(txs []models.Transaction, topN int) []byte {
	if topN <= 0 {
		topN = DefaultTopN
	}
	products := analytics.RevenueByProduct(txs)
	if len(products) > topN {
		products = products[:topN]
	}
	if len(products) == 0 || allZero(products) {
		return placeholderPNG()
	}

	bars := make([]chart.Value, 0, len(products))
	for _, p := range products {
		bars = append(bars, chart.Value{Label: p.Product, Value: p.Revenue})
	}

	graph := chart.BarChart{
		Title:    "Top Products by Revenue",
		Width:    960,
		Height:   640,
		BarWidth: 80,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return placeholderPNG()
	}
	return buf.Bytes()
}

// DailyRevenueLine renders a PNG line chart of revenue per day. Fewer than
// two distinct days cannot form a line and yield the placeholder.
func DailyRevenueLine(txs []models.Transaction) []byte {
	daily := analytics.RevenueByDay(txs)
	if len(daily) < 2 {
		return placeholderPNG()
	}

	xs := make([]time.Time, 0, len(daily))
	ys := make([]float64, 0, len(daily))
	for _, d := range daily {
		day, err := time.Parse(models.DayFormat, d.Day)
		if err != nil {
			continue
		}
		xs = append(xs, day)
		ys = append(ys, d.Revenue)
	}
	if len(xs) < 2 {
		return placeholderPNG()
	}

	graph := chart.Chart{
		Title:  "Revenue by Day",
		Width:  960,
		Height: 560,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{XValues: xs, YValues: ys},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return placeholderPNG()
	}
	return buf.Bytes()
}

func allZero(products []models.ProductRevenue) bool {
	for _, p := range products {
		if p.Revenue != 0 {
			return false
		}
	}
	return true
}

// placeholderPNG is the "no data" stand-in image: a white canvas with a
// centered label.
func placeholderPNG() []byte {
	const width, height = 640, 400
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	const label = "No data"
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}),
		Face: face,
	}
	w := d.MeasureString(label).Ceil()
	d.Dot = fixed.P((width-w)/2, height/2)
	d.DrawString(label)

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
