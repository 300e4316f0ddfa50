package tipranks

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dates on the chart-page endpoint come back without a zone designator.
const chartPageDateLayout = "2006-01-02T15:04:05"

// Dividend is one dividend payout of a symbol.
type Dividend struct {
	Yield              decimal.Decimal
	Amount             decimal.Decimal
	SectorAverageYield decimal.Decimal
	PaymentDate        time.Time
	ExDate             time.Time
	ReceiveDate        time.Time
	GrowthSince        string
}

// YearHighLow carries the high and low for a single year, at most 7 years back.
type YearHighLow struct {
	Year int     `json:"year"`
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

// SimilarStock is a stock TipRanks considers comparable to the requested one.
type SimilarStock struct {
	Ticker      string
	CompanyName string
}

// BasicInfo combines company data with realtime quote figures. It is the
// joined result of two independent endpoint fetches.
type BasicInfo struct {
	CompanyName   string
	Market        string
	Description   string
	MarketCap     int64
	HasDividends  bool
	SimilarStocks []SimilarStock
	YoYChange     float64
	YearLow       float64
	YearHigh      float64
	PERatio       float64
	EPS           float64
}

type chartPageData struct {
	Dividends []struct {
		Yield           decimal.Decimal `json:"yield"`
		Amount          decimal.Decimal `json:"amount"`
		SectorYield     decimal.Decimal `json:"sectorYield"`
		PayDate         string          `json:"payDate"`
		ExDate          string          `json:"exDate"`
		RecDate         string          `json:"recDate"`
		GrowthSinceDate string          `json:"growthSinceDate"`
	} `json:"dividends"`
	HistoricalHighLow []YearHighLow `json:"historicalHighLow"`
}

type stockData struct {
	CompanyName  string `json:"companyName"`
	Market       string `json:"market"`
	Description  string `json:"description"`
	MarketCap    int64  `json:"marketCap"`
	HasDividends bool   `json:"hasDividends"`
	SimilarStocks []struct {
		Ticker string `json:"ticker"`
		Name   string `json:"name"`
	} `json:"similarStocks"`
	Momentum struct {
		Momentum float64 `json:"momentum"`
	} `json:"momentum"`
}

type realTimeQuote struct {
	YearLow  float64 `json:"yLow"`
	YearHigh float64 `json:"yHigh"`
	PERatio  float64 `json:"pe"`
	EPS      float64 `json:"eps"`
}
