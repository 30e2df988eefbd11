// Package report provides the morning report briefing: the upstream report
// model, its cached repository, and the page and API handlers. The report's
// summary arrives as HTML and is sanitized before anything renders it.
package report

// Report is the upstream morning report for one publishing date.
type Report struct {
	// Date is the report's publishing date, YYYY-MM-DD in the publisher
	// timezone.
	Date string `json:"date"`

	// Headline is the report's plain-text title.
	Headline string `json:"headline"`

	// Summary is an HTML fragment from the provider. The service sanitizes
	// it at ingest; by the time it reaches a view it is safe to embed.
	Summary string `json:"summary"`

	// Markets lists short plain-text notes per market (futures, rates, fx).
	Markets []MarketNote `json:"markets"`
}

// MarketNote is one market snapshot line in the report.
type MarketNote struct {
	Market string `json:"market"`
	Note   string `json:"note"`
}
