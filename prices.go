package cashflow

import (
	"fmt"
	"log"
	"math"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
)

// PriceSource resolves a ticker symbol to its current price.
type PriceSource interface {
	Price(symbol string) (float64, error)
}

// StaticPrices is a fixed price table, for offline use and tests.
type StaticPrices map[string]float64

func (p StaticPrices) Price(symbol string) (float64, error) {
	v, ok := p[symbol]
	if !ok {
		return 0, fmt.Errorf("no price for %q", symbol)
	}
	return v, nil
}

// Prices memoizes a [PriceSource] for the span of one computation. A failed
// lookup is logged and yields 0 so a dead ticker never fails the whole
// forecast; failures are not memoized, only successes.
type Prices struct {
	source PriceSource
	memo   map[string]float64
}

func NewPrices(source PriceSource) *Prices {
	return &Prices{source: source, memo: make(map[string]float64)}
}

func (p *Prices) Price(symbol string) float64 {
	if v, ok := p.memo[symbol]; ok {
		return v
	}
	v, err := p.source.Price(symbol)
	if err != nil {
		log.Printf("no price for %q, using 0: %v", symbol, err)
		return 0
	}
	p.memo[symbol] = v
	return v
}

/*
	{
	    "chart": {
	        "result": [
	            {
	                "meta": {
	                    "currency": "USD",
	                    "symbol": "VTI",
	                    "regularMarketPrice": 302.77,
	                    ...
*/

// YahooSource fetches the latest market price from the Yahoo Finance chart
// endpoint. Responses are cached on disk with a daily expiry.
type YahooSource struct{}

func (YahooSource) Price(symbol string) (float64, error) {
	addr := "https://query2.finance.yahoo.com/v8/finance/chart/" + url.PathEscape(symbol) + "?interval=1d&range=1d"
	var jobj any
	if err := getJSON(quoteClient(), addr, &jobj); err != nil {
		return 0, fmt.Errorf("error retrieving %q: %w", symbol, err)
	}
	path := "$.chart.result[0].meta.regularMarketPrice"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %q %w", symbol, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("error parsing %q: %q %s %v", symbol, path, "not a float", jval)
	}
	return math.Round(val*100) / 100, nil
}
