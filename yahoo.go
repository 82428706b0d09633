package folio

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

const quoteURLEnv = "QUOTE_API_URL"

var quoteURLFlag = flag.String("quote-url", "", "Base URL of the Yahoo-compatible quote API.\n If missing it will read the environment variable \""+quoteURLEnv+"\", then default to https://query1.finance.yahoo.com")

func quoteBaseURL() string {
	if *quoteURLFlag == "" {
		*quoteURLFlag = os.Getenv(quoteURLEnv)
	}
	if *quoteURLFlag == "" {
		*quoteURLFlag = "https://query1.finance.yahoo.com"
	}
	return *quoteURLFlag
}

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// get from disk
	// diskcache implements a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", time.Now().Format("2006-01-02"), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v\n", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	f.Close()
	return err
}

// daily returns a client with a cache all with daily expire
func daily() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
// It reports notFound for a 404 so callers can distinguish an unknown symbol from a transport failure.
func jwget(ctx context.Context, client *http.Client, addr string, data interface{}) (notFound bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return false, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return true, fmt.Errorf("not found: %v/%v", resp.Request.URL.Host, resp.Request.URL.Path)
	}
	if resp.StatusCode != 200 {
		return false, fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, resp.Body); err != nil {
		return false, err
	}
	return false, json.Unmarshal(buf.Bytes(), data)
}

// jpathFloat extracts a float64 at a jsonpath, unwrapping single-element lists.
func jpathFloat(jobj any, path string) (float64, bool) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, false
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return 0, false
		}
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	return val, ok
}

// jpathString extracts a string at a jsonpath.
func jpathString(jobj any, path string) (string, bool) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", false
	}
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return "", false
		}
		jval = jlist[0]
	}
	val, ok := jval.(string)
	return val, ok
}

// yahooProvider fetches quotes and metadata from the Yahoo finance API.
type yahooProvider struct {
	client *http.Client
}

// NewYahooProvider returns a Provider backed by the Yahoo finance API, with
// responses cached on disk for the day.
func NewYahooProvider() Provider {
	return &yahooProvider{client: daily()}
}

// quoteSummary fetches the quoteSummary document for a symbol.
func (y *yahooProvider) quoteSummary(ctx context.Context, symbol string) (jobj any, ok bool, err error) {
	addr := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=price,summaryProfile,financialData",
		quoteBaseURL(), url.PathEscape(symbol))
	notFound, err := jwget(ctx, y.client, addr, &jobj)
	if notFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	// an error payload with an empty result set also means "unknown symbol".
	if _, found := jpathString(jobj, "$.quoteSummary.result[0].price.symbol"); !found {
		return nil, false, nil
	}
	return jobj, true, nil
}

// GetPrice resolves a current unit price for the symbol, trying in order:
// currentPrice, regularMarketPrice, the latest daily close (good for mutual
// funds), then previousClose. It returns ok=false when none of them yields a
// usable number.
func (y *yahooProvider) GetPrice(ctx context.Context, symbol string) (Money, bool, error) {
	jobj, ok, err := y.quoteSummary(ctx, symbol)
	if err != nil {
		return Money{}, false, err
	}
	if !ok {
		return Money{}, false, nil
	}

	if v, ok := jpathFloat(jobj, "$.quoteSummary.result[0].financialData.currentPrice.raw"); ok && v > 0 {
		return USD(v), true, nil
	}
	if v, ok := jpathFloat(jobj, "$.quoteSummary.result[0].price.regularMarketPrice.raw"); ok && v > 0 {
		return USD(v), true, nil
	}
	if v, ok := y.latestClose(ctx, symbol); ok && v > 0 {
		return USD(v), true, nil
	}
	if v, ok := jpathFloat(jobj, "$.quoteSummary.result[0].price.regularMarketPreviousClose.raw"); ok && v > 0 {
		return USD(v), true, nil
	}
	return Money{}, false, nil
}

// latestClose reads the last close from the one-day chart endpoint.
func (y *yahooProvider) latestClose(ctx context.Context, symbol string) (float64, bool) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d",
		quoteBaseURL(), url.PathEscape(symbol))
	var jobj any
	if _, err := jwget(ctx, y.client, addr, &jobj); err != nil {
		log.Printf("chart lookup failed for %q: %v", symbol, err)
		return 0, false
	}
	return jpathFloat(jobj, "$.chart.result[0].indicators.quote[0].close[-1:]")
}

// GetMetadata returns the quote type, short name and sector for the symbol.
func (y *yahooProvider) GetMetadata(ctx context.Context, symbol string) (Metadata, bool, error) {
	jobj, ok, err := y.quoteSummary(ctx, symbol)
	if err != nil {
		return Metadata{}, false, err
	}
	if !ok {
		return Metadata{}, false, nil
	}

	var meta Metadata
	meta.QuoteType, _ = jpathString(jobj, "$.quoteSummary.result[0].price.quoteType")
	meta.ShortName, _ = jpathString(jobj, "$.quoteSummary.result[0].price.shortName")
	meta.Sector, _ = jpathString(jobj, "$.quoteSummary.result[0].summaryProfile.sector")
	if meta.ShortName == "" {
		return Metadata{}, false, nil
	}
	return meta, true, nil
}
