package cashflow

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
)

// quoteCache caches successful HTTP responses on disk. Quotes only need to be
// fresh to the day, so the cache key embeds today's date and entries simply
// stop matching at midnight.
type quoteCache struct {
	next http.RoundTripper
}

func (c *quoteCache) RoundTrip(req *http.Request) (*http.Response, error) {
	file := c.file(req)
	if resp, err := readCached(file, req); err == nil {
		return resp, nil
	}

	resp, err := c.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%s %s%s %s", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := writeCached(file, resp); err != nil {
		log.Printf("quote cache write skipped: %v", err)
	}
	return resp, nil
}

func (c *quoteCache) file(req *http.Request) string {
	sum := sha256.Sum256([]byte(Today().String() + " " + req.Method + " " + req.URL.String()))
	return filepath.Join(os.TempDir(), fmt.Sprintf("cfc-quote-%x", sum[:12]))
}

func readCached(file string, req *http.Request) (*http.Response, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(raw)), req)
}

func writeCached(file string, resp *http.Response) error {
	raw, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(file, raw, 0o644)
}

// quoteClient returns an HTTP client whose responses are cached until the end
// of the day.
func quoteClient() *http.Client {
	return &http.Client{Transport: &quoteCache{next: http.DefaultTransport}}
}

// getJSON fetches addr and unmarshals the JSON body into out.
func getJSON(client *http.Client, addr string, out any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s%s: %s", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decoding body: %w", addr, err)
	}
	return nil
}
