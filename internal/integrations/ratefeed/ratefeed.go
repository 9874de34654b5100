// Package ratefeed fetches the benchmark debt yield used as the expected
// return on the debt sleeve of a recommended allocation.
package ratefeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

// DefaultInstrument is the 10-year government security yield
const DefaultInstrument = "GSEC10Y"

// Rate is one benchmark observation
type Rate struct {
	Instrument string    `json:"instrument"`
	Date       time.Time `json:"date"`
	Value      float64   `json:"value"`
}

// Client reads the XML rate feed
type Client struct {
	url        string
	instrument string
	client     *http.Client
	log        *logrus.Logger
}

// NewClient initializes a new rate feed client
func NewClient(feedURL string, log *logrus.Logger) *Client {
	return &Client{
		url:        feedURL,
		instrument: DefaultInstrument,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

func (c *Client) buildURL(now time.Time) (string, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return "", fmt.Errorf("invalid feed url: %w", err)
	}
	q := u.Query()
	q.Set("instrument", c.instrument)
	q.Set("fromDate", now.AddDate(0, 0, -30).Format("2006-01-02"))
	q.Set("toDate", now.Format("2006-01-02"))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) fetch(ctx context.Context) ([]byte, error) {
	target, err := c.buildURL(time.Now())
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	c.log.Debugf("Rate feed XML response: %s", string(body))
	return body, nil
}

// parse returns the most recent observation for the instrument
func (c *Client) parse(raw []byte) (Rate, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return Rate{}, fmt.Errorf("failed to parse XML: %w", err)
	}

	var latest Rate
	found := false
	for _, el := range doc.FindElements("//Rates/Rate") {
		if !strings.EqualFold(el.SelectAttrValue("instrument", ""), c.instrument) {
			continue
		}
		dateEl := el.FindElement("./Date")
		valueEl := el.FindElement("./Value")
		if dateEl == nil || valueEl == nil {
			return Rate{}, fmt.Errorf("rate entry missing Date or Value")
		}
		date, err := time.Parse("2006-01-02", strings.TrimSpace(dateEl.Text()))
		if err != nil {
			return Rate{}, fmt.Errorf("failed to parse date: %w", err)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(valueEl.Text()), 64)
		if err != nil {
			return Rate{}, fmt.Errorf("failed to parse rate: %w", err)
		}
		if !found || date.After(latest.Date) {
			latest = Rate{Instrument: c.instrument, Date: date, Value: value}
			found = true
		}
	}
	if !found {
		return Rate{}, fmt.Errorf("no %s rate found in XML", c.instrument)
	}
	if latest.Value <= 0 || latest.Value > 25 {
		return Rate{}, fmt.Errorf("implausible %s rate %.2f", c.instrument, latest.Value)
	}
	return latest, nil
}

// GetBenchmarkRate retrieves the latest benchmark yield in percent
func (c *Client) GetBenchmarkRate(ctx context.Context) (Rate, error) {
	body, err := c.fetch(ctx)
	if err != nil {
		return Rate{}, err
	}
	rate, err := c.parse(body)
	if err != nil {
		return Rate{}, err
	}
	c.log.Infof("Retrieved %s benchmark rate: %.2f%% as of %s", rate.Instrument, rate.Value, rate.Date.Format("2006-01-02"))
	return rate, nil
}
