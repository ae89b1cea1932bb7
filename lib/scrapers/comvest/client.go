// Package comvest fetches admission-call listings from the university
// portal. A listing page carries the candidate list inside a single
// <pre> block of preformatted text.
package comvest

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"regexp"
	"strconv"
	"strings"
	"time"

	"calouros-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/comvest")

var ErrNoListing = fmt.Errorf("no <pre> listing block found on the page")

type Client struct {
	Http *resty.Client
}

func NewClient() (*Client, error) {
	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/comvest/http")

	return &Client{Http: client}, nil
}

// FetchListing downloads the page at url and extracts the raw
// preformatted candidate listing.
func (c *Client) FetchListing(ctx context.Context, url string) (string, error) {
	ctx, span := tracer.Start(ctx, "FetchListing")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	res, err := c.Http.R().SetContext(ctx).Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch listing page")
		return "", err
	}
	if res.StatusCode() >= 400 {
		err := fmt.Errorf("fetch listing page: status %d", res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse listing html")
		return "", err
	}

	pre := doc.Find("pre").First()
	if pre.Length() == 0 {
		span.SetStatus(codes.Error, ErrNoListing.Error())
		return "", ErrNoListing
	}
	return pre.Text(), nil
}

var callRegex = regexp.MustCompile(`chamada(\d+)`)

// DetectTarget infers the institution tag and call number from a
// listing url. Unknown urls default to call 1.
func DetectTarget(url string) (institution string, call int) {
	lower := strings.ToLower(url)

	institution = "unknown"
	if strings.Contains(lower, "unicamp") || strings.Contains(lower, "comvest") {
		institution = "unicamp"
	}

	call = 1
	if groups := callRegex.FindStringSubmatch(lower); groups != nil {
		if n, err := strconv.Atoi(groups[1]); err == nil {
			call = n
		}
	}
	return institution, call
}
