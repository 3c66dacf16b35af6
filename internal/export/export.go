// Package export writes company reports to a local directory or an
// S3-compatible bucket.
package export

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/brieflist/internal/intelligence"
	"github.com/alexanderramin/brieflist/internal/report"
)

// Format is a report document format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// ErrNoResult is returned when there is nothing to export.
var ErrNoResult = errors.New("no company result to export")

// ParseFormat accepts "md", "markdown" or "html".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want md or html)", s)
	}
}

// Target stores a rendered report and returns where it went.
type Target interface {
	Write(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// Document is a rendered report.
type Document struct {
	Name        string
	Data        []byte
	ContentType string
}

// Render builds the report document for company in format.
func Render(company string, res *intelligence.CompanyResult, format Format) (*Document, error) {
	if res == nil {
		return nil, ErrNoResult
	}
	md := report.Markdown(company, res)
	switch format {
	case FormatHTML:
		page, err := report.HTML(strings.ToUpper(strings.TrimSpace(company)), md)
		if err != nil {
			return nil, err
		}
		return &Document{Name: report.FileName(company, "html"), Data: page, ContentType: "text/html; charset=utf-8"}, nil
	default:
		return &Document{Name: report.FileName(company, "md"), Data: []byte(md), ContentType: "text/markdown; charset=utf-8"}, nil
	}
}

// Export renders the report and writes it to target.
func Export(ctx context.Context, target Target, company string, res *intelligence.CompanyResult, format Format) (string, error) {
	doc, err := Render(company, res, format)
	if err != nil {
		return "", err
	}
	loc, err := target.Write(ctx, doc.Name, doc.Data, doc.ContentType)
	if err != nil {
		return "", fmt.Errorf("exporting %s: %w", doc.Name, err)
	}
	return loc, nil
}

// Open returns the target for dest: "s3://bucket/prefix" selects S3,
// anything else is a local directory.
func Open(ctx context.Context, dest string, s3cfg S3Config) (Target, error) {
	if rest, ok := strings.CutPrefix(dest, "s3://"); ok {
		bucket, prefix, _ := strings.Cut(rest, "/")
		if bucket == "" {
			return nil, fmt.Errorf("invalid s3 destination %q: bucket required", dest)
		}
		s3cfg.Bucket = bucket
		s3cfg.Prefix = prefix
		return NewS3Target(ctx, s3cfg)
	}
	if dest == "" {
		dest = "."
	}
	return DirTarget{Dir: dest}, nil
}
