package report

import (
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/wonny/chartbook/internal/chart"
	"github.com/wonny/chartbook/internal/contracts"
	"github.com/wonny/chartbook/pkg/logger"
)

// Document wraps one PDF under construction and its destination file.
// Open claims the file before any chart work starts, so a locked or
// unwritable destination fails the run before the first fetch.
// SSOT: report artifact lifecycle (open -> pages -> finalize)
type Document struct {
	pdf       *fpdf.Fpdf
	path      string
	file      *os.File
	logger    *logger.Logger
	finalized bool
}

var _ chart.PageSink = (*Document)(nil)

// NewDocument prepares an A4 landscape document for the given path.
func NewDocument(path string, log *logger.Logger) *Document {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	return &Document{
		pdf:    pdf,
		path:   path,
		logger: log,
	}
}

// DefaultOutputName builds the dated report filename for a screen key.
// The key is sanitized so a malformed filter value cannot escape the
// output directory or break the name.
func DefaultOutputName(recKey string, now time.Time) string {
	return fmt.Sprintf("strong_buy_%s_%s.pdf", sanitizeKey(recKey), now.Format("2006-01-02"))
}

// sanitizeKey keeps letters, digits, underscore and hyphen, replacing
// everything else with an underscore.
func sanitizeKey(key string) string {
	out := []rune(key)
	for i, r := range out {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			out[i] = '_'
		}
	}
	return string(out)
}

// Open creates or truncates the destination file.
func (d *Document) Open() error {
	f, err := os.Create(d.path)
	if err != nil {
		return &contracts.OutputError{Path: d.path, Err: err}
	}
	d.file = f
	d.logger.WithField("path", d.path).Debug("Report file opened")
	return nil
}

// AddPage starts a new page and returns the drawing surface.
func (d *Document) AddPage() *fpdf.Fpdf {
	d.pdf.AddPage()
	return d.pdf
}

// PageCount returns the number of pages added so far.
func (d *Document) PageCount() int {
	return d.pdf.PageCount()
}

// Path returns the destination path.
func (d *Document) Path() string {
	return d.path
}

// Finalize writes the PDF exactly once, closes the file and validates the
// artifact. A document with no pages still yields a single blank page since
// the PDF writer cannot emit a pageless file.
func (d *Document) Finalize() error {
	if d.finalized {
		return fmt.Errorf("document %s already finalized", d.path)
	}
	if d.file == nil {
		return &contracts.OutputError{Path: d.path, Err: fmt.Errorf("document was never opened")}
	}
	d.finalized = true

	if err := d.pdf.Output(d.file); err != nil {
		d.file.Close()
		return &contracts.OutputError{Path: d.path, Err: err}
	}
	if err := d.file.Close(); err != nil {
		return &contracts.OutputError{Path: d.path, Err: err}
	}

	pdfCtx, err := api.ReadContextFile(d.path)
	if err != nil {
		return &contracts.OutputError{Path: d.path, Err: fmt.Errorf("artifact failed validation: %w", err)}
	}

	d.logger.WithFields(map[string]interface{}{
		"path":       d.path,
		"page_count": pdfCtx.PageCount,
	}).Info("Report file written")

	return nil
}

// Close releases the file handle when a run aborts before Finalize.
func (d *Document) Close() error {
	if d.finalized || d.file == nil {
		return nil
	}
	f := d.file
	d.file = nil
	return f.Close()
}
