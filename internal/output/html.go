// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package output

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/microsoft/sarif-tools/internal/filter"
	"github.com/microsoft/sarif-tools/internal/report"
)

//go:embed templates/summary.html.tmpl
var htmlTemplateFS embed.FS

var htmlTemplate = template.Must(
	template.ParseFS(htmlTemplateFS, "templates/summary.html.tmpl"))

// HTMLImage is an optional branding image embedded into the report.
type HTMLImage struct {
	MIMEType string
	Base64   string
}

// LoadHTMLImage reads an image file for embedding, deriving the MIME
// type from the extension.
func LoadHTMLImage(path string) (*HTMLImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image %s: %w", path, err)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "jpg" {
		ext = "jpeg"
	}
	return &HTMLImage{
		MIMEType: "image/" + ext,
		Base64:   base64.StdEncoding.EncodeToString(data),
	}, nil
}

type htmlData struct {
	View reportView
	// ImageSrc is a data: URL, pre-approved because html/template
	// escapes data: URLs out of src attributes.
	ImageSrc template.URL
}

// WriteHTML writes the report as a standalone HTML page with one
// collapsible section per severity and issue type.
func WriteHTML(w io.Writer, rep *report.IssuesReport, toolNames []string, stats *filter.Stats, image *HTMLImage, now time.Time) error {
	data := htmlData{View: buildReportView(rep, toolNames, stats, now)}
	if image != nil {
		data.ImageSrc = template.URL("data:" + image.MIMEType + ";base64," + image.Base64)
	}
	return htmlTemplate.Execute(w, data)
}
