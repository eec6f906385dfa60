package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/joelkehle/aireadiness/internal/readiness"
)

const reportCSS = `body{font-family:-apple-system,"Segoe UI",Helvetica,Arial,sans-serif;color:#1c1917;line-height:1.55;margin:0;background:#fff;}
.report{max-width:860px;margin:0 auto;padding:2rem 1.5rem;}
h1{font-size:1.9rem;border-bottom:3px solid #0f766e;padding-bottom:0.4rem;}
h2{font-size:1.3rem;color:#0f766e;margin-top:2rem;}
h3{font-size:1.05rem;margin-bottom:0.3rem;}
li{margin:0.25rem 0;}
em{color:#44403c;}
html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;}
@media print{@page{size:auto;margin:12mm;} .report{max-width:none;padding:0;} h2{break-after:avoid;}}`

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML renders the report as a standalone HTML page.
func HTML(id string, r readiness.Report, lang string) (string, error) {
	var content strings.Builder
	if err := md.Convert([]byte(Markdown(id, r, lang)), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	h := headingsByLang[readiness.ResolveLanguage(lang)]
	return "<!doctype html><html lang='" + html.EscapeString(readiness.ResolveLanguage(lang)) + "'><head><meta charset='utf-8'>" +
		"<title>" + html.EscapeString(h.Title) + "</title>" +
		"<style>" + reportCSS + "</style></head><body>" +
		"<main class='report'>" + content.String() + "</main>" +
		"</body></html>", nil
}
