package dashboard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mtlprog/invest/internal/domain"
)

func TestWriteHTMLSeed(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, NewState().View()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`<div class="app">`,
		`<header class="header">`,
		`<h1>Investment Platform</h1>`,
		`<main class="main">`,
		`<section class="dashboard">`,
		`<h2>Portfolios</h2>`,
		`<div class="portfolio-list">`,
		`<div class="portfolio-card" data-key="1">`,
		`<h3>My Portfolio</h3>`,
		`<p>Balance: $10,000</p>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if n := strings.Count(out, `class="portfolio-card"`); n != 1 {
		t.Errorf("cards = %d, want 1", n)
	}
}

func TestWriteHTMLEscapesNames(t *testing.T) {
	v := Render([]domain.Portfolio{portfolio(1, "<script>x</script>", 1)})
	var buf bytes.Buffer
	if err := WriteHTML(&buf, v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "<script>") {
		t.Error("portfolio name was not escaped")
	}
}

func TestWriteHTMLDeterministic(t *testing.T) {
	v := Render([]domain.Portfolio{portfolio(2, "B", 20), portfolio(1, "A", 10)})
	var a, b bytes.Buffer
	if err := WriteHTML(&a, v); err != nil {
		t.Fatal(err)
	}
	if err := WriteHTML(&b, v); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("encoding the same view twice produced different output")
	}
	out := a.String()
	if strings.Index(out, "<h3>B</h3>") > strings.Index(out, "<h3>A</h3>") {
		t.Error("cards are not in sequence order")
	}
}
