package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mtlprog/invest/internal/config"
)

func TestRenderCommandSeed(t *testing.T) {
	app := newApp(config.Config{DashboardSource: config.SourceSeed})
	var out bytes.Buffer
	app.Writer = &out

	if err := app.Run([]string{"invest", "render"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Balance: $10,000") {
		t.Errorf("output missing seed card:\n%s", out.String())
	}
}

func TestRenderCommandStoreSource(t *testing.T) {
	app := newApp(config.Config{DashboardSource: config.SourceStore})
	var out bytes.Buffer
	app.Writer = &out

	if err := app.Run([]string{"invest", "render"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := out.String()
	if !strings.Contains(body, "Main Portfolio") || !strings.Contains(body, "Balance: $30,000") {
		t.Errorf("output missing store portfolios:\n%s", body)
	}
}

func TestExportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	app := newApp(config.Config{})

	if err := app.Run([]string{"invest", "export", "--out", path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("workbook not written: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
}

func TestLoadDashboardRemoteFailureKeepsSeed(t *testing.T) {
	cfg := config.Config{
		DashboardSource: config.SourceRemote,
		APIBaseURL:      "http://127.0.0.1:1",
		RemoteTimeout:   100 * time.Millisecond,
	}
	svc, err := buildServices(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer svc.close()

	got := svc.dashboard.Portfolios()
	if len(got) != 1 || got[0].Name != "My Portfolio" {
		t.Errorf("dashboard = %+v, want seed", got)
	}
}
