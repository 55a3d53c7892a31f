package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/hammamikhairi/ottoorder/internal/catalog"
	"github.com/hammamikhairi/ottoorder/internal/domain"
)

const testdata = "../../internal/catalog/testdata/"

func execute(args ...string) (string, error) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	out, err := execute("validate", testdata+"pizzaria.json", testdata+"lanchonete.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Pizzaria Bella, 3 categories, 6 items") {
		t.Errorf("missing pizzaria report:\n%s", out)
	}
	if strings.Count(out, "ok ") != 2 {
		t.Errorf("expected two ok lines:\n%s", out)
	}
}

func TestValidateCommandReportsFailures(t *testing.T) {
	out, err := execute("validate", testdata+"pizzaria.json", testdata+"duplicate_ids.json")
	if err == nil {
		t.Fatal("expected an error for duplicate ids")
	}
	if !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("error = %v", err)
	}
	if !strings.Contains(out, "FAIL "+testdata+"duplicate_ids.json") {
		t.Errorf("missing failure line:\n%s", out)
	}
}

func TestValidateNeedsArgs(t *testing.T) {
	if _, err := execute("validate"); err == nil {
		t.Fatal("expected an argument error")
	}
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("OTTOORDER_SERVER_ADDR", ":7000")
	t.Setenv("OTTOORDER_CATALOG_DIR", "/from/env")

	opts := &rootOptions{}
	cmd := newServeCommand(opts)
	if err := cmd.ParseFlags([]string{"--addr", ":9090"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q, want flag value", cfg.Server.Addr)
	}
	if cfg.Catalog.Dir != "/from/env" {
		t.Errorf("catalog dir = %q, want env value", cfg.Catalog.Dir)
	}
}

func TestLoadConfigRejectsBadTimezone(t *testing.T) {
	opts := &rootOptions{}
	cmd := newServeCommand(opts)
	if err := cmd.ParseFlags([]string{"--timezone", "Mars/Olympus"}); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(cmd, opts); err == nil {
		t.Fatal("expected a timezone error")
	}
}

func TestChatSessionStatus(t *testing.T) {
	cat, err := catalog.Load(testdata + "pizzaria.json")
	if err != nil {
		t.Fatal(err)
	}
	s := &chatSession{
		loc: time.UTC,
		state: domain.State{
			Cart: []domain.CartEntry{{ID: "calabresa", Quantity: 2}, {ID: "gone", Quantity: 1}},
			Step: domain.StepConfirmation,
		},
	}

	st := s.status(cat)
	if st.Items != 2 {
		t.Errorf("items = %d, want 2", st.Items)
	}
	if st.Total != "R$ 103.50" {
		t.Errorf("total = %q", st.Total)
	}
	if st.Step != "confirmation" || st.Restaurant != "Pizzaria Bella" {
		t.Errorf("unexpected status %+v", st)
	}
}
