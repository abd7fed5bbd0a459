package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fanchart/internal/config"
	"github.com/matzehuels/fanchart/pkg/cache"
	"github.com/matzehuels/fanchart/pkg/chart"
	"github.com/matzehuels/fanchart/pkg/errors"
	"github.com/matzehuels/fanchart/pkg/pedigree"
	"github.com/matzehuels/fanchart/pkg/pipeline"
)

const family = `0 HEAD
1 CHAR UTF-8
0 @I1@ INDI
1 NAME Jean /Martin/
1 SEX M
1 BIRT
2 DATE 14 JUL 1900
0 @I2@ INDI
1 NAME Pierre /Martin/
1 SEX M
0 @I3@ INDI
1 NAME Marie /Durand/
1 SEX F
0 @F1@ FAM
1 HUSB @I2@
1 WIFE @I3@
1 CHIL @I1@
0 TRLR
`

// isolate keeps tests away from the user's config and cache.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("HOME", dir)
	for _, k := range []string{"FANCHART_CACHE_BACKEND", "FANCHART_CACHE_DIR", "FANCHART_CACHE_URL", "FANCHART_ADDR"} {
		t.Setenv(k, "")
	}
	return dir
}

func writeGEDCOM(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "family.ged")
	if err := os.WriteFile(path, []byte(family), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietCLI() *CLI {
	return New(io.Discard, log.InfoLevel)
}

func TestRootCommand(t *testing.T) {
	root := quietCLI().RootCommand()
	want := []string{"chart", "individuals", "tree", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestChartCommand(t *testing.T) {
	dir := isolate(t)
	input := writeGEDCOM(t, dir)
	output := filepath.Join(dir, "out.json")

	root := quietCLI().RootCommand()
	root.SetArgs([]string{"chart", input, "--root", "@I1@", "-g", "3", "--no-cache", "-o", output})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("chart command error = %v", err)
	}

	c, err := chart.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if c.Generations != 3 || len(c.Sectors) != 7 {
		t.Errorf("chart has %d generations and %d sectors, want 3 and 7", c.Generations, len(c.Sectors))
	}
}

func TestChartCommandRequiresRoot(t *testing.T) {
	dir := isolate(t)
	root := quietCLI().RootCommand()
	root.SetArgs([]string{"chart", writeGEDCOM(t, dir), "--no-cache", "-o", filepath.Join(dir, "x.json")})
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("chart without --root should fail")
	}
}

func TestTreeCommand(t *testing.T) {
	dir := isolate(t)
	output := filepath.Join(dir, "tree.dot")

	root := quietCLI().RootCommand()
	root.SetArgs([]string{"tree", writeGEDCOM(t, dir), "-r", "@I1@", "-f", "dot", "-o", output})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("tree command error = %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("digraph")) {
		t.Errorf("tree output = %q, want DOT", data)
	}
}

func TestChartFlagsApply(t *testing.T) {
	var flags chartFlags
	cmd := &cobra.Command{Use: "test"}
	flags.register(cmd)
	if err := cmd.ParseFlags([]string{"-r", "@I9@", "--time", "--weights", "1,0.9,0.8,0.7", "--missing=false"}); err != nil {
		t.Fatal(err)
	}

	opts := config.Default().Chart
	flags.apply(cmd, &opts)
	if opts.Root != "@I9@" || !opts.TimeWeights || opts.ShowMissing {
		t.Errorf("opts = %+v", opts)
	}
	if len(opts.Weights) != 4 || opts.Weights[1] != 0.9 {
		t.Errorf("Weights = %v", opts.Weights)
	}
	if opts.Generations != pipeline.DefaultGenerations {
		t.Errorf("unchanged flag overrode Generations: %d", opts.Generations)
	}
}

func TestDefaultOutput(t *testing.T) {
	tests := []struct {
		input, suffix, want string
	}{
		{"family.ged", ".chart.json", "family.chart.json"},
		{"/data/trees/dupont.GED", ".tree.svg", "dupont.tree.svg"},
		{"-", ".chart.json", "fanchart.chart.json"},
	}
	for _, tt := range tests {
		if got := defaultOutput(tt.input, tt.suffix); got != tt.want {
			t.Errorf("defaultOutput(%q, %q) = %q, want %q", tt.input, tt.suffix, got, tt.want)
		}
	}
}

func TestReadInputNotFound(t *testing.T) {
	_, err := readInput(filepath.Join(t.TempDir(), "missing.ged"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("readInput() error = %v, want FILE_NOT_FOUND", err)
	}
}

var people = []pedigree.Individual{
	{ID: "@I1@", GivenName: "Jean", FamilyName: "Martin"},
	{ID: "@I2@", GivenName: "Pierre", FamilyName: "Martin"},
	{ID: "@I3@", GivenName: "Marie", FamilyName: "Durand"},
}

func TestFilterIndividuals(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"martin", 2},
		{"MARIE", 1},
		{"@i3@", 1},
		{"nobody", 0},
	}
	for _, tt := range tests {
		if got := len(filterIndividuals(people, tt.query)); got != tt.want {
			t.Errorf("filterIndividuals(%q) = %d results, want %d", tt.query, got, tt.want)
		}
	}
}

func TestIndividualsTable(t *testing.T) {
	out := individualsTable(people)
	for _, s := range []string{"ID", "Jean Martin", "@I3@"} {
		if !strings.Contains(out, s) {
			t.Errorf("table missing %q:\n%s", s, out)
		}
	}
}

func TestIndividualPicker(t *testing.T) {
	m := NewIndividualPickerModel(people)

	var model tea.Model = m
	for _, r := range "dur" {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m = model.(IndividualPickerModel)
	if m.Query != "dur" || len(m.Visible) != 1 {
		t.Fatalf("after typing: query %q, %d visible", m.Query, len(m.Visible))
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = model.(IndividualPickerModel)
	if len(m.Visible) != 3 {
		t.Fatalf("after clearing the filter: %d visible, want 3", len(m.Visible))
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(IndividualPickerModel)
	if m.Selected == nil || m.Selected.ID != "@I2@" {
		t.Errorf("Selected = %+v, want @I2@", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
	if !strings.Contains(m.View(), "Select Root Individual") {
		t.Error("View() should render the title")
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(15, 4, true)
	for _, s := range []string{"15 individuals", "4 generations", iconCached} {
		if !strings.Contains(line, s) {
			t.Errorf("statsLine() = %q, missing %q", line, s)
		}
	}
}

func TestFileCache(t *testing.T) {
	dir := t.TempDir()
	c := quietCLI()
	c.config = config.Default()
	c.config.Cache.Dir = dir

	fc, err := c.fileCache()
	if err != nil {
		t.Fatalf("fileCache() error = %v", err)
	}
	if fc.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", fc.Dir(), dir)
	}

	c.config.Cache.Backend = cache.BackendRedis
	if _, err := c.fileCache(); err == nil {
		t.Error("fileCache() should refuse a redis backend")
	}
}

func TestCachePathCommand(t *testing.T) {
	dir := isolate(t)
	cacheDir := filepath.Join(dir, "charts")
	t.Setenv("FANCHART_CACHE_DIR", cacheDir)

	var out bytes.Buffer
	root := quietCLI().RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache path error = %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != cacheDir {
		t.Errorf("cache path = %q, want %q", got, cacheDir)
	}
}
