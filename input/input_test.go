package input

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadKeywordFile(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "run.par")
	body := "# detachment law\nKB 1.e-5\nkt 1200. # shear coefficient\nMB 0.6\n\nOUTDIR out # text value\nbadline\n"
	if err := os.WriteFile(fp, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := Read(fp)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Item("KB"); got != 1.e-5 {
		t.Errorf("Item(KB) = %g, want 1e-5", got)
	}
	if got := f.Item("kt"); got != 1200. { // case-insensitive
		t.Errorf("Item(kt) = %g, want 1200", got)
	}
	if got := f.Text("OUTDIR"); got != "out" {
		t.Errorf("Text(OUTDIR) = %q, want out", got)
	}
	if f.Has("BADLINE") {
		t.Errorf("valueless line should be skipped")
	}
	if got := f.ItemDefault("NB", 0.7); got != 0.7 {
		t.Errorf("ItemDefault(NB) = %g, want fallback 0.7", got)
	}
}

func TestReadYAMLFile(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "run.yml")
	body := "kb: 1.0e-5\nnumgrnsize: 2\noptdetachlim: true\noutdir: sims\n"
	if err := os.WriteFile(fp, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := Read(fp)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Item("KB"); got != 1.e-5 {
		t.Errorf("Item(KB) = %g, want 1e-5", got)
	}
	if got := f.Item("NUMGRNSIZE"); got != 2. {
		t.Errorf("Item(NUMGRNSIZE) = %g, want 2", got)
	}
	if got := f.Item("OPTDETACHLIM"); got != 1. {
		t.Errorf("Item(OPTDETACHLIM) = %g, want 1 for true", got)
	}
	if got := f.Text("OUTDIR"); got != "sims" {
		t.Errorf("Text(OUTDIR) = %q, want sims", got)
	}
}

func TestFromMap(t *testing.T) {
	f := FromMap(map[string]float64{"kd": 0.01})
	if got := f.Item("KD"); got != 0.01 {
		t.Errorf("Item(KD) = %g, want 0.01", got)
	}
	if f.Has("KB") {
		t.Errorf("unexpected keyword KB")
	}
}
