package input

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/maseology/mmio"
	"gopkg.in/yaml.v3"
)

// File holds run parameters read once at startup. Keyword files follow the
// one-entry-per-line convention `NAME value [# comment]`; a .yaml/.yml
// extension switches the reader to YAML.
type File struct {
	v  map[string]float64
	s  map[string]string
	fp string
}

func Read(fp string) (*File, error) {
	switch strings.ToLower(filepath.Ext(fp)) {
	case ".yaml", ".yml":
		return readYAML(fp)
	default:
		return readKeyword(fp)
	}
}

// FromMap builds a parameter set directly, bypassing file IO.
func FromMap(m map[string]float64) *File {
	f := &File{v: make(map[string]float64, len(m)), s: make(map[string]string, len(m)), fp: "(in-memory)"}
	for k, v := range m {
		nm := strings.ToUpper(k)
		f.v[nm] = v
		f.s[nm] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return f
}

func readKeyword(fp string) (*File, error) {
	lns, err := mmio.ReadTextLines(fp)
	if err != nil {
		return nil, fmt.Errorf(" input.Read: %v", err)
	}
	f := &File{v: map[string]float64{}, s: map[string]string{}, fp: fp}
	for _, ln := range lns {
		if i := strings.Index(ln, "#"); i >= 0 {
			ln = ln[:i]
		}
		flds := strings.Fields(ln)
		if len(flds) < 2 {
			continue
		}
		nm := strings.ToUpper(flds[0])
		f.s[nm] = flds[1]
		if v, err := strconv.ParseFloat(flds[1], 64); err == nil {
			f.v[nm] = v
		}
	}
	return f, nil
}

func readYAML(fp string) (*File, error) {
	b, err := os.ReadFile(fp)
	if err != nil {
		return nil, fmt.Errorf(" input.Read: %v", err)
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf(" input.Read: %v", err)
	}
	f := &File{v: make(map[string]float64, len(raw)), s: make(map[string]string, len(raw)), fp: fp}
	for k, v := range raw {
		nm := strings.ToUpper(k)
		switch t := v.(type) {
		case float64:
			f.v[nm] = t
			f.s[nm] = strconv.FormatFloat(t, 'g', -1, 64)
		case int:
			f.v[nm] = float64(t)
			f.s[nm] = strconv.Itoa(t)
		case bool:
			if t {
				f.v[nm] = 1.
			} else {
				f.v[nm] = 0.
			}
			f.s[nm] = strconv.FormatBool(t)
		case string:
			f.s[nm] = t
			if fv, err := strconv.ParseFloat(t, 64); err == nil {
				f.v[nm] = fv
			}
		}
	}
	return f, nil
}

// Set overrides the named parameter, as when sampling law
// coefficients during calibration.
func (f *File) Set(nm string, v float64) {
	nm = strings.ToUpper(nm)
	f.v[nm] = v
	f.s[nm] = strconv.FormatFloat(v, 'g', -1, 64)
}

// Clone returns an independent copy whose entries can be overridden
// without touching the original.
func (f *File) Clone() *File {
	c := &File{v: make(map[string]float64, len(f.v)), s: make(map[string]string, len(f.s)), fp: f.fp}
	for k, v := range f.v {
		c.v[k] = v
	}
	for k, v := range f.s {
		c.s[k] = v
	}
	return c
}

// Item returns the named parameter, aborting when absent: a missing
// required keyword is a configuration fault.
func (f *File) Item(nm string) float64 {
	v, ok := f.v[strings.ToUpper(nm)]
	if !ok {
		log.Fatalf(" input: keyword %s not found in %s", nm, f.fp)
	}
	return v
}

// ItemDefault returns the named parameter, or def when absent.
func (f *File) ItemDefault(nm string, def float64) float64 {
	if v, ok := f.v[strings.ToUpper(nm)]; ok {
		return v
	}
	return def
}

// Text returns the named parameter's raw text, empty when absent.
func (f *File) Text(nm string) string {
	return f.s[strings.ToUpper(nm)]
}

func (f *File) Has(nm string) bool {
	_, ok := f.s[strings.ToUpper(nm)]
	return ok
}
