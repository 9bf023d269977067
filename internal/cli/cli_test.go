package cli

import "testing"

func TestParseValues(t *testing.T) {
	opts, err := Parse([]string{"vnime-tty", "--method=vni", "--tone", "traditional", "--stdin", "--shortcuts", "abbr.tsv"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opts.Method != "vni" || opts.ToneStyle != "traditional" || !opts.Stdin || opts.ShortcutsPath != "abbr.tsv" {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]string{"vnime-tty", "--config"}); err == nil {
		t.Fatalf("expected missing value error")
	}
	if _, err := Parse([]string{"vnime-tty", "--daemon"}); err == nil {
		t.Fatalf("expected unknown option error")
	}
}
