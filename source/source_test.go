package source

import "testing"

func TestSourceTypes(t *testing.T) {
	if TypeFS == TypePackaged {
		t.Fatalf("TypeFS and TypePackaged must differ, both are %q", TypeFS)
	}
	if TypeFS != "fs" {
		t.Errorf("TypeFS = %q, want %q", TypeFS, "fs")
	}
	if TypePackaged != "packaged" {
		t.Errorf("TypePackaged = %q, want %q", TypePackaged, "packaged")
	}
}
