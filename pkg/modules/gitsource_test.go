package modules

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeSegmentReplacesDisallowedCharacters(t *testing.T) {
	cases := map[string]string{
		"":                "head",
		"v1.2.3":          "v1.2.3",
		"refs/heads/main":  "refs-heads-main",
		"feature branch!": "feature-branch-",
	}
	for in, want := range cases {
		if got := sanitizeSegment(in); got != want {
			t.Errorf("sanitizeSegment(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDirChecksumIsStableAndContentSensitive(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nested", "b.txt"), []byte("world"), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := DirChecksum(dir)
	if err != nil {
		t.Fatalf("DirChecksum: %v", err)
	}
	second, err := DirChecksum(dir)
	if err != nil {
		t.Fatalf("DirChecksum: %v", err)
	}
	if first != second {
		t.Errorf("expected stable checksum across repeated calls, got %s and %s", first, second)
	}

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("changed"), 0o644); err != nil {
		t.Fatal(err)
	}
	third, err := DirChecksum(dir)
	if err != nil {
		t.Fatalf("DirChecksum: %v", err)
	}
	if third == first {
		t.Error("expected checksum to change after file content changed")
	}
}

func TestGitRefRevisionPriorityRevThenTagThenBranch(t *testing.T) {
	rev, _, err := GitRef{Rev: "abc123", Tag: "v1", Branch: "main"}.revision()
	if err != nil || string(rev) != "abc123" {
		t.Errorf("expected explicit rev to win, got %q, err %v", rev, err)
	}

	rev, _, err = GitRef{Tag: "v1", Branch: "main"}.revision()
	if err != nil || string(rev) != "refs/tags/v1" {
		t.Errorf("expected tag to win over branch, got %q, err %v", rev, err)
	}

	rev, _, err = GitRef{Branch: "main"}.revision()
	if err != nil || string(rev) != "refs/heads/main" {
		t.Errorf("expected branch revision, got %q, err %v", rev, err)
	}

	if _, _, err := (GitRef{}).revision(); err == nil {
		t.Error("expected an error when no rev/tag/branch is given")
	}
}
