package modules

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitSource fetches a dependency module archive out of a git repository
// into a content-addressed cache directory keyed by the requested
// rev/tag/branch plus the commit it resolved to. It is the I/O-performing
// collaborator kept outside the pure registration logic in Binder, so the
// binding algorithm itself stays I/O-free.
type GitSource struct {
	CacheDir string
}

// NewGitSource constructs a GitSource rooted at cacheDir.
func NewGitSource(cacheDir string) *GitSource {
	return &GitSource{CacheDir: cacheDir}
}

// GitRef pins a dependency module to one of rev, tag, or branch, in that
// priority order.
type GitRef struct {
	Rev    string
	Tag    string
	Branch string
}

// Fetch clones url (or reuses an existing checkout for an explicit Rev),
// resolves ref to a commit, checks it out into a directory named after
// the resolved commit hash, and returns that directory plus the commit.
func (g *GitSource) Fetch(name, url string, ref GitRef) (checkoutDir, commit string, err error) {
	if g == nil {
		return "", "", errors.New("modules: git source unavailable")
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return "", "", fmt.Errorf("modules: dependency %q: git URL required", name)
	}

	baseDir := filepath.Join(g.CacheDir, sanitizeSegment(name))
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", err
	}

	revision, descriptor, err := ref.revision()
	if err != nil {
		return "", "", err
	}

	explicitRev := strings.TrimSpace(ref.Rev)
	if explicitRev != "" {
		existing := filepath.Join(baseDir, sanitizeSegment(explicitRev))
		if _, err := os.Stat(existing); err == nil {
			return existing, explicitRev, nil
		}
	}

	tmpDir, err := os.MkdirTemp(baseDir, "fetch-*")
	if err != nil {
		return "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", err
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{
		URL:               url,
		Depth:             0,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("modules: git clone %s: %w", url, err)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("modules: resolve revision %s: %w", revision, err)
	}

	targetDir := filepath.Join(baseDir, sanitizeSegment(descriptor)+"-"+sanitizeSegment(hash.String()))
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return targetDir, hash.String(), nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{
		Hash:  *hash,
		Force: true,
	}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("modules: git checkout %s: %w", revision, err)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	return targetDir, hash.String(), nil
}

func (r GitRef) revision() (plumbing.Revision, string, error) {
	if rev := strings.TrimSpace(r.Rev); rev != "" {
		return plumbing.Revision(rev), rev, nil
	}
	if tag := strings.TrimSpace(r.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), tag, nil
	}
	if branch := strings.TrimSpace(r.Branch); branch != "" {
		return plumbing.Revision("refs/heads/" + branch), branch, nil
	}
	return "", "", fmt.Errorf("modules: git dependencies require rev, tag, or branch")
}

func sanitizeSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "head"
	}
	replaced := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '-'
		}
	}, segment)
	return replaced
}

// DirChecksum hashes every non-directory entry under dir (path-sorted,
// relative path followed by content) into one content-address, suitable
// for comparing a checkout's contents across time. Neither Fetch nor
// Binder calls it.
func DirChecksum(dir string) (string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	sort.Strings(paths)

	h := sha256.New()
	for _, p := range paths {
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return "", err
		}
		h.Write([]byte(rel))
		f, err := os.Open(p)
		if err != nil {
			return "", err
		}
		_, copyErr := io.Copy(h, f)
		f.Close()
		if copyErr != nil {
			return "", copyErr
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
