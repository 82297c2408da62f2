package github

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"creative_catalog/internal/domain"
)

const readmeBody = `# Creative Ads Repository

Public media store for ad creatives, one directory per brand. Files
are published by the catalog synchronizer; raw URLs below this branch
serve as the CDN.
`

const gitattributesBody = `*.mp4 filter=lfs diff=lfs merge=lfs -text
*.mov filter=lfs diff=lfs merge=lfs -text
`

// Config holds the VCS coordinates of the artifact store.
type Config struct {
	Owner     string
	Repo      string
	Branch    string
	Token     string
	LocalPath string
	RawHost   string

	// RemoteURL overrides the GitHub remote, for example a file://
	// mirror. Empty means the token-authenticated github.com remote.
	RemoteURL string

	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Store publishes media into a local clone of the public repository
// and verifies the resulting raw URL before reporting success.
type Store struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger

	prepared bool
}

func New(cfg Config, logger *slog.Logger) *Store {
	return &Store{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("store", cfg.Owner+"/"+cfg.Repo),
	}
}

// Publish writes the media at its deterministic path, commits, pushes,
// and verifies the public URL. Re-publishing identical bytes skips the
// commit but still re-verifies liveness.
func (s *Store) Publish(ctx context.Context, ad domain.Ad, body []byte, ext string) (*domain.PublishedArtifact, error) {
	if err := s.ensureRepo(ctx); err != nil {
		return nil, fmt.Errorf("prepare store: %w", err)
	}

	storagePath := domain.StoragePath(ad.Account.Brand, ad.ID, ad.Name, ext)
	local := filepath.Join(s.cfg.LocalPath, filepath.FromSlash(storagePath))

	existing, err := os.ReadFile(local)
	changed := err != nil || !bytes.Equal(existing, body)

	if changed {
		if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
			return nil, fmt.Errorf("create brand directory: %w", err)
		}
		if err := os.WriteFile(local, body, 0o644); err != nil {
			return nil, fmt.Errorf("write artifact: %w", err)
		}

		msg := fmt.Sprintf("Upload %s for ad %s", filepath.Base(local), ad.ID)
		if err := s.commitAndPush(ctx, storagePath, msg); err != nil {
			// Leave no partial state behind a failed push; the next
			// run re-publishes from scratch.
			_ = s.git(ctx, "reset", "--hard", "origin/"+s.cfg.Branch)
			return nil, err
		}
	}

	publicURL := s.publicURL(storagePath)
	verifiedAt, err := s.verify(ctx, publicURL)
	if err != nil {
		return nil, fmt.Errorf("verify %s: %w", publicURL, err)
	}

	s.logger.Info("published artifact",
		"path", storagePath,
		"bytes", len(body),
		"changed", changed,
	)

	return &domain.PublishedArtifact{
		StoragePath: storagePath,
		PublicURL:   publicURL,
		ViewURL:     s.viewURL(storagePath),
		BytesLen:    len(body),
		VerifiedAt:  verifiedAt,
	}, nil
}

// Exists is a cheap working-tree check for a storage path.
func (s *Store) Exists(storagePath string) bool {
	_, err := os.Stat(filepath.Join(s.cfg.LocalPath, filepath.FromSlash(storagePath)))
	return err == nil
}

// ensureRepo clones the remote on first use and fast-forwards an
// existing clone once per run. It also seeds the README and the LFS
// tracking rules if the repository is brand new.
func (s *Store) ensureRepo(ctx context.Context) error {
	if s.prepared {
		return nil
	}

	if _, err := os.Stat(filepath.Join(s.cfg.LocalPath, ".git")); err != nil {
		if err := os.MkdirAll(filepath.Dir(s.cfg.LocalPath), 0o755); err != nil {
			return fmt.Errorf("create clone parent: %w", err)
		}
		if err := s.gitBare(ctx, "clone", "--branch", s.cfg.Branch, s.remoteURL(), s.cfg.LocalPath); err != nil {
			return fmt.Errorf("clone store: %w", err)
		}
	} else {
		if err := s.git(ctx, "pull", "--ff-only", "origin", s.cfg.Branch); err != nil {
			return fmt.Errorf("update clone: %w", err)
		}
	}

	if err := s.seedRepoFiles(ctx); err != nil {
		return err
	}

	s.prepared = true
	return nil
}

func (s *Store) seedRepoFiles(ctx context.Context) error {
	seeded := false
	for name, body := range map[string]string{
		"README.md":      readmeBody,
		".gitattributes": gitattributesBody,
	} {
		p := filepath.Join(s.cfg.LocalPath, name)
		if _, err := os.Stat(p); err == nil {
			continue
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
		if err := s.git(ctx, "add", name); err != nil {
			return err
		}
		seeded = true
	}
	if !seeded {
		return nil
	}
	if err := s.git(ctx, "commit", "-m", "Initialize media repository layout"); err != nil {
		return err
	}
	return s.git(ctx, "push", "origin", s.cfg.Branch)
}

func (s *Store) commitAndPush(ctx context.Context, storagePath, message string) error {
	if err := s.git(ctx, "add", storagePath); err != nil {
		return fmt.Errorf("stage artifact: %w", err)
	}
	if err := s.git(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("commit artifact: %w", err)
	}
	if err := s.git(ctx, "push", "origin", s.cfg.Branch); err != nil {
		return fmt.Errorf("push artifact: %w", err)
	}
	return nil
}

// verify HEADs the public URL until it answers 2xx, with capped
// exponential backoff between attempts.
func (s *Store) verify(ctx context.Context, publicURL string) (time.Time, error) {
	var lastErr error

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, publicURL, nil)
		if err != nil {
			return time.Time{}, fmt.Errorf("create verification request: %w", err)
		}

		resp, err := s.httpClient.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
				return time.Now().UTC(), nil
			}
			lastErr = fmt.Errorf("unexpected status %d", resp.StatusCode)
		} else {
			lastErr = err
		}

		if attempt == s.cfg.MaxAttempts {
			break
		}

		backoff := s.calculateBackoff(attempt)
		s.logger.Warn("verification failed, retrying",
			"url", publicURL,
			"attempt", attempt,
			"backoff", backoff,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return time.Time{}, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return time.Time{}, fmt.Errorf("after %d attempts: %w", s.cfg.MaxAttempts, lastErr)
}

func (s *Store) calculateBackoff(attempt int) time.Duration {
	backoff := s.cfg.InitialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > s.cfg.MaxBackoff {
		backoff = s.cfg.MaxBackoff
	}
	return backoff
}

func (s *Store) publicURL(storagePath string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s",
		strings.TrimSuffix(s.cfg.RawHost, "/"), s.cfg.Owner, s.cfg.Repo, s.cfg.Branch, storagePath)
}

func (s *Store) viewURL(storagePath string) string {
	return fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s",
		s.cfg.Owner, s.cfg.Repo, s.cfg.Branch, storagePath)
}

func (s *Store) remoteURL() string {
	if s.cfg.RemoteURL != "" {
		return s.cfg.RemoteURL
	}
	return fmt.Sprintf("https://x-access-token:%s@github.com/%s/%s.git",
		s.cfg.Token, s.cfg.Owner, s.cfg.Repo)
}

// git runs a git command inside the clone. Output is captured and
// folded into the error with the token redacted.
func (s *Store) git(ctx context.Context, args ...string) error {
	return s.gitBare(ctx, append([]string{"-C", s.cfg.LocalPath}, args...)...)
}

func (s *Store) gitBare(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(out))
		if s.cfg.Token != "" {
			detail = strings.ReplaceAll(detail, s.cfg.Token, "***")
		}
		return fmt.Errorf("git %s: %w: %s", args[len(args)-1], err, detail)
	}
	return nil
}
