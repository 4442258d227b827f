// Package browser owns the single headless-browser handle used by the
// scraper's browser-fetch tier. The handle, and its mutating operations,
// are guarded by a mutex so the worker process holds exactly one browser
// for its lifetime.
package browser

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"leadforge-worker/internal/apperrors"
	"leadforge-worker/internal/logging"
)

// spuriousSubstrings lists browser event-stream errors that are expected
// noise rather than real failures. They are swallowed without a warning
// when setting the viewport or closing a page or the browser; a spurious
// error while creating a page or navigating is still returned from Fetch.
var spuriousSubstrings = []string{
	"data did not match any variant",
	"ResetWithoutClosingHandshake",
	"Connection reset",
}

const (
	pageCreateTimeout = 5 * time.Second
	pageCloseTimeout  = 2 * time.Second
	closeTimeout      = 5 * time.Second
	postNavWait       = 500 * time.Millisecond
)

// Manager owns a single browser handle, lazily launched on first use and
// reused for the rest of the process's life.
type Manager struct {
	mu      sync.Mutex
	browser *rod.Browser
	launch  *launcher.Launcher
	width   int
	height  int
}

// NewManager configures (but does not launch) a browser manager with the
// given viewport dimensions.
func NewManager(width, height int) *Manager {
	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage")

	return &Manager{launch: l, width: width, height: height}
}

// ensure lazily launches the browser handle, guarded by mu.
func (m *Manager) ensure() (*rod.Browser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser != nil {
		return m.browser, nil
	}

	url, err := m.launch.Launch()
	if err != nil {
		return nil, apperrors.Fatal("browser: failed to launch", err)
	}

	b := rod.New().ControlURL(url)
	if err := b.Connect(); err != nil {
		return nil, apperrors.Fatal("browser: failed to connect", err)
	}

	m.browser = b
	logging.GetGlobalLogger().Info("browser launched", nil)
	return b, nil
}

// isSpurious reports whether an error message matches one of the
// documented noise patterns from the browser's event stream.
func isSpurious(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, s := range spuriousSubstrings {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// Fetch opens a fresh stealth page, navigates to url, waits briefly for
// late scripting, and returns the rendered document's HTML. The page is
// always closed, on both the success and failure paths, with a guard
// timeout.
func (m *Manager) Fetch(ctx context.Context, url string, navTimeout time.Duration, userAgent string) (string, error) {
	b, err := m.ensure()
	if err != nil {
		return "", err
	}

	pageCtx, cancel := context.WithTimeout(ctx, pageCreateTimeout)
	defer cancel()

	page, err := stealth.Page(b.Context(pageCtx))
	if err != nil {
		if isSpurious(err) {
			return "", apperrors.Transient("browser: spurious page-create error", err)
		}
		return "", apperrors.Transient("browser: failed to create page", err)
	}
	defer m.closePage(page)

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             m.width,
		Height:            m.height,
		DeviceScaleFactor: 1,
	}); err != nil && !isSpurious(err) {
		logging.GetGlobalLogger().Warn("browser: failed to set viewport", map[string]interface{}{"error": err.Error()})
	}

	if userAgent != "" {
		_ = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: userAgent})
	}

	navCtx, navCancel := context.WithTimeout(ctx, navTimeout)
	defer navCancel()

	navErr := rod.Try(func() {
		page.Context(navCtx).MustNavigate(url).MustWaitLoad()
	})
	if navErr != nil {
		if isSpurious(navErr) {
			return "", apperrors.Transient("browser: spurious navigation error", navErr)
		}
		return "", apperrors.Transient("browser: navigation failed", navErr)
	}

	time.Sleep(postNavWait)

	html, err := page.HTML()
	if err != nil {
		return "", apperrors.Transient("browser: failed to read rendered document", err)
	}

	return html, nil
}

// closePage closes a page with a 2s guard, swallowing spurious errors.
func (m *Manager) closePage(page *rod.Page) {
	done := make(chan struct{})
	var err error

	go func() {
		err = page.Close()
		close(done)
	}()

	select {
	case <-done:
		if err != nil && !isSpurious(err) {
			logging.GetGlobalLogger().Warn("browser: page close reported an error", map[string]interface{}{"error": err.Error()})
		}
	case <-time.After(pageCloseTimeout):
		logging.GetGlobalLogger().Warn("browser: page close timed out", nil)
	}
}

// Close idempotently tears down the browser handle with a 5s guard.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- m.browser.Close()
	}()

	select {
	case err := <-done:
		m.browser = nil
		if err != nil && !isSpurious(err) {
			return apperrors.Transient("browser: close reported an error", err)
		}
		return nil
	case <-time.After(closeTimeout):
		m.browser = nil
		logging.GetGlobalLogger().Warn("browser: close timed out", nil)
		return nil
	}
}
