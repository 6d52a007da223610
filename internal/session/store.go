package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/garnizeh/careerguide/internal/config"
)

// ErrInvalidToken is returned for cookies that fail verification.
var ErrInvalidToken = errors.New("session: invalid token")

// package-level logger; replaced via SetLogger
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by the session package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Store holds live sessions and signs the cookies that name them.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session

	secret     []byte
	cookieName string
	ttl        time.Duration
	sweepEvery time.Duration
	secure     bool
	now        func() time.Time

	stop     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewStore(cfg config.SessionConfig, secure bool) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = 2 * time.Hour
	}
	if cfg.SweepEvery <= 0 {
		cfg.SweepEvery = cfg.TTL / 4
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "cg_session"
	}
	return &Store{
		sessions:   make(map[string]*Session),
		secret:     []byte(cfg.Secret),
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		sweepEvery: cfg.SweepEvery,
		secure:     secure,
		now:        time.Now,
		stop:       make(chan struct{}),
	}
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Resolve returns the session named by the request cookie, creating a new one
// when the cookie is missing, invalid or names an expired session. The cookie
// is (re)issued on w either way so its expiry slides with activity.
func (st *Store) Resolve(w http.ResponseWriter, r *http.Request) (*Session, error) {
	now := st.now()

	var sess *Session
	if c, err := r.Cookie(st.cookieName); err == nil {
		if id, err := st.parse(c.Value); err == nil {
			st.mu.Lock()
			sess = st.sessions[id]
			st.mu.Unlock()
		} else {
			logger.Debug("session: rejected cookie", slog.Any("err", err))
		}
	}

	if sess == nil {
		sess = newSession(now)
		st.mu.Lock()
		st.sessions[sess.ID] = sess
		st.mu.Unlock()
		logger.Debug("session: created", slog.String("session_id", sess.ID))
	}
	sess.touch(now)

	token, err := st.sign(sess.ID, now)
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     st.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(st.ttl),
		HttpOnly: true,
		Secure:   st.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

func (st *Store) sign(id string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": id,
		"iat": now.Unix(),
		"exp": now.Add(st.ttl).Unix(),
	})
	s, err := token.SignedString(st.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return s, nil
}

func (st *Store) parse(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return st.secret, nil
	}, jwt.WithTimeFunc(st.now))
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	id, ok := claims["sid"].(string)
	if !ok || id == "" {
		return "", ErrInvalidToken
	}
	return id, nil
}

// Sweep drops sessions idle for longer than the TTL and returns how many went.
func (st *Store) Sweep() int {
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	n := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// Start launches the janitor that sweeps expired sessions.
func (st *Store) Start(ctx context.Context) {
	st.wg.Add(1)
	go st.janitor(ctx)
}

// Stop signals the janitor and waits for it. Stop is idempotent.
func (st *Store) Stop() {
	st.stopOnce.Do(func() { close(st.stop) })
	st.wg.Wait()
}

func (st *Store) janitor(ctx context.Context) {
	defer st.wg.Done()

	ticker := time.NewTicker(st.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-st.stop:
			logger.Info("session janitor stopping")
			return
		case <-ctx.Done():
			logger.Info("context canceled, session janitor exiting")
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				logger.Debug("session: swept expired", slog.Int("count", n), slog.Int("live", st.Len()))
			}
		}
	}
}
