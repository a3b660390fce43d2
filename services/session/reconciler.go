package session

import (
	"context"
	"sync"

	"glowbook/models"
	"glowbook/utils"

	"go.uber.org/zap"
)

// Reconciler owns one client's Session and is its single writer. Remote
// auth events, local admin logins and resume checks all funnel through it,
// so the view can never hold identities from both sources at once.
//
// Resolutions carry no generation counter: of two overlapping resolutions
// the one that completes last wins, even if it was started first. Known
// ordering hazard, pinned by TestResolveOverlapPinsLastCompletedWins.
type Reconciler struct {
	clientID string
	remote   RemoteAuth
	profiles ProfileSource
	store    Store
	logger   *zap.Logger

	mu    sync.Mutex
	state Session
}

// NewReconciler creates a reconciler for one client. The session starts in
// the loading state until the first resolution settles it.
func NewReconciler(clientID string, remote RemoteAuth, profiles ProfileSource, store Store, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		clientID: clientID,
		remote:   remote,
		profiles: profiles,
		store:    store,
		logger:   logger,
		state:    Session{Loading: true},
	}
}

// Current returns the latest settled (or in-flight) session view.
func (r *Reconciler) Current() Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Reconciler) setLoading(v bool) {
	r.mu.Lock()
	r.state.Loading = v
	r.mu.Unlock()
}

// commit unconditionally replaces the session view. Last completed
// resolution wins.
func (r *Reconciler) commit(s Session) Session {
	s.Loading = false
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
	return s
}

// enrich merges the profile record into the identity. Enrichment failure is
// never fatal; the bare identity is returned instead.
func (r *Reconciler) enrich(ctx context.Context, u *models.User) *models.User {
	if u == nil {
		return nil
	}
	if r.profiles == nil {
		return u
	}
	profile, err := r.profiles.ProfileByUserID(ctx, u.ID)
	if err != nil {
		r.logger.Warn("profile enrichment failed, using bare identity",
			zap.String("userID", u.ID), zap.Error(err))
		return u
	}
	return MergeProfile(u, profile)
}

// classifyAndSync enriches the identity, classifies it admin-or-not and
// brings the admin store in line with the classification.
func (r *Reconciler) classifyAndSync(ctx context.Context, u *models.User) (*models.User, bool) {
	enriched := r.enrich(ctx, u)
	isAdmin := IsAdminUser(enriched)
	if isAdmin {
		if err := r.store.Save(ctx, r.clientID, enriched); err != nil {
			r.logger.Warn("failed to persist admin session", zap.Error(err))
		}
	} else {
		if err := r.store.Clear(ctx, r.clientID); err != nil {
			r.logger.Warn("failed to clear admin session", zap.Error(err))
		}
	}
	return enriched, isAdmin
}

// Resolve runs the reconciliation algorithm: a live remote session wins;
// otherwise a validly-classified admin payload from the store; otherwise
// the store is cleared and the session settles logged out.
func (r *Reconciler) Resolve(ctx context.Context) Session {
	r.setLoading(true)

	remoteUser, err := r.remote.CurrentUser(ctx, r.clientID)
	if err != nil {
		r.logger.Error("session resolution failed", zap.Error(err))
		if cerr := r.store.Clear(ctx, r.clientID); cerr != nil {
			r.logger.Warn("failed to clear admin session", zap.Error(cerr))
		}
		return r.commit(Session{})
	}
	return r.settle(ctx, remoteUser)
}

// settle finishes a resolution given the remote lookup's outcome.
func (r *Reconciler) settle(ctx context.Context, remoteUser *models.User) Session {
	if remoteUser != nil {
		enriched, isAdmin := r.classifyAndSync(ctx, remoteUser)
		return r.commit(Session{User: enriched, IsAdminAuth: isAdmin})
	}

	payload, err := r.store.Load(ctx, r.clientID)
	if err != nil {
		r.logger.Warn("failed to load admin session", zap.Error(err))
		payload = nil
	}
	if payload != nil && IsAdminUser(payload) {
		return r.commit(Session{User: payload, IsAdminAuth: true})
	}
	if err := r.store.Clear(ctx, r.clientID); err != nil {
		r.logger.Warn("failed to clear admin session", zap.Error(err))
	}
	return r.commit(Session{})
}

// ResumeResult reports the outcome of a resume check.
type ResumeResult struct {
	Session Session
	// Expired is set when a remote session silently disappeared while a
	// regular user was active; the caller owes the user a sign-in notice.
	Expired bool
}

// Resume re-validates the session after the client comes back from idle.
// A silently expired user session forces a sign-out instead of quietly
// falling back to the admin store.
func (r *Reconciler) Resume(ctx context.Context) ResumeResult {
	snapshot := r.Current()
	if snapshot.User == nil && !snapshot.IsAdminAuth && !snapshot.Loading {
		return ResumeResult{Session: snapshot}
	}

	r.setLoading(true)

	current, err := r.remote.CurrentUser(ctx, r.clientID)
	if err != nil {
		r.logger.Error("resume session lookup failed", zap.Error(err))
		return ResumeResult{Session: r.commit(Session{})}
	}

	if current == nil && snapshot.User != nil && !snapshot.IsAdminAuth {
		r.logger.Info("user session lost while idle, signing out",
			zap.String("userID", snapshot.User.ID))
		if serr := r.remote.SignOut(ctx, r.clientID); serr != nil {
			r.logger.Warn("best-effort sign-out failed", zap.Error(serr))
		}
		if cerr := r.store.Clear(ctx, r.clientID); cerr != nil {
			r.logger.Warn("failed to clear admin session", zap.Error(cerr))
		}
		return ResumeResult{Session: r.commit(Session{}), Expired: true}
	}

	refreshed, err := r.remote.Refresh(ctx, r.clientID)
	if err != nil {
		r.logger.Error("resume session refresh failed", zap.Error(err))
		return ResumeResult{Session: r.commit(Session{})}
	}
	return ResumeResult{Session: r.settle(ctx, refreshed)}
}

// LoginResult carries the outcome of a password login.
type LoginResult struct {
	User    *models.User
	Token   string
	Success bool
	Err     error
}

// Login delegates to the remote source, forces a refresh so permission
// claims are current, then classifies and commits the identity. An
// ErrInvalidCredentials failure is returned for the caller to message;
// the session settles logged out either way on failure.
func (r *Reconciler) Login(ctx context.Context, identifier, password string) LoginResult {
	r.setLoading(true)

	user, token, err := r.remote.SignIn(ctx, r.clientID, identifier, password)
	if err != nil {
		r.commit(Session{})
		return LoginResult{Err: err}
	}

	if refreshed, rerr := r.remote.Refresh(ctx, r.clientID); rerr != nil {
		r.logger.Warn("post-login refresh failed", zap.Error(rerr))
	} else if refreshed != nil {
		user = refreshed
	}

	enriched, isAdmin := r.classifyAndSync(ctx, user)
	r.commit(Session{User: enriched, IsAdminAuth: isAdmin})
	return LoginResult{User: enriched, Token: token, Success: true}
}

// AdminLoginResult carries the outcome of a local admin login.
type AdminLoginResult struct {
	User    *models.User
	Token   string
	Success bool
}

// AdminLogin checks the static credential table, never the remote backend.
// Username matching is case-insensitive, the password exact. On match the
// synthesized admin identity is persisted so it survives client restarts,
// followed only by a best-effort remote refresh.
func (r *Reconciler) AdminLogin(ctx context.Context, username, password string) AdminLoginResult {
	r.setLoading(true)

	cred, ok := lookupAdminCredential(username, password)
	if !ok {
		r.setLoading(false)
		return AdminLoginResult{}
	}

	admin := synthesizeAdminUser(cred)
	if err := r.store.Save(ctx, r.clientID, admin); err != nil {
		r.logger.Warn("failed to persist admin session", zap.Error(err))
	}
	token, err := utils.GenerateToken(admin.ID, admin.Email, true, utils.AdminTokenTTL)
	if err != nil {
		r.logger.Error("failed to issue admin token", zap.Error(err))
		r.setLoading(false)
		return AdminLoginResult{}
	}

	r.commit(Session{User: admin, IsAdminAuth: true})

	if _, err := r.remote.Refresh(ctx, r.clientID); err != nil {
		r.logger.Debug("best-effort refresh after admin login failed", zap.Error(err))
	}
	return AdminLoginResult{User: admin, Token: token, Success: true}
}

// RegisterResult carries the outcome of a sign-up.
type RegisterResult struct {
	User                *models.User
	PendingConfirmation bool
	Err                 error
}

// Register delegates to the remote sign-up. Input validation lives in the
// caller. A successful registration clears any stale admin payload but does
// not log the new account in.
func (r *Reconciler) Register(ctx context.Context, params SignUpParams) RegisterResult {
	r.setLoading(true)

	user, pending, err := r.remote.SignUp(ctx, params)
	if err != nil {
		r.setLoading(false)
		return RegisterResult{Err: err}
	}
	if cerr := r.store.Clear(ctx, r.clientID); cerr != nil {
		r.logger.Warn("failed to clear admin session", zap.Error(cerr))
	}
	r.setLoading(false)
	return RegisterResult{User: user, PendingConfirmation: pending}
}

// Logout signs out remotely best-effort, unconditionally clears the admin
// store and resets the session, whichever identity was active.
func (r *Reconciler) Logout(ctx context.Context) Session {
	r.setLoading(true)

	if err := r.remote.SignOut(ctx, r.clientID); err != nil {
		r.logger.Warn("best-effort sign-out failed", zap.Error(err))
	}
	if err := r.store.Clear(ctx, r.clientID); err != nil {
		r.logger.Warn("failed to clear admin session", zap.Error(err))
	}
	return r.commit(Session{})
}
