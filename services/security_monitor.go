package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"file_bridge_app_go/config"
)

const (
	// FailedLoginThreshold failures inside FailedLoginWindow block an IP.
	FailedLoginThreshold = 5
	FailedLoginWindow    = 10 * time.Minute
	alertCooldown        = time.Hour
)

// SecurityMonitor tracks failed admin logins per IP and raises an alert
// when an IP crosses the threshold.
type SecurityMonitor struct {
	mu           sync.Mutex
	failedLogins map[string][]time.Time
	alertedIPs   map[string]time.Time

	now     func() time.Time
	onAlert func(SecurityAlert)
}

// SecurityAlert represents a triggered security alert
type SecurityAlert struct {
	Timestamp time.Time
	IP        string
	User      string
	Reason    string
	Level     string // "WARNING", "CRITICAL"
}

// NewSecurityMonitor creates a monitor. onAlert may be nil; alerts are
// always logged.
func NewSecurityMonitor(onAlert func(SecurityAlert)) *SecurityMonitor {
	return &SecurityMonitor{
		failedLogins: make(map[string][]time.Time),
		alertedIPs:   make(map[string]time.Time),
		now:          time.Now,
		onAlert:      onAlert,
	}
}

// TrackFailedLogin records a failed login from ip and reports whether the
// IP is now blocked.
func (m *SecurityMonitor) TrackFailedLogin(ip, user string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	attempts := append(m.recentLocked(ip, now), now)
	m.failedLogins[ip] = attempts

	if len(attempts) < FailedLoginThreshold {
		return false
	}
	if alert, ok := m.alertLocked(ip, user, now); ok && m.onAlert != nil {
		go m.onAlert(alert)
	}
	return true
}

// Blocked reports whether ip has reached the failure threshold inside the
// current window.
func (m *SecurityMonitor) Blocked(ip string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.recentLocked(ip, m.now())) >= FailedLoginThreshold
}

// ResetLogins forgets the failures of ip after a successful login.
func (m *SecurityMonitor) ResetLogins(ip string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.failedLogins, ip)
}

func (m *SecurityMonitor) recentLocked(ip string, now time.Time) []time.Time {
	windowStart := now.Add(-FailedLoginWindow)
	var recent []time.Time
	for _, t := range m.failedLogins[ip] {
		if t.After(windowStart) {
			recent = append(recent, t)
		}
	}
	return recent
}

// alertLocked records an alert for ip unless one was raised within the
// cooldown.
func (m *SecurityMonitor) alertLocked(ip, user string, now time.Time) (SecurityAlert, bool) {
	if last, ok := m.alertedIPs[ip]; ok && now.Sub(last) < alertCooldown {
		return SecurityAlert{}, false
	}
	m.alertedIPs[ip] = now

	alert := SecurityAlert{
		Timestamp: now,
		IP:        ip,
		User:      user,
		Reason:    "Multiple failed admin logins detected",
		Level:     "CRITICAL",
	}
	log.Printf("[SECURITY ALERT] %s from IP: %s (user %q)", alert.Reason, ip, user)
	return alert, true
}

// Cleanup removes failures outside the window and expired alert cooldowns.
func (m *SecurityMonitor) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for ip := range m.failedLogins {
		if recent := m.recentLocked(ip, now); len(recent) > 0 {
			m.failedLogins[ip] = recent
		} else {
			delete(m.failedLogins, ip)
		}
	}
	for ip, lastAlert := range m.alertedIPs {
		if now.Sub(lastAlert) > alertCooldown {
			delete(m.alertedIPs, ip)
		}
	}
}

// Run calls Cleanup every interval until ctx is cancelled.
func (m *SecurityMonitor) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Cleanup()
		}
	}
}

// EmailSecurityAlerts returns an alert handler that mails cfg.NotifyEmail.
func EmailSecurityAlerts(cfg *config.Config) func(SecurityAlert) {
	return func(alert SecurityAlert) {
		if cfg.NotifyEmail == "" {
			return
		}
		email := &Email{
			To:      []string{cfg.NotifyEmail},
			Subject: fmt.Sprintf("Security Alert: %s", alert.Reason),
			TextBody: fmt.Sprintf("System detected a security event:\n\nType: %s\nIP Address: %s\nUser: %s\nTime: %s\n\nPlease investigate.",
				alert.Reason, alert.IP, alert.User, alert.Timestamp.Format(time.RFC1123)),
		}
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending security alert email: %v", err)
		}
	}
}
