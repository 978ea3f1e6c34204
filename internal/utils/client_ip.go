package utils

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP extracts the best client IP from typical proxy headers or
// RemoteAddr. Used only for rate-limit bucketing.
func ClientIP(r *http.Request) string {
	forwardedFor := r.Header.Get("X-Forwarded-For")
	if forwardedFor != "" {
		for _, ip := range strings.Split(forwardedFor, ",") {
			cleanIP := strings.TrimSpace(ip)
			if isValidIP(cleanIP) {
				return cleanIP
			}
		}
	}

	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" && isValidIP(realIP) {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && isValidIP(host) {
		return host
	}
	return r.RemoteAddr
}

func isValidIP(s string) bool {
	return net.ParseIP(s) != nil
}
