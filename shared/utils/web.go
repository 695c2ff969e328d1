package utils

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/itchan-dev/vault/shared/errors"
	"github.com/itchan-dev/vault/shared/logger"
)

// WriteJSON encodes v before touching the response, so an encoding
// failure can still be reported as a 500.
func WriteJSON(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(append(body, '\n'))
}

// WriteErrorAndStatusCode answers with the status the error carries.
// Server side failures get a generic body; the details go to the log.
func WriteErrorAndStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed",
			"status", status,
			"inconsistency", errors.Is[*errors.DataInconsistency](err),
			"error", err,
		)
		http.Error(w, http.StatusText(status), status)
		return
	}
	http.Error(w, err.Error(), status)
}

func GetIP(r *http.Request) (string, error) {
	//Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}

	//Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	for _, ip := range strings.Split(ips, ",") {
		ip = strings.TrimSpace(ip)
		if net.ParseIP(ip) != nil {
			return ip, nil
		}
	}

	//Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	if net.ParseIP(ip) != nil {
		return ip, nil
	}
	return "", fmt.Errorf("no valid ip found")
}
