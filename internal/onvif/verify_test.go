package onvif

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// fastVerifyOptions keeps verification tests quick
func fastVerifyOptions(maxRetries int) *VerificationOptions {
	return &VerificationOptions{
		MaxRetries:            maxRetries,
		InitialDelay:          time.Millisecond,
		RetryDelay:            time.Millisecond,
		UseExponentialBackoff: false,
		MaxRetryDelay:         10 * time.Millisecond,
	}
}

func TestDefaultVerificationOptions(t *testing.T) {
	opts := DefaultVerificationOptions()

	if opts.MaxRetries != 5 {
		t.Errorf("Expected MaxRetries=5, got %d", opts.MaxRetries)
	}
	if opts.InitialDelay != 3*time.Second {
		t.Errorf("Expected InitialDelay=3s, got %v", opts.InitialDelay)
	}
	if opts.RetryDelay != 2*time.Second {
		t.Errorf("Expected RetryDelay=2s, got %v", opts.RetryDelay)
	}
	if !opts.UseExponentialBackoff {
		t.Error("Expected UseExponentialBackoff=true")
	}
	if opts.MaxRetryDelay != 10*time.Second {
		t.Errorf("Expected MaxRetryDelay=10s, got %v", opts.MaxRetryDelay)
	}
}

func TestVerifyMigration_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/soap+xml; charset=utf-8")
		_, _ = w.Write([]byte(mockInterfacesResponse))
	}))
	defer server.Close()

	client := NewClientWithEndpoint(server.URL, testCreds())
	result := VerifyMigration(client, "192.168.1.64", fastVerifyOptions(2))

	if !result.Success {
		t.Fatalf("Expected verification success, got error: %v", result.Error)
	}
	if result.Attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", result.Attempts)
	}
	if result.Interfaces == nil || !result.Interfaces.HasAddress("192.168.1.64") {
		t.Error("Expected retrieved interfaces to include the new address")
	}
}

func TestVerifyMigration_CameraComesUpLate(t *testing.T) {
	// Camera "reboots": the first two polls fail, the third answers
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/soap+xml; charset=utf-8")
		_, _ = w.Write([]byte(mockInterfacesResponse))
	}))
	defer server.Close()

	client := NewClientWithEndpoint(server.URL, testCreds())
	result := VerifyMigration(client, "192.168.1.64", fastVerifyOptions(4))

	if !result.Success {
		t.Fatalf("Expected verification to succeed once the camera answers, got: %v", result.Error)
	}
	if result.Attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", result.Attempts)
	}
}

func TestVerifyMigration_StaleAddressKeepsRetrying(t *testing.T) {
	// Camera answers but never reports the new address
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/soap+xml; charset=utf-8")
		_, _ = w.Write([]byte(mockInterfacesResponse))
	}))
	defer server.Close()

	client := NewClientWithEndpoint(server.URL, testCreds())
	result := VerifyMigration(client, "10.0.0.99", fastVerifyOptions(2))

	if result.Success {
		t.Fatal("Expected verification to fail for an address the camera never reports")
	}
	if result.Attempts != 3 {
		t.Errorf("Expected 3 attempts (1 + 2 retries), got %d", result.Attempts)
	}
	if result.Error == nil || !strings.Contains(result.Error.Error(), "verification failed after 3 attempts") {
		t.Errorf("Expected attempt summary in error, got: %v", result.Error)
	}
}

func TestVerifyMigration_Unreachable(t *testing.T) {
	client := NewClient("192.0.2.1", testCreds())
	client.SetTimeout(50 * time.Millisecond)

	result := VerifyMigration(client, "192.0.2.1", fastVerifyOptions(1))

	if result.Success {
		t.Fatal("Expected verification failure for unreachable camera")
	}
	if result.Attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", result.Attempts)
	}
	if result.Error == nil {
		t.Fatal("Expected an error describing the last failure")
	}
}
