package main

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/backkem/wol/pkg/magic"
)

// writeConfig writes a config file using a fresh registry in a temp dir and
// returns its path.
func writeConfig(t *testing.T, target string) string {
	t.Helper()
	dir := t.TempDir()
	data := fmt.Sprintf(`broadcast:
  target: %q
  attempt_timeout: 1s
  timeout: 2s
registry:
  driver: sqlite
  path: %q
log:
  level: disabled
`, target, filepath.Join(dir, "devices.db"))

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(append([]string{"wol"}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestDevicesCommands(t *testing.T) {
	cfg := writeConfig(t, "255.255.255.255:9")

	code, out, errOut := runCLI(t, "--config", cfg, "devices", "list")
	if code != 0 {
		t.Fatalf("list exit = %d, stderr = %s", code, errOut)
	}
	if !strings.Contains(out, "No devices registered.") {
		t.Errorf("list output = %q", out)
	}

	code, out, errOut = runCLI(t, "--config", cfg, "devices", "add", "desktop", "AA-BB-CC-DD-EE-FF")
	if code != 0 {
		t.Fatalf("add exit = %d, stderr = %s", code, errOut)
	}
	if !strings.Contains(out, "Added desktop (aa:bb:cc:dd:ee:ff) with id 1") {
		t.Errorf("add output = %q", out)
	}

	code, _, errOut = runCLI(t, "--config", cfg, "devices", "add", "desktop", "00:11:22:33:44:55")
	if code != 1 || !strings.Contains(errOut, "already exists") {
		t.Errorf("duplicate add exit = %d, stderr = %q", code, errOut)
	}

	code, out, _ = runCLI(t, "--config", cfg, "devices", "list")
	if code != 0 || !strings.Contains(out, "desktop") || !strings.Contains(out, "aa:bb:cc:dd:ee:ff") {
		t.Errorf("list exit = %d, output = %q", code, out)
	}

	code, out, errOut = runCLI(t, "--config", cfg, "devices", "rm", "1")
	if code != 0 || !strings.Contains(out, "Removed device 1") {
		t.Errorf("rm exit = %d, output = %q, stderr = %q", code, out, errOut)
	}

	code, _, errOut = runCLI(t, "--config", cfg, "devices", "rm", "1")
	if code != 1 || !strings.Contains(errOut, "not found") {
		t.Errorf("second rm exit = %d, stderr = %q", code, errOut)
	}

	code, _, errOut = runCLI(t, "--config", cfg, "devices", "rm", "one")
	if code != 1 || !strings.Contains(errOut, "numeric") {
		t.Errorf("rm non-numeric exit = %d, stderr = %q", code, errOut)
	}
}

func TestWakeCommand(t *testing.T) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("ListenUDP() error = %v", err)
	}
	defer conn.Close()

	cfg := writeConfig(t, conn.LocalAddr().String())

	if code, _, errOut := runCLI(t, "--config", cfg, "devices", "add", "nas", "00:11:22:33:44:55"); code != 0 {
		t.Fatalf("add exit = %d, stderr = %s", code, errOut)
	}

	code, out, errOut := runCLI(t, "--config", cfg, "wake", "nas")
	if code != 0 {
		t.Fatalf("wake exit = %d, stderr = %s", code, errOut)
	}
	if !strings.Contains(out, "Successfully sent wake-up packet to nas") {
		t.Errorf("wake output = %q", out)
	}

	buf := make([]byte, 256)
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := conn.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("ReadFromUDP() error = %v", err)
	}
	mac, err := magic.Decode(buf[:n])
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if mac.String() != "00:11:22:33:44:55" {
		t.Errorf("received MAC = %s", mac)
	}
}

func TestWakeCommand_Failures(t *testing.T) {
	cfg := writeConfig(t, "255.255.255.255:9")

	code, _, errOut := runCLI(t, "--config", cfg, "wake")
	if code != 1 || !strings.Contains(errOut, "at least one") {
		t.Errorf("wake without args exit = %d, stderr = %q", code, errOut)
	}

	code, _, errOut = runCLI(t, "--config", cfg, "wake", "ghost")
	if code != 1 || !strings.Contains(errOut, "unknown device") {
		t.Errorf("wake unknown exit = %d, stderr = %q", code, errOut)
	}
}

func TestGlobalFlags_Invalid(t *testing.T) {
	cfg := writeConfig(t, "255.255.255.255:9")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"log level", []string{"--log-level", "loud", "devices", "list"}, "invalid log level"},
		{"target", []string{"--target", "[::1]:9", "devices", "list"}, "invalid target"},
		{"attempt timeout", []string{"--attempt-timeout", "10s", "devices", "list"}, "must be shorter than broadcast.timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", cfg}, tt.args...)
			code, _, errOut := runCLI(t, args...)
			if code != 1 || !strings.Contains(errOut, tt.want) {
				t.Errorf("exit = %d, stderr = %q, want %q", code, errOut, tt.want)
			}
		})
	}
}
