// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package sysinfo

import (
	"bufio"
	"bytes"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// SysUnknown is reported when the host cannot be inspected.
var SysUnknown = SysInfo{
	Name:    runtime.GOOS,
	Release: "unknown",
	Version: "unknown",
}

// SysInfo holds basic operating system details.
type SysInfo struct {
	Name    string // runtime.GOOS
	Release string // Distribution or product name, e.g. "Ubuntu"
	Version string // Release version
}

// Stat returns information about the running operating system.
func Stat() (*SysInfo, error) {
	info := SysInfo{Name: runtime.GOOS, Release: "unknown", Version: "unknown"}

	switch runtime.GOOS {
	case "linux":
		info.Release, info.Version = linuxInfo()
	case "darwin":
		info.Release, info.Version = darwinInfo()
	case "windows":
		info.Release, info.Version = windowsInfo()
	}
	return &info, nil
}

// linuxInfo reads NAME and VERSION from /etc/os-release.
func linuxInfo() (string, string) {
	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return "unknown", "unknown"
	}
	kv := parseKeyValues(data, "=")
	return strings.Trim(kv["NAME"], `"`), strings.Trim(kv["VERSION"], `"`)
}

func darwinInfo() (string, string) {
	out, err := exec.Command("sw_vers").Output()
	if err != nil {
		return "macOS", "unknown"
	}
	kv := parseKeyValues(out, ":")
	return kv["ProductName"], kv["ProductVersion"]
}

func windowsInfo() (string, string) {
	out, err := exec.Command("cmd", "/c", "ver").Output()
	if err != nil {
		return "Windows", "unknown"
	}
	return "Windows", strings.TrimSpace(string(out))
}

func parseKeyValues(data []byte, sep string) map[string]string {
	kv := make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), sep)
		if ok {
			kv[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
	return kv
}
