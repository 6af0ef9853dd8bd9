package version

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// InstallMethod represents how quill was installed.
type InstallMethod string

const (
	InstallMethodGo     InstallMethod = "go"
	InstallMethodBinary InstallMethod = "binary"
)

var (
	detectedMethod     InstallMethod
	detectedMethodOnce sync.Once
)

// DetectInstallMethod reports whether the binary lives in a Go bin
// directory. The result is cached for the lifetime of the process.
func DetectInstallMethod() InstallMethod {
	detectedMethodOnce.Do(func() {
		detectedMethod = InstallMethodBinary
		exe, err := os.Executable()
		if err != nil {
			return
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		home, _ := os.UserHomeDir()
		if inGoBin(exe, os.Getenv("GOBIN"), os.Getenv("GOPATH"), home) {
			detectedMethod = InstallMethodGo
		}
	})
	return detectedMethod
}

// inGoBin checks exe against GOBIN, GOPATH/bin and ~/go/bin, then falls
// back to looking for a /go/bin/ path segment.
func inGoBin(exe, gobin, gopath, home string) bool {
	dir := filepath.Dir(exe)
	candidates := []string{gobin}
	if gopath != "" {
		candidates = append(candidates, filepath.Join(gopath, "bin"))
	}
	if home != "" {
		candidates = append(candidates, filepath.Join(home, "go", "bin"))
	}
	for _, c := range candidates {
		if c != "" && dir == filepath.Clean(c) {
			return true
		}
	}
	sep := string(filepath.Separator)
	return strings.Contains(exe, sep+"go"+sep+"bin"+sep)
}
