// Package preflight verifies the runtime environment before an import run:
// directory access, the media-inspection binary, and optional search API
// reachability. The check command renders these results; the import command
// refuses to start when a required check fails.
package preflight

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"shelfr/internal/config"
)

// Result is the outcome of one environment check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// Run evaluates every check relevant to the given configuration.
func Run(ctx context.Context, cfg *config.Config) []Result {
	results := []Result{
		CheckDirectoryAccess("Inbox", cfg.Paths.InboxDir),
		CheckDirectoryAccess("Library", cfg.Paths.LibraryDir),
	}
	if cfg.Trump.Enabled {
		results = append(results, CheckDirectoryAccess("Archive", cfg.Paths.ArchiveDir))
		results = append(results, CheckSameFilesystem(cfg.Paths.LibraryDir, cfg.Paths.ArchiveDir))
	}
	results = append(results, CheckDirectoryAccess("Quarantine", cfg.Paths.QuarantineDir))
	results = append(results, CheckBinary("FFprobe", cfg.FFprobeBinary()))
	if cfg.Search.Enabled {
		results = append(results, CheckSearchAPI(ctx, cfg.Search.BaseURL))
	}
	return results
}

// Failed reports whether any non-optional check did not pass.
func Failed(results []Result) bool {
	for _, result := range results {
		if !result.Passed && !result.Optional {
			return true
		}
	}
	return false
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckBinary verifies the executable is resolvable on PATH.
func CheckBinary(name, command string) Result {
	path, err := exec.LookPath(command)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s not found on PATH", command)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckSameFilesystem warns when the archive cannot be reached from the
// library by an atomic rename. Archive moves across devices fail at run
// time, so surface the mismatch up front. Optional: imports of brand-new
// books still work.
func CheckSameFilesystem(libraryDir, archiveDir string) Result {
	const name = "Archive filesystem"
	var libStat, archStat unix.Stat_t
	if err := unix.Stat(libraryDir, &libStat); err != nil {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("stat %s: %v", libraryDir, err)}
	}
	if err := unix.Stat(archiveDir, &archStat); err != nil {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("stat %s: %v", archiveDir, err)}
	}
	if libStat.Dev != archStat.Dev {
		return Result{Name: name, Optional: true,
			Detail: "archive and library are on different filesystems; replacements will fail"}
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: "same filesystem as library"}
}

// CheckSearchAPI verifies the external search endpoint is reachable.
func CheckSearchAPI(ctx context.Context, baseURL string) Result {
	const name = "Search API"
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing base url"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base+"/catalog/products?num_results=1", nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("reachability check failed (%v)", err)}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("reachability check failed (%v)", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return Result{Name: name, Detail: fmt.Sprintf("endpoint returned %d", resp.StatusCode)}
	}
	return Result{Name: name, Passed: true, Detail: "reachable"}
}
