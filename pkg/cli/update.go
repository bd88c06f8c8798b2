package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// Version is the running build's version. Release builds override it with
// -ldflags "-X github.com/Fepozopo/vignette/pkg/cli.Version=x.y.z".
var Version = "0.1.0"

const updateRepo = "Fepozopo/vignette"

var semverRe = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

// githubRelease is the subset of the releases API payload we read.
type githubRelease struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
	Assets     []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// parseReleaseVersion finds a semver inside a tag or release name.
func parseReleaseVersion(tag, name string) (semver.Version, bool) {
	for _, s := range []string{tag, name} {
		m := semverRe.FindString(s)
		if m == "" {
			continue
		}
		if v, err := semver.Parse(strings.TrimPrefix(m, "v")); err == nil {
			return v, true
		}
	}
	return semver.Version{}, false
}

// pickAsset prefers an asset named for a platform and falls back to the first.
func pickAsset(r githubRelease) string {
	url := ""
	for _, a := range r.Assets {
		n := strings.ToLower(a.Name)
		for _, hint := range []string{"darwin", "linux", "windows", "amd64", "arm64"} {
			if strings.Contains(n, hint) {
				return a.BrowserDownloadURL
			}
		}
		if url == "" {
			url = a.BrowserDownloadURL
		}
	}
	return url
}

// latestFromReleases returns the highest published, non-prerelease release.
func latestFromReleases(releases []githubRelease) (*selfupdate.Release, bool) {
	var found []*selfupdate.Release
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		v, ok := parseReleaseVersion(r.TagName, r.Name)
		if !ok {
			continue
		}
		found = append(found, &selfupdate.Release{Version: v, AssetURL: pickAsset(r), Name: r.Name})
	}
	if len(found) == 0 {
		return nil, false
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Version.GT(found[j].Version) })
	return found[0], true
}

// detectLatestFallback queries the GitHub Releases API directly. It is more
// tolerant of tag naming than selfupdate.DetectLatest.
func detectLatestFallback(repo string) (*selfupdate.Release, bool, error) {
	apiURL := fmt.Sprintf("https://api.github.com/repos/%s/releases", repo)
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(apiURL)
	if err != nil {
		return nil, false, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed reading github response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(body))
	}
	var releases []githubRelease
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, false, fmt.Errorf("failed to decode github releases: %w", err)
	}
	latest, ok := latestFromReleases(releases)
	return latest, ok, nil
}

// CheckForUpdates reports whether a newer release exists and, when apply is
// set, installs it and re-executes the binary.
func CheckForUpdates(out io.Writer, apply bool) error {
	fmt.Fprintf(out, "Current version: %s\n", Version)

	latest, found, err := selfupdate.DetectLatest(updateRepo)
	if err != nil || !found {
		latest, found, err = detectLatestFallback(updateRepo)
	}
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if !found || latest == nil {
		fmt.Fprintf(out, "No releases found for %s.\n", updateRepo)
		return nil
	}
	fmt.Fprintf(out, "Latest version: %s\n", latest.Version)

	current, perr := semver.Parse(strings.TrimPrefix(Version, "v"))
	if perr != nil {
		fmt.Fprintf(out, "warning: could not parse current version %q: %v\n", Version, perr)
	} else if latest.Version.LTE(current) {
		fmt.Fprintf(out, "You are already running the latest version: %s.\n", current)
		return nil
	}
	if latest.AssetURL == "" {
		fmt.Fprintf(out, "A new version (%s) is available but there is no downloadable asset.\n", latest.Version)
		return nil
	}
	if !apply {
		fmt.Fprintf(out, "A new version (%s) is available. Run \"update yes\" to install it.\n", latest.Version)
		return nil
	}

	fmt.Fprintln(out, "Updating...")
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	argv := append([]string{exe}, os.Args[1:]...)
	if err := syscall.Exec(exe, argv, os.Environ()); err != nil {
		// Exec only returns on error; start the new binary as a child instead.
		cmd := exec.Command(exe, os.Args[1:]...)
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
		if startErr := cmd.Start(); startErr != nil {
			fmt.Fprintf(out, "Updated to version %s, but failed to restart automatically: %v\n", latest.Version, startErr)
			return nil
		}
		os.Exit(0)
	}
	return nil
}
