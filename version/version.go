package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/favigo/favigo/constant"
	"github.com/favigo/favigo/filesystem"
	"github.com/favigo/favigo/network"
	"github.com/favigo/favigo/where"
)

var releasesURL = "https://api.github.com/repos/" + constant.Repository + "/releases/latest"

var versionCacher = filesystem.NewCache[string](where.Version(), time.Hour*24*2)

// Latest returns the most recent release version, without the "v" prefix.
// Results are cached for two days to stay clear of GitHub rate limits.
func Latest(ctx context.Context) (string, error) {
	if ver, expired, err := versionCacher.Get(); err == nil && !expired && ver != "" {
		return ver, nil
	}

	ver, err := fetchLatest(ctx, network.Client, releasesURL)
	if err != nil {
		return "", err
	}

	_ = versionCacher.Set(ver)
	return ver, nil
}

func fetchLatest(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", constant.Favigo+"/"+constant.Version)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases: unexpected status %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("releases: %w", err)
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	return strings.TrimPrefix(release.TagName, "v"), nil
}
