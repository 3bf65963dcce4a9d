package domain

// Release is a single release of a repository.
// Assets must not be modified once the release is built; the slice may be shared.
type Release struct {
	Name    *string `json:"name"`
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset is a downloadable file attached to a release.
type Asset struct {
	Name      string `json:"name"`
	Downloads int    `json:"downloads"`
}

// DisplayName returns the release name, or an empty string when it has none.
func (r Release) DisplayName() string {
	if r.Name == nil {
		return ""
	}
	return *r.Name
}

// Downloads returns the download count summed over all assets.
func (r Release) Downloads() int {
	total := 0
	for _, a := range r.Assets {
		total += a.Downloads
	}
	return total
}

// ReverseReleases returns a new slice with the releases in reverse order.
// The input is left untouched.
func ReverseReleases(releases []Release) []Release {
	reversed := make([]Release, len(releases))
	for i, r := range releases {
		reversed[len(releases)-1-i] = r
	}
	return reversed
}
