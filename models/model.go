package models

// MatchType selects the asset resolution strategy for an app.
type MatchType string

const (
	MatchFixed MatchType = "fixed"
	MatchRegex MatchType = "regex"
	MatchTag   MatchType = "tag"
	MatchAll   MatchType = "all"
)

// InstallPathMatchType selects how the destination filename is derived when
// the set of downloaded files is not statically known.
type InstallPathMatchType string

const (
	InstallPathFixed     InstallPathMatchType = "fixed"
	InstallPathAssetName InstallPathMatchType = "asset_name"
	InstallPathTag       InstallPathMatchType = "tag"
)

// Release is one published version of a tracked repository, as returned by
// the release source. Immutable within one update cycle.
type Release struct {
	TagName    string
	Prerelease bool
	Assets     []Asset
}

// Asset is one downloadable file attached to a release. Size is
// informational only.
type Asset struct {
	Name               string
	BrowserDownloadURL string
	Size               int64
}

// AppEntry is the persisted record of one tracked application. Only Tag is
// mutated, by the updater after a successful download.
type AppEntry struct {
	Name                 string               `json:"name"`
	Repo                 string               `json:"repo"`
	Tag                  string               `json:"tag"`
	AssetPattern         string               `json:"asset_pattern,omitempty"`
	MatchType            MatchType            `json:"asset_match_type,omitempty"`
	InstallPath          string               `json:"install_path"`
	UsePrerelease        bool                 `json:"use_prerelease,omitempty"`
	InstallPathMatchType InstallPathMatchType `json:"install_path_match_type,omitempty"`
	FindAssetsHook       string               `json:"find_assets_hook,omitempty"`
	FindAssetsHookArgs   []string             `json:"find_assets_hook_args,omitempty"`
	PostDownloadHook     string               `json:"post_download_hook,omitempty"`
	PostDownloadHookArgs []string             `json:"post_download_hook_args,omitempty"`

	extra rawFields
}

func (a *AppEntry) DisplayName() string {
	if a.Name == "" {
		return "Unknown"
	}
	return a.Name
}

func (a *AppEntry) EffectiveMatchType() MatchType {
	if a.MatchType == "" {
		return MatchFixed
	}
	return a.MatchType
}

func (a *AppEntry) EffectiveInstallPathMatchType() InstallPathMatchType {
	if a.InstallPathMatchType == "" {
		return InstallPathFixed
	}
	return a.InstallPathMatchType
}

// TrashConfig holds the retirement settings. Dir is the resolved absolute
// trash directory and is never persisted.
type TrashConfig struct {
	TrashPath  string `json:"trash_path"`
	AppendTag  bool   `json:"append_tag"`
	AppendDate bool   `json:"append_date"`

	Dir string `json:"-"`

	extra rawFields
}

// Config is the persisted configuration store.
type Config struct {
	Trash       *TrashConfig `json:"trash_config,omitempty"`
	GithubToken string       `json:"github_token,omitempty"`
	Apps        []*AppEntry  `json:"apps"`

	extra rawFields
}
